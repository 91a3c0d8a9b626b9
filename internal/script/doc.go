// Package script parses dialogue scripts into ordered dialogue units.
//
// A script is plain UTF-8 text. Each non-blank line is either a section
// marker (a leading "-") or a dialogue line of the form
// "<speaker>　<text>" separated by a full-width space. Any other content
// is a parse error; scripts must fail loudly before synthesis starts.
package script
