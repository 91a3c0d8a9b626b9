// Package premiere renders an assembled timeline as an xmeml version 5
// document, the FCP7 interchange format Premiere Pro imports.
//
// The document carries one video track of text generator items (captions
// with per-speaker styling) and one audio track of clip items referencing
// the synthesized files. All positions are expressed in frames; rounding
// happens once per clip and offsets accumulate in the frame domain, so
// the rendered tracks stay as gapless as the source timeline.
package premiere
