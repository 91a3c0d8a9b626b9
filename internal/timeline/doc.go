// Package timeline places synthesized clips back-to-back and assigns
// caption styling per speaker.
//
// Building is a pure transformation: given units and their artifacts in
// the same order, offsets are cumulative with no gaps unless a section
// change inserts the configured pause. Every clip starts exactly where
// the previous one ends.
package timeline
