// Package wavprobe extracts duration metadata from RIFF/WAVE files.
//
// The prober walks the container's chunk list and derives the clip length
// from the exact sample count and sample rate, so probing the same file
// twice always yields the identical duration. No audio is decoded.
//
// Key types:
//   - Info: sample rate, channel count, bit depth, and sample count
//   - UnreadableError: missing, truncated, or non-WAVE input
//
// Primary entry point:
//   - Probe: opens a file and returns its parsed Info
package wavprobe
