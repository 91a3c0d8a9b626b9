// Package synth invokes the external text-to-speech command for each
// dialogue unit and probes the audio it produces.
//
// Command execution is abstracted behind the Executor interface so tests
// can run the pipeline against fakes. Output paths derive from the unit
// index and speaker, which keeps concurrent workers collision-free, and
// temporary text files are removed on every exit path.
//
// One failed unit aborts the whole batch: timeline offsets are cumulative,
// so a silently missing clip would corrupt the position of every clip
// after it.
package synth
