// Package synthcache persists synthesized clip metadata in SQLite so
// re-running a script only invokes the external synthesis command for
// lines whose text or preset changed.
//
// Entries are keyed by a digest over the speaker, the dialogue text, and
// every preset field that influences the produced audio. A cache hit is
// only honored while the recorded artifact file still exists on disk.
package synthcache
