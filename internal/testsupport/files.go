package testsupport

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// WriteWAV writes a minimal valid RIFF/WAVE file holding the requested
// number of 16-bit mono samples at the given rate.
func WriteWAV(t testing.TB, path string, sampleRate int, samples int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, WAVBytes(sampleRate, samples), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WAVBytes renders a minimal 16-bit mono WAVE container in memory.
func WAVBytes(sampleRate int, samples int) []byte {
	dataSize := samples * 2
	buf := make([]byte, 0, 44+dataSize)

	le := binary.LittleEndian
	u32 := func(v uint32) []byte {
		b := make([]byte, 4)
		le.PutUint32(b, v)
		return b
	}
	u16 := func(v uint16) []byte {
		b := make([]byte, 2)
		le.PutUint16(b, v)
		return b
	}

	buf = append(buf, "RIFF"...)
	buf = append(buf, u32(uint32(36+dataSize))...)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...) // PCM
	buf = append(buf, u16(1)...) // mono
	buf = append(buf, u32(uint32(sampleRate))...)
	buf = append(buf, u32(uint32(sampleRate*2))...)
	buf = append(buf, u16(2)...)  // block align
	buf = append(buf, u16(16)...) // bits per sample
	buf = append(buf, "data"...)
	buf = append(buf, u32(uint32(dataSize))...)
	buf = append(buf, make([]byte, dataSize)...)
	return buf
}

// StubSynthScript writes an executable shell script that copies a canned
// WAV fixture to its last argument, mimicking a synthesis binary that
// honors an {output} placeholder in final position. Returns the script
// path.
func StubSynthScript(t testing.TB, dir string, sampleRate, samples int) string {
	t.Helper()

	fixture := filepath.Join(dir, "fixture.wav")
	WriteWAV(t, fixture, sampleRate, samples)

	script := filepath.Join(dir, "fakesynth.sh")
	body := "#!/bin/sh\nfor out; do :; done\ncp \"" + fixture + "\" \"$out\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub synth: %v", err)
	}
	return script
}

// FailingSynthScript writes an executable that prints diagnostics to
// stderr and exits non-zero without producing output.
func FailingSynthScript(t testing.TB, dir string) string {
	t.Helper()

	script := filepath.Join(dir, "brokensynth.sh")
	body := "#!/bin/sh\necho 'voice bank not found' >&2\nexit 3\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write failing synth: %v", err)
	}
	return script
}
