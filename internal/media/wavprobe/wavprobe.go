package wavprobe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Info describes the audio parameters read from a WAVE file header.
type Info struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Samples       int64
}

// Duration returns the play length computed from the exact sample count.
// Integer arithmetic keeps repeated probes byte-for-byte identical.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(i.Samples) * time.Second / time.Duration(i.SampleRate)
}

// UnreadableError reports a file that could not be probed.
type UnreadableError struct {
	Path   string
	Reason string
	Err    error
}

func (e *UnreadableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable audio %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable audio %s: %s", e.Path, e.Reason)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Probe reads the WAVE header of the file at path and returns its audio
// parameters.
func Probe(path string) (Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return Info{}, &UnreadableError{Path: path, Reason: "open", Err: err}
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return Info{}, &UnreadableError{Path: path, Reason: "stat", Err: err}
	}
	if stat.Size() == 0 {
		return Info{}, &UnreadableError{Path: path, Reason: "empty file"}
	}

	info, err := parse(file, stat.Size())
	if err != nil {
		var unreadable *UnreadableError
		if errors.As(err, &unreadable) {
			unreadable.Path = path
			return Info{}, unreadable
		}
		return Info{}, &UnreadableError{Path: path, Reason: "parse", Err: err}
	}
	return info, nil
}

func parse(r io.Reader, size int64) (Info, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Info{}, &UnreadableError{Reason: "truncated RIFF header", Err: err}
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Info{}, &UnreadableError{Reason: "not a RIFF/WAVE file"}
	}

	var info Info
	haveFmt := false
	haveData := false
	var dataBytes int64
	remaining := size - int64(len(riff))

	for remaining >= 8 {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return Info{}, &UnreadableError{Reason: "read chunk header", Err: err}
		}
		remaining -= int64(len(header))
		chunkID := string(header[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(header[4:8]))

		// Declared sizes must fit in the bytes that actually exist.
		if chunkSize > remaining {
			return Info{}, &UnreadableError{
				Reason: fmt.Sprintf("%s chunk declares %d bytes but only %d remain", chunkID, chunkSize, remaining),
			}
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return Info{}, &UnreadableError{Reason: "fmt chunk too short"}
			}
			var fmtChunk [16]byte
			if _, err := io.ReadFull(r, fmtChunk[:]); err != nil {
				return Info{}, &UnreadableError{Reason: "truncated fmt chunk", Err: err}
			}
			info.Channels = int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtChunk[14:16]))
			haveFmt = true
			if err := skip(r, chunkSize-16); err != nil {
				return Info{}, err
			}
		case "data":
			dataBytes = chunkSize
			haveData = true
			if err := skip(r, chunkSize); err != nil {
				return Info{}, err
			}
		default:
			if err := skip(r, chunkSize); err != nil {
				return Info{}, err
			}
		}
		remaining -= chunkSize

		// Chunks are word-aligned; odd sizes carry a pad byte.
		if chunkSize%2 == 1 && remaining > 0 {
			if err := skip(r, 1); err != nil {
				return Info{}, err
			}
			remaining--
		}

		if haveFmt && haveData {
			break
		}
	}

	if !haveFmt {
		return Info{}, &UnreadableError{Reason: "missing fmt chunk"}
	}
	if !haveData {
		return Info{}, &UnreadableError{Reason: "missing data chunk"}
	}
	if info.SampleRate <= 0 || info.Channels <= 0 || info.BitsPerSample <= 0 {
		return Info{}, &UnreadableError{Reason: "invalid format parameters"}
	}

	blockAlign := int64(info.Channels) * int64(info.BitsPerSample) / 8
	if blockAlign <= 0 {
		return Info{}, &UnreadableError{Reason: "invalid block alignment"}
	}
	info.Samples = dataBytes / blockAlign
	return info, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if seeker, ok := r.(io.Seeker); ok {
		if _, err := seeker.Seek(n, io.SeekCurrent); err != nil {
			return &UnreadableError{Reason: "seek past chunk", Err: err}
		}
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return &UnreadableError{Reason: "skip chunk", Err: err}
	}
	return nil
}
