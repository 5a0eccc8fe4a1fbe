package audio

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Container identifies an encoded audio file format.
type Container int

const (
	ContainerUnknown Container = iota
	ContainerWAV
	ContainerFLAC
	ContainerMP3
)

func (c Container) String() string {
	switch c {
	case ContainerWAV:
		return "wav"
	case ContainerFLAC:
		return "flac"
	case ContainerMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// ContainerFromPath maps a file extension to a container.
func ContainerFromPath(path string) Container {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return ContainerWAV
	case ".flac":
		return ContainerFLAC
	case ".mp3":
		return ContainerMP3
	default:
		return ContainerUnknown
	}
}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	return ContainerFromPath(path) != ContainerUnknown
}

// Sniff identifies a container from the first bytes of r and rewinds it.
func Sniff(r io.ReadSeeker) (Container, error) {
	head := make([]byte, 12)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ContainerUnknown, err
	}
	head = head[:n]

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ContainerUnknown, err
	}

	return sniffBytes(head), nil
}

func sniffBytes(head []byte) Container {
	switch {
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return ContainerWAV
	case bytes.HasPrefix(head, []byte("fLaC")):
		return ContainerFLAC
	case bytes.HasPrefix(head, []byte("ID3")):
		return ContainerMP3
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return ContainerMP3
	default:
		return ContainerUnknown
	}
}
