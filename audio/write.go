package audio

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-analysis/dsp/core"
	"github.com/cwbudde/algo-analysis/internal/fsutil"
)

// WriteWAV writes buf as mono integer PCM with the given bit depth (16 or 24).
// Samples are clipped to [-1, 1]. The file is written to a temporary name
// and renamed into place once complete.
func WriteWAV(path string, buf Buffer, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("bit depth must be 16 or 24: %d", bitDepth)
	}
	if buf.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", buf.SampleRate)
	}

	full := float64(int64(1)<<(bitDepth-1) - 1)
	data := make([]int, len(buf.Samples))
	for i, v := range buf.Samples {
		data[i] = int(math.Round(core.Clamp(v, -1, 1) * full))
	}

	pcm := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	return fsutil.WriteAtomic(path, func(f *os.File) error {
		enc := wav.NewEncoder(f, buf.SampleRate, bitDepth, 1, 1)
		if err := enc.Write(pcm); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finalize wav: %w", err)
		}
		return nil
	})
}
