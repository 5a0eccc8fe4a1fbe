package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/faiface/beep/wav"
	gowav "github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
)

// decoded is planar PCM straight from a decoder.
type decoded struct {
	channels   [][]float64
	sampleRate int
}

func decode(r io.ReadSeeker, c Container) (decoded, error) {
	switch c {
	case ContainerWAV:
		d, err := decodeWAV(r)
		if err == nil {
			return d, nil
		}
		if _, serr := r.Seek(0, io.SeekStart); serr != nil {
			return decoded{}, err
		}
		if alt, aerr := decodeWAVPCM(r); aerr == nil {
			return alt, nil
		}
		return decoded{}, err
	case ContainerFLAC:
		return decodeFLAC(r)
	case ContainerMP3:
		return decodeMP3(r)
	default:
		return decoded{}, ErrUnknownContainer
	}
}

func decodeWAV(r io.Reader) (decoded, error) {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return decoded{}, fmt.Errorf("decode wav: %w", err)
	}

	nch := format.NumChannels
	if nch <= 0 {
		return decoded{}, ErrEmptyStream
	}

	total := max(stream.Len(), 0)
	left := make([]float64, 0, total)
	right := make([]float64, 0, total)

	buf := make([][2]float64, 4096)
	for {
		n, ok := stream.Stream(buf)
		for _, s := range buf[:n] {
			left = append(left, s[0])
			right = append(right, s[1])
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return decoded{}, fmt.Errorf("decode wav: %w", err)
	}

	out := decoded{sampleRate: int(format.SampleRate)}
	if nch == 1 {
		out.channels = [][]float64{left}
	} else {
		out.channels = [][]float64{left, right}
	}
	return out, nil
}

// decodeWAVPCM covers integer layouts beep rejects, such as 32-bit PCM.
func decodeWAVPCM(r io.ReadSeeker) (decoded, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return decoded{}, fmt.Errorf("decode wav: invalid file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return decoded{}, fmt.Errorf("decode wav: %w", err)
	}

	nch := buf.Format.NumChannels
	if nch <= 0 {
		return decoded{}, ErrEmptyStream
	}
	if buf.SourceBitDepth <= 0 || buf.SourceBitDepth > 32 {
		return decoded{}, fmt.Errorf("decode wav: unsupported bit depth %d", buf.SourceBitDepth)
	}

	scale := 1 / float64(int64(1)<<(buf.SourceBitDepth-1))
	out := decoded{
		channels:   make([][]float64, nch),
		sampleRate: buf.Format.SampleRate,
	}
	frames := len(buf.Data) / nch
	for ch := range out.channels {
		out.channels[ch] = make([]float64, frames)
		for i := range frames {
			out.channels[ch][i] = float64(buf.Data[i*nch+ch]) * scale
		}
	}
	return out, nil
}

func decodeFLAC(r io.Reader) (decoded, error) {
	stream, err := flac.New(r)
	if err != nil {
		return decoded{}, fmt.Errorf("decode flac: %w", err)
	}

	info := stream.Info
	nch := int(info.NChannels)
	if nch <= 0 {
		return decoded{}, ErrEmptyStream
	}

	scale := 1 / float64(int64(1)<<(info.BitsPerSample-1))
	out := decoded{
		channels:   make([][]float64, nch),
		sampleRate: int(info.SampleRate),
	}
	if info.NSamples > 0 {
		for ch := range out.channels {
			out.channels[ch] = make([]float64, 0, info.NSamples)
		}
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return decoded{}, fmt.Errorf("decode flac frame: %w", err)
		}

		for ch := 0; ch < nch && ch < len(frame.Subframes); ch++ {
			for _, s := range frame.Subframes[ch].Samples {
				out.channels[ch] = append(out.channels[ch], float64(s)*scale)
			}
		}
	}

	return out, nil
}

func decodeMP3(r io.Reader) (decoded, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return decoded{}, fmt.Errorf("decode mp3: %w", err)
	}

	// The decoder always emits interleaved 16-bit little-endian stereo.
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return decoded{}, fmt.Errorf("decode mp3: %w", err)
	}

	frames := len(pcm) / 4
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := range frames {
		left[i] = float64(int16(binary.LittleEndian.Uint16(pcm[4*i:]))) / 32768
		right[i] = float64(int16(binary.LittleEndian.Uint16(pcm[4*i+2:]))) / 32768
	}

	return decoded{
		channels:   [][]float64{left, right},
		sampleRate: dec.SampleRate(),
	}, nil
}
