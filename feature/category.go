package feature

import (
	"fmt"
	"strings"
)

// Category selects a group of features.
type Category int

const (
	CategoryAll Category = iota
	CategorySpectral
	CategoryTemporal
	CategoryHarmonic
	CategoryOnsets
	CategoryPitch
	CategoryMetadata
)

var categoryNames = []struct {
	cat     Category
	key     string
	aliases []string
}{
	{CategoryAll, "all", nil},
	{CategorySpectral, "spectral", nil},
	{CategoryTemporal, "temporal", nil},
	{CategoryHarmonic, "harmonic_percussive", []string{"harmonic", "hpss"}},
	{CategoryOnsets, "onsets", []string{"onset"}},
	{CategoryPitch, "pitch", nil},
	{CategoryMetadata, "metadata", nil},
}

// String returns the key used for the category in an All map.
func (c Category) String() string {
	for _, n := range categoryNames {
		if n.cat == c {
			return n.key
		}
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory accepts a category key or one of its short aliases,
// case-insensitively.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range categoryNames {
		if n.key == name {
			return n.cat, nil
		}
		for _, a := range n.aliases {
			if a == name {
				return n.cat, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Categories lists every concrete category in All order.
func Categories() []Category {
	return []Category{
		CategorySpectral,
		CategoryTemporal,
		CategoryHarmonic,
		CategoryOnsets,
		CategoryPitch,
		CategoryMetadata,
	}
}

// Names lists the feature keys each category produces.
func (c Category) Names() []string {
	switch c {
	case CategorySpectral:
		return []string{
			"mfcc", "mfcc_delta", "mfcc_delta2",
			"spectral_centroid", "spectral_rolloff", "spectral_bandwidth", "spectral_contrast",
			"chroma_stft", "chroma_cqt", "chroma_cens",
		}
	case CategoryTemporal:
		return []string{"zero_crossing_rate", "rms", "tempo", "beat_frames"}
	case CategoryHarmonic:
		return []string{"harmonic", "percussive"}
	case CategoryOnsets:
		return []string{"onset_frames", "onset_times", "onset_strength"}
	case CategoryPitch:
		return []string{"pitch_track", "pitch_matrix", "magnitude_matrix"}
	case CategoryMetadata:
		return []string{"sr", "duration", "samples"}
	default:
		return nil
	}
}
