package feature

import "github.com/cwbudde/algo-analysis/audio"

// SpectralAnalyzer computes frame-wise spectral descriptors. Matrices are
// features x frames.
type SpectralAnalyzer interface {
	MFCC(buf audio.Buffer, n int) ([][]float64, error)
	// Delta returns the first or second order time derivative of m.
	Delta(m [][]float64, order int) ([][]float64, error)
	SpectralCentroid(buf audio.Buffer) ([]float64, error)
	SpectralRolloff(buf audio.Buffer) ([]float64, error)
	SpectralBandwidth(buf audio.Buffer) ([]float64, error)
	SpectralContrast(buf audio.Buffer) ([][]float64, error)
	ChromaSTFT(buf audio.Buffer) ([][]float64, error)
	ChromaCQT(buf audio.Buffer) ([][]float64, error)
	ChromaCENS(buf audio.Buffer) ([][]float64, error)
}

// TemporalAnalyzer computes frame-wise time-domain descriptors.
type TemporalAnalyzer interface {
	ZeroCrossingRate(buf audio.Buffer) ([]float64, error)
	RMS(buf audio.Buffer) ([]float64, error)
}

// RhythmAnalyzer estimates tempo in BPM and beat positions in frames.
type RhythmAnalyzer interface {
	BeatTrack(buf audio.Buffer) (tempo float64, beats []int, err error)
}

// OnsetDetector finds note onsets.
type OnsetDetector interface {
	OnsetStrength(buf audio.Buffer) ([]float64, error)
	OnsetFrames(buf audio.Buffer) ([]int, error)
	FramesToTime(frames []int, sampleRate int) []float64
}

// HarmonicSeparator splits a signal into harmonic and percussive parts of
// the input length.
type HarmonicSeparator interface {
	HPSS(buf audio.Buffer) (harmonic, percussive []float64, err error)
}

// PitchTracker returns bins x frames pitch and magnitude matrices.
type PitchTracker interface {
	Piptrack(buf audio.Buffer) (pitches, magnitudes [][]float64, err error)
}

// Analyzer bundles every capability Extractor needs.
type Analyzer interface {
	SpectralAnalyzer
	TemporalAnalyzer
	RhythmAnalyzer
	OnsetDetector
	HarmonicSeparator
	PitchTracker
}
