// Package frequency computes per-frame spectral shape descriptors from
// one-sided magnitude spectra: centroid, spread, flatness, rolloff and
// octave-band contrast.
//
// A spectrum of n bins is assumed to come from a (2n-2)-point FFT, so bin i
// lies at i*sampleRate/(2n-2) Hz.
package frequency
