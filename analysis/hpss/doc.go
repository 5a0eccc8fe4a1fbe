// Package hpss separates a signal into harmonic and percussive components by
// median filtering its magnitude spectrogram along time and frequency and
// applying soft masks.
package hpss
