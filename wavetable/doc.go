// Package wavetable synthesizes single-cycle wavetables from magnitude
// spectra and audio recordings.
//
// A Table is one period of a waveform with peak amplitude 1. A Stack is an
// ordered sequence of equally sized tables, typically sampled at evenly
// spaced points in time across a source recording. Stacks can be morphed,
// flattened and written as mono WAV files for wavetable synthesizers.
//
// Spectra are reconstructed with zero phase, so tables are symmetric around
// their centre and start at their peak for rich spectra.
package wavetable
