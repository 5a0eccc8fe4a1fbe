// Package feature assembles audio descriptors into named, nested feature
// maps.
//
// Extractor drives a set of capability interfaces (spectral, temporal,
// rhythm, onset, harmonic separation, pitch) and groups their results into
// the categories spectral, temporal, harmonic_percussive, onsets, pitch and
// metadata. Results are Values: scalars, shaped arrays or ordered maps.
// The analysis package provides the default implementation of every
// capability.
package feature
