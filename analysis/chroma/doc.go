// Package chroma folds spectra onto the twelve pitch classes of the equal
// tempered scale.
//
// All functions accept frames x bins spectrograms as produced by
// dsp/spectrum and return 12 x frames matrices whose first row is C.
package chroma
