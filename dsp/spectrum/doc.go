// Package spectrum provides the FFT and short-time Fourier transform layer
// used by the analysis packages, plus helpers for magnitude and power.
//
// Power-of-two transforms run on algo-fft plans. Other sizes use gonum's
// mixed-radix FFT so any frame length can be analysed or synthesised.
package spectrum
