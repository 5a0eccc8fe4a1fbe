// Package window generates the tapering windows used for short-time
// spectral analysis. Periodic forms are intended for STFT framing and
// symmetric forms for filter design.
package window
