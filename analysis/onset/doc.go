// Package onset detects note onsets and estimates tempo and beat positions
// from a spectral-flux onset strength envelope.
//
// Envelopes have one value per analysis frame. Frame indices convert to
// seconds with FramesToTime.
package onset
