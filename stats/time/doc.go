// Package time computes short-time, frame-based descriptors of a signal in
// the time domain: framing, RMS energy and zero-crossing rate.
package time
