// Package signal provides single-cycle waveform generation and simple
// whole-signal utilities: peak measurement, normalisation, interpolation and
// channel averaging.
package signal
