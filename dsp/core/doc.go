// Package core holds small numeric helpers and the shared short-time analysis
// configuration used across the dsp, stats and analysis packages.
package core
