// Package resample provides rational sample-rate conversion using polyphase
// FIR filtering with Kaiser-windowed anti-aliasing.
//
// Convert is the one-shot entry point used when loading audio at a target
// analysis rate. It compensates the filter delay so time positions are
// preserved across the conversion.
package resample
