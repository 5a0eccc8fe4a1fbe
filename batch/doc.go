// Package batch runs a per-file job over every audio file in a directory.
//
// Files are processed concurrently up to a configurable limit. A failing
// file is recorded in the Report and does not stop its siblings; only
// cancellation of the parent context aborts the run.
package batch
