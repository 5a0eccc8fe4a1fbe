// Package format serialises feature maps to files.
//
// Supported formats are structured JSON (the default), two-column CSV,
// NumPy NPZ archives, an indented plain-text report and Parquet. Save
// renders the whole file to a temporary name before renaming it into
// place, so a failed write never leaves partial output behind.
package format
