// Package mel implements mel-scale analysis: Slaney and HTK mel scales,
// triangular filterbanks, log-power conversion, MFCCs and delta features.
//
// Matrices are row slices laid out as features x frames unless a function
// says otherwise. Filterbank and DCT products run on gonum dense matrices.
package mel
