// Package analysis is the default implementation of the feature capability
// interfaces.
//
// A Library runs short-time analysis with librosa-compatible defaults:
// 2048-point periodic Hann frames, a 512-sample hop, centred framing, 128
// mel bands and 13 MFCCs. The subpackages hold the individual algorithms
// (mel, chroma, onset, hpss, pitch); Library wires them to the shared
// spectrogram of a buffer.
//
// A Library caches the spectrogram of the most recently analysed buffer, so
// extracting several features from the same audio computes the STFT once.
// It is safe for concurrent use.
package analysis
