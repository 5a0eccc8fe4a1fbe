// Package audio loads sound files into mono float buffers and writes PCM
// WAV files.
//
// WAV, FLAC and MP3 containers are supported. The container is chosen from
// the file extension and falls back to sniffing magic bytes, so misnamed
// files still decode. Multi-channel input is averaged to mono and, when a
// target rate is requested, resampled with the polyphase converter from
// dsp/resample.
package audio
