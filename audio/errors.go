package audio

import "errors"

var (
	// ErrInputNotFound indicates the input path does not exist.
	ErrInputNotFound = errors.New("audio: input not found")
	// ErrUnknownContainer indicates the file is neither WAV, FLAC nor MP3.
	ErrUnknownContainer = errors.New("audio: unknown container")
	// ErrEmptyStream indicates a decoder produced no channels.
	ErrEmptyStream = errors.New("audio: stream has no channels")
)
