package feature

import "errors"

// ErrUnknownCategory is returned for an unrecognised category name.
var ErrUnknownCategory = errors.New("feature: unknown category")
