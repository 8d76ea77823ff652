package generator

import "errors"

// ErrGeneration indicates the language model provider could not produce text.
var ErrGeneration = errors.New("generation failed")
