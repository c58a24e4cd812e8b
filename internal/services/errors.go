package services

import (
	"errors"
	"fmt"
)

// ErrNoImage is returned when an operation needs a processed image and none
// has been loaded yet.
var ErrNoImage = errors.New("no image loaded")

// DecodeError reports a file that could not be read or decoded as an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// WriteError reports a failure while creating, encoding or closing an output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
