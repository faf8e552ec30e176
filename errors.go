package pixfx

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a width or height is not positive.
	ErrInvalidDimensions = errors.New("pixfx: invalid dimensions")

	// ErrInvalidBufferSize is returned when pixel data length does not match width*height*bytes-per-pixel.
	ErrInvalidBufferSize = errors.New("pixfx: invalid buffer size")

	// ErrOutOfBounds is returned when a coordinate or index lies outside its valid range.
	ErrOutOfBounds = errors.New("pixfx: out of bounds")

	// ErrDimensionMismatch is returned when filter geometry does not fit the image, e.g. a center outside the buffer.
	ErrDimensionMismatch = errors.New("pixfx: dimension mismatch")

	// ErrParamOutOfRange is returned when a filter parameter is outside its documented range.
	ErrParamOutOfRange = errors.New("pixfx: parameter out of range")
)

var errBadFormat = fmt.Errorf("%w: unknown pixel format", ErrInvalidDimensions)

var (
	errShortStride    = errorString("pixfx: stride smaller than pixel row size")
	errNegativeOffset = errorString("pixfx: negative offset")
)

type errorString string

func (e errorString) Error() string { return string(e) }
