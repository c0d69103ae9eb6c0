package teaio

import "errors"

var (
	// ErrIVSize is returned when the initialization vector is not one block.
	ErrIVSize = errors.New("IV must be 8 bytes")
	// ErrTruncated is returned when the ciphertext source ends mid-block.
	ErrTruncated = errors.New("ciphertext ends mid-block")
	// ErrPartialBlock is returned by Flush while a sub-block write is pending.
	ErrPartialBlock = errors.New("cannot flush: partial block pending")
	// ErrClosed is returned when writing to or closing an already-closed Writer.
	ErrClosed = errors.New("writer is closed")
	// ErrEmptyData is returned when attempting to unpad empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
)
