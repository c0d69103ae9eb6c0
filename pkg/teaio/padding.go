package teaio

import (
	"bytes"
	"fmt"

	"github.com/idelchi/teanc/pkg/xtea"
)

// Pad appends PKCS#7 padding to data, extending it to the next 8-byte block
// boundary. Data that already ends on a boundary gains a full padding block.
func Pad(data []byte) []byte {
	padding := xtea.BlockSize - len(data)%xtea.BlockSize
	padText := bytes.Repeat([]byte{byte(padding)}, padding)

	return append(data, padText...)
}

// Unpad removes PKCS#7 padding from data.
// It returns an error if the padding is invalid.
func Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		return nil, ErrEmptyData
	}

	padding := int(data[length-1])
	if padding == 0 || padding > length || padding > xtea.BlockSize {
		return nil, fmt.Errorf("%w: padding size %d", ErrInvalidPadding, padding)
	}

	// Verify padding
	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
