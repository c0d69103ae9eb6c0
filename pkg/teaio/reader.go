package teaio

import (
	"fmt"
	"io"

	"github.com/idelchi/teanc/pkg/xtea"
)

const readChunkSize = 512

// Reader wraps an io.Reader so that bytes read through it are decrypted in
// CBC mode. Padding is not stripped: the caller sees the plaintext exactly as
// encrypted, final PKCS#7 block included (see Unpad).
type Reader struct {
	r      io.Reader
	cipher *xtea.Cipher
	prev   [xtea.BlockSize]byte
	plain  []byte // decrypted, not yet delivered
	enc    []byte // partial ciphertext block awaiting completion
	buf    []byte // scratch for source reads
	err    error  // sticky terminal state: io.EOF, ErrTruncated or a source error
}

// NewReader wraps r in a Reader that decrypts with the given 16-byte key,
// chaining from the 8-byte iv.
func NewReader(r io.Reader, key, iv []byte) (*Reader, error) {
	cipher, err := xtea.NewCipher(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != xtea.BlockSize {
		return nil, ErrIVSize
	}

	reader := &Reader{
		r:      r,
		cipher: cipher,
		buf:    make([]byte, readChunkSize),
	}
	copy(reader.prev[:], iv)

	return reader, nil
}

// Read implements io.Reader, decrypting ciphertext blocks pulled from the
// source. A source that ends with a partial trailing block is corrupt and
// yields ErrTruncated.
func (r *Reader) Read(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	for len(r.plain) == 0 {
		if r.err != nil {
			return 0, r.err
		}

		r.fill()
	}

	n := copy(data, r.plain)
	r.plain = r.plain[n:]

	return n, nil
}

// fill pulls one chunk from the source and decrypts every complete block.
func (r *Reader) fill() {
	n, err := r.r.Read(r.buf)
	if n > 0 {
		r.enc = append(r.enc, r.buf[:n]...)
		r.decryptBlocks()
	}

	switch {
	case err == io.EOF:
		if len(r.enc) > 0 {
			r.err = ErrTruncated
		} else {
			r.err = io.EOF
		}
	case err != nil:
		r.err = fmt.Errorf("reading ciphertext: %w", err)
	}
}

// decryptBlocks drains full blocks from the ciphertext buffer, chaining on
// the ciphertext of the previous block.
func (r *Reader) decryptBlocks() {
	for len(r.enc) >= xtea.BlockSize {
		var block [xtea.BlockSize]byte

		r.cipher.Decrypt(block[:], r.enc[:xtea.BlockSize])

		for i := range block {
			block[i] ^= r.prev[i]
		}

		copy(r.prev[:], r.enc[:xtea.BlockSize])

		r.plain = append(r.plain, block[:]...)
		r.enc = r.enc[xtea.BlockSize:]
	}
}
