package encryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/idelchi/teanc/pkg/teaio"
	"github.com/idelchi/teanc/pkg/xtea"
)

const streamBufferSize = 32 * 1024

// encryptStream generates a random IV, writes it, and pipes plaintext from
// reader through an encrypting teaio.Writer into writer.
func (p *Processor) encryptStream(reader io.Reader, writer io.Writer) error {
	iv := make([]byte, xtea.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return fmt.Errorf("generating IV: %w", err)
	}

	if _, err := writer.Write(iv); err != nil {
		return fmt.Errorf("writing IV: %w", err)
	}

	enc, err := teaio.NewWriter(writer, p.key, iv)
	if err != nil {
		return fmt.Errorf("creating encrypting writer: %w", err)
	}

	if _, err := io.CopyBuffer(enc, reader, make([]byte, streamBufferSize)); err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}

	// Close appends the PKCS#7 padding block.
	if _, err := enc.Close(); err != nil {
		return fmt.Errorf("closing encrypting writer: %w", err)
	}

	return nil
}

// decryptStream reads the IV, then pipes ciphertext through a decrypting
// teaio.Reader, holding back one block so the trailing PKCS#7 padding can be
// validated and stripped before the plaintext reaches writer.
func (p *Processor) decryptStream(reader io.Reader, writer io.Writer) error {
	iv := make([]byte, xtea.BlockSize)
	if _, err := io.ReadFull(reader, iv); err != nil {
		return fmt.Errorf("reading IV: %w", err)
	}

	dec, err := teaio.NewReader(reader, p.key, iv)
	if err != nil {
		return fmt.Errorf("creating decrypting reader: %w", err)
	}

	buf := make([]byte, streamBufferSize)
	hold := make([]byte, 0, xtea.BlockSize)

	for {
		n, readErr := dec.Read(buf)
		if n > 0 {
			combined := append(hold, buf[:n]...) //nolint:gocritic // hold is rebuilt below

			if len(combined) > xtea.BlockSize {
				emit := len(combined) - xtea.BlockSize

				if _, err := writer.Write(combined[:emit]); err != nil {
					return fmt.Errorf("writing plaintext: %w", err)
				}

				hold = append(hold[:0], combined[emit:]...)
			} else {
				hold = combined
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return fmt.Errorf("decrypting: %w", readErr)
		}
	}

	if len(hold) != xtea.BlockSize {
		return fmt.Errorf("%w: padding block missing", ErrProcessing)
	}

	plain, err := teaio.Unpad(hold)
	if err != nil {
		return fmt.Errorf("removing padding: %w", err)
	}

	if len(plain) > 0 {
		if _, err := writer.Write(plain); err != nil {
			return fmt.Errorf("writing final plaintext: %w", err)
		}
	}

	return nil
}
