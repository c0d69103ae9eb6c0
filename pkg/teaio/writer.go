package teaio

import (
	"fmt"
	"io"

	"github.com/idelchi/teanc/pkg/xtea"
)

// flusher is the optional flush capability of a sink (bufio.Writer et al.).
type flusher interface {
	Flush() error
}

// Writer wraps an io.Writer so that bytes written to it are encrypted in CBC
// mode on the way through. Writes are buffered into 8-byte blocks; Close must
// be called to append the PKCS#7 padding block, without it the tail of the
// stream is lost.
type Writer struct {
	w       io.Writer
	cipher  *xtea.Cipher
	prev    [xtea.BlockSize]byte
	pending []byte
	closed  bool
}

// NewWriter wraps w in a Writer that encrypts with the given 16-byte key,
// chaining from the 8-byte iv. The Writer owns w until Close returns it.
func NewWriter(w io.Writer, key, iv []byte) (*Writer, error) {
	cipher, err := xtea.NewCipher(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != xtea.BlockSize {
		return nil, ErrIVSize
	}

	writer := &Writer{
		w:       w,
		cipher:  cipher,
		pending: make([]byte, 0, xtea.BlockSize),
	}
	copy(writer.prev[:], iv)

	return writer, nil
}

// Write implements io.Writer, buffering data until complete blocks can be
// encrypted and forwarded to the sink.
func (w *Writer) Write(data []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	w.pending = append(w.pending, data...)

	for len(w.pending) >= xtea.BlockSize {
		if err := w.encryptBlock(w.pending[:xtea.BlockSize]); err != nil {
			return 0, err
		}

		w.pending = w.pending[xtea.BlockSize:]
	}

	return len(data), nil
}

// Flush forwards a flush to the sink when it supports one. Flushing with a
// partial block pending fails: the block cannot be encrypted without more
// data or a Close, and padding it here would corrupt the stream.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}

	if len(w.pending) > 0 {
		return ErrPartialBlock
	}

	return w.flushSink()
}

// Close appends the final PKCS#7 padding block, encrypts and forwards it,
// and returns the underlying sink. A stream that already ends on a block
// boundary still gains one full padding block. Closing twice is an error.
func (w *Writer) Close() (io.Writer, error) {
	if w.closed {
		return nil, ErrClosed
	}

	// One padded block in the usual case; more only if an earlier sink error
	// left whole blocks pending.
	for padded := Pad(w.pending); len(padded) > 0; padded = padded[xtea.BlockSize:] {
		if err := w.encryptBlock(padded[:xtea.BlockSize]); err != nil {
			return nil, err
		}
	}

	w.pending = w.pending[:0]
	w.closed = true

	if err := w.flushSink(); err != nil {
		return w.w, err
	}

	return w.w, nil
}

// encryptBlock XORs one plaintext block with the previous ciphertext block,
// enciphers it, and forwards it. Chaining state advances only after the sink
// accepted the block.
func (w *Writer) encryptBlock(block []byte) error {
	var out [xtea.BlockSize]byte

	for i := range out {
		out[i] = block[i] ^ w.prev[i]
	}

	w.cipher.Encrypt(out[:], out[:])

	if _, err := w.w.Write(out[:]); err != nil {
		return fmt.Errorf("writing encrypted block: %w", err)
	}

	w.prev = out

	return nil
}

func (w *Writer) flushSink() error {
	sink, ok := w.w.(flusher)
	if !ok {
		return nil
	}

	if err := sink.Flush(); err != nil {
		return fmt.Errorf("flushing sink: %w", err)
	}

	return nil
}
