// Package xtea implements the XTEA block cipher: 64-bit blocks, a 128-bit
// key, and 32 Feistel rounds, as described in the reference paper
// (https://en.wikipedia.org/wiki/XTEA).
//
// Cipher satisfies crypto/cipher.Block, so it composes with anything that
// accepts one. Block halves and key words are interpreted big-endian,
// matching the published XTEA test vectors.
package xtea

import (
	"encoding/binary"
	"strconv"
)

const (
	// BlockSize is the XTEA block size in bytes.
	BlockSize = 8

	// KeySize is the XTEA key size in bytes.
	KeySize = 16

	// delta is derived from the golden ratio; the per-round sum advances by
	// it modulo 2^32.
	delta = 0x9E3779B9

	// numRounds is the round count from the reference implementation
	// (64 Feistel half-rounds).
	numRounds = 32

	// sumFinal is delta * numRounds mod 2^32, the sum value deciphering
	// starts from.
	sumFinal = 0xC6EF3720
)

// KeySizeError is returned by NewCipher for keys that are not 16 bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "xtea: invalid key size " + strconv.Itoa(int(k))
}

// Cipher holds the expanded key words for one XTEA key.
type Cipher struct {
	key [4]uint32
}

// NewCipher creates a Cipher from a 16-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}

	c := &Cipher{}
	for i := range c.key {
		c.key[i] = binary.BigEndian.Uint32(key[i*4:])
	}

	return c, nil
}

// BlockSize returns the XTEA block size, 8 bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt enciphers the 8-byte block in src into dst.
// Dst and src may overlap entirely or not at all.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("xtea: input not full block")
	}

	if len(dst) < BlockSize {
		panic("xtea: output not full block")
	}

	v0 := binary.BigEndian.Uint32(src[0:4])
	v1 := binary.BigEndian.Uint32(src[4:8])

	var sum uint32

	for i := 0; i < numRounds; i++ {
		v0 += (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.key[sum&3])
		sum += delta
		v1 += (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.key[(sum>>11)&3])
	}

	binary.BigEndian.PutUint32(dst[0:4], v0)
	binary.BigEndian.PutUint32(dst[4:8], v1)
}

// Decrypt deciphers the 8-byte block in src into dst; the exact inverse of
// Encrypt under the same key.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("xtea: input not full block")
	}

	if len(dst) < BlockSize {
		panic("xtea: output not full block")
	}

	v0 := binary.BigEndian.Uint32(src[0:4])
	v1 := binary.BigEndian.Uint32(src[4:8])

	sum := uint32(sumFinal)

	for i := 0; i < numRounds; i++ {
		v1 -= (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.key[(sum>>11)&3])
		sum -= delta
		v0 -= (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.key[sum&3])
	}

	binary.BigEndian.PutUint32(dst[0:4], v0)
	binary.BigEndian.PutUint32(dst[4:8], v1)
}
