package xtea_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/rand"
	"os"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/teanc/pkg/xtea"
)

// Case is a single known-answer vector from the YAML golden file.
type Case struct {
	Key        string `yaml:"key"`
	Plaintext  string `yaml:"plaintext"`
	Ciphertext string `yaml:"ciphertext"`
}

// Group is a named collection of vectors.
type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadVectors(t *testing.T) []Group {
	t.Helper()

	data, err := os.ReadFile("testdata/vectors.yml")
	if err != nil {
		t.Fatalf("reading vectors: %v", err)
	}

	var groups []Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		t.Fatalf("parsing vectors: %v", err)
	}

	if len(groups) == 0 {
		t.Fatal("no vector groups found")
	}

	return groups
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding %q: %v", s, err)
	}

	return b
}

func TestVectors(t *testing.T) {
	for _, group := range loadVectors(t) {
		t.Run(group.Name, func(t *testing.T) {
			for _, tc := range group.Cases {
				key := mustHex(t, tc.Key)
				plaintext := mustHex(t, tc.Plaintext)
				ciphertext := mustHex(t, tc.Ciphertext)

				c, err := xtea.NewCipher(key)
				if err != nil {
					t.Fatalf("NewCipher(%s): %v", tc.Key, err)
				}

				got := make([]byte, xtea.BlockSize)

				c.Encrypt(got, plaintext)
				if !bytes.Equal(got, ciphertext) {
					t.Errorf("Encrypt(%s) = %X, want %s", tc.Plaintext, got, tc.Ciphertext)
				}

				c.Decrypt(got, ciphertext)
				if !bytes.Equal(got, plaintext) {
					t.Errorf("Decrypt(%s) = %X, want %s", tc.Ciphertext, got, tc.Plaintext)
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data

	key := make([]byte, xtea.KeySize)
	block := make([]byte, xtea.BlockSize)
	encrypted := make([]byte, xtea.BlockSize)
	decrypted := make([]byte, xtea.BlockSize)

	for i := 0; i < 100; i++ {
		rng.Read(key)
		rng.Read(block)

		c, err := xtea.NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher: %v", err)
		}

		c.Encrypt(encrypted, block)

		if bytes.Equal(encrypted, block) {
			t.Errorf("ciphertext equals plaintext for block %X", block)
		}

		c.Decrypt(decrypted, encrypted)

		if !bytes.Equal(decrypted, block) {
			t.Errorf("round trip of %X gave %X", block, decrypted)
		}
	}
}

func TestEncryptInPlace(t *testing.T) {
	c, err := xtea.NewCipher(make([]byte, xtea.KeySize))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	block := []byte("ABCDEFGH")
	want := make([]byte, xtea.BlockSize)
	c.Encrypt(want, block)

	c.Encrypt(block, block)

	if !bytes.Equal(block, want) {
		t.Errorf("in-place Encrypt = %X, want %X", block, want)
	}
}

func TestKeySize(t *testing.T) {
	for _, size := range []int{0, 8, 15, 17, 32} {
		_, err := xtea.NewCipher(make([]byte, size))

		var kse xtea.KeySizeError
		if !errors.As(err, &kse) {
			t.Errorf("NewCipher with %d-byte key: got %v, want KeySizeError", size, err)

			continue
		}

		if int(kse) != size {
			t.Errorf("KeySizeError = %d, want %d", int(kse), size)
		}
	}
}
