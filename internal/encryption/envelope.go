package encryption

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	envelopeMagic   = "TEAN"
	envelopeVersion = byte(1)

	envelopeFlagExec = 0x01
)

type envelopeMode byte

// modeCBC is the only mode currently written; the byte exists so the format
// can grow without breaking old files.
const modeCBC envelopeMode = 0x01

const envelopeHeaderSize = len(envelopeMagic) + 3

// ErrProcessing indicates an error during envelope processing.
var ErrProcessing = errors.New("envelope processing error")

func newEnvelopeHeader(mode envelopeMode, executable bool) []byte {
	header := make([]byte, envelopeHeaderSize)
	copy(header, []byte(envelopeMagic))

	header[len(envelopeMagic)] = envelopeVersion

	var flags byte

	if executable {
		flags |= envelopeFlagExec
	}

	header[len(envelopeMagic)+1] = flags
	header[len(envelopeMagic)+2] = byte(mode)

	return header
}

func parseEnvelopeHeader(header []byte) (envelopeMode, bool, error) {
	if len(header) != envelopeHeaderSize {
		return 0, false, fmt.Errorf("%w: envelope header too short", ErrProcessing)
	}

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return 0, false, fmt.Errorf("%w: invalid envelope magic", ErrProcessing)
	}

	version := header[len(envelopeMagic)]
	if version != envelopeVersion {
		return 0, false, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	flags := header[len(envelopeMagic)+1]

	mode := envelopeMode(header[len(envelopeMagic)+2])
	if mode != modeCBC {
		return 0, false, fmt.Errorf("%w: unsupported envelope mode %d", ErrProcessing, mode)
	}

	executable := flags&envelopeFlagExec != 0

	return mode, executable, nil
}
