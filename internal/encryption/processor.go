package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/idelchi/teanc/internal/config"
	"github.com/idelchi/teanc/internal/fileutil"
	"github.com/idelchi/teanc/pkg/xtea"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key stores the raw 16-byte XTEA key
	key []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration,
// resolving the key from the hex flag or the key file.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	var (
		encryptionKey []byte
		err           error
	)

	switch {
	case cfg.Key != "":
		encryptionKey, err = key.FromHex(cfg.Key)
	case cfg.KeyFile != "":
		encryptionKey, err = os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		encryptionKey, err = key.FromHex(strings.TrimSpace(string(encryptionKey)))
	default:
		return nil, errors.New("a key is required (--key or --key-file)")
	}

	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	if len(encryptionKey) != xtea.KeySize {
		return nil, fmt.Errorf("key must be %d bytes (%d hex characters)", xtea.KeySize, 2*xtea.KeySize)
	}

	return &Processor{
		cfg:     cfg,
		key:     encryptionKey,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all files specified in the
// configuration, encrypting or decrypting based on the settings.
// Returns the number of successes and errors, and the total output size.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)
			} else {
				processed++

				totalSize += result.OutputSize

				if !p.cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// encrypt writes the envelope header and the encrypted stream to writer.
// The isExec parameter preserves the executable bit information.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer, isExec bool) error {
	if _, err := writer.Write(newEnvelopeHeader(modeCBC, isExec)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	return p.encryptStream(reader, writer)
}

// decrypt parses the envelope header and streams the decrypted plaintext to
// writer. It returns whether the original file was executable.
func (p *Processor) decrypt(reader io.Reader, writer io.Writer) (bool, error) {
	header := make([]byte, envelopeHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return false, fmt.Errorf("reading header: %w", err)
	}

	_, exec, err := parseEnvelopeHeader(header)
	if err != nil {
		return false, err
	}

	return exec, p.decryptStream(reader, writer)
}

// processFile handles one file, staging the output through a temp file so a
// failed run never leaves a partial result behind.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	staging, err := fileutil.NewAtomic(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer staging.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	const ownerReadWrite = 0o600

	perm := os.FileMode(ownerReadWrite)

	if p.cfg.Decrypt {
		execOut, err := p.decrypt(inFile, staging.File)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}

		if execOut {
			perm |= 0o111
		}
	} else {
		if err := p.encrypt(inFile, staging.File, staging.IsExec()); err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}

		if staging.IsExec() {
			perm |= 0o111
		}
	}

	if err := inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	size, err = staging.Commit(perm, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.EncryptSuffix

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.EncryptSuffix)
		ext = p.cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
