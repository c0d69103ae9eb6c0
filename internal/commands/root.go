package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/teanc/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "teanc [flags] command [flags]"
	root.Short = "XTEA file encryption utility"
	root.Long = `A file encryption utility built on the XTEA block cipher in CBC mode.
Provides commands for key generation, encryption, and decryption.`

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("delete", false, "Delete the original file after successful encryption/decryption")
	root.PersistentFlags().Bool("stats", false, "Print a processing summary on exit")
	root.PersistentFlags().Bool("dry", false, "Preview which files would be processed without touching them")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Keep the source modification time on the output file")

	root.PersistentFlags().StringP("key", "k", "", "Encryption key (16 bytes, hex-encoded)")
	root.PersistentFlags().
		StringP("key-file", "f", "", "Path to the key file with the encryption key (16 bytes, hex-encoded)")

	root.PersistentFlags().StringSliceP("include", "i", nil, "Glob pattern(s) selecting files to process")
	root.PersistentFlags().StringSliceP("exclude", "e", nil, "Glob pattern(s) excluding files from processing")
	root.PersistentFlags().String("include-from", "", "JSONC file with include patterns")
	root.PersistentFlags().String("exclude-from", "", "JSONC file with exclude patterns")

	root.PersistentFlags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	root.PersistentFlags().
		String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewCheckCommand(cfg),
		NewGenerateCommand(),
	)

	return root
}
