// The teanc command encrypts and decrypts files with the XTEA block cipher
// in CBC mode.
package main

import (
	"os"

	"github.com/idelchi/teanc/internal/commands"
	"github.com/idelchi/teanc/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev" //nolint:gochecknoglobals

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		os.Exit(1)
	}
}
