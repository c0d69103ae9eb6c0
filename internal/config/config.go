// Package config defines and validates the runtime configuration.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds all settings shared by the commands. Fields are populated by
// viper from flags and environment variables.
type Config struct {
	// Key is the hex-encoded 16-byte encryption key.
	Key string `mapstructure:"key" validate:"omitempty,hexadecimal,len=32,excluded_with=KeyFile"`

	// KeyFile points to a file holding the hex-encoded key.
	KeyFile string `mapstructure:"key-file" validate:"omitempty,file"`

	// Parallel is the number of files processed concurrently.
	Parallel int `mapstructure:"parallel" validate:"min=1"`

	Quiet              bool `mapstructure:"quiet"`
	Delete             bool `mapstructure:"delete"`
	Stats              bool `mapstructure:"stats"`
	Dry                bool `mapstructure:"dry"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// EncryptSuffix is appended to encrypted files; DecryptSuffix is appended
	// after stripping EncryptSuffix on decryption.
	EncryptSuffix string `mapstructure:"encrypt-ext"`
	DecryptSuffix string `mapstructure:"decrypt-ext"`

	// Include/Exclude hold glob patterns; the *From variants point to JSONC
	// pattern files.
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from" validate:"omitempty,file"`
	ExcludeFrom string   `mapstructure:"exclude-from" validate:"omitempty,file"`

	// Decrypt is set by the decrypt subcommand.
	Decrypt bool

	// Files are the resolved positional arguments.
	Files []string `validate:"min=1"`
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}
