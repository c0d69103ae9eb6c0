package config_test

import (
	"strings"
	"testing"

	"github.com/idelchi/teanc/internal/config"
)

func TestValidate(t *testing.T) {
	valid := config.Config{
		Key:      strings.Repeat("0f", 16),
		Parallel: 4,
		Files:    []string{"a.txt"},
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}

	cases := map[string]func(c *config.Config){
		"key not hex":        func(c *config.Config) { c.Key = strings.Repeat("zz", 16) },
		"key wrong length":   func(c *config.Config) { c.Key = "0f0f" },
		"no parallel workers": func(c *config.Config) { c.Parallel = 0 },
		"no files":           func(c *config.Config) { c.Files = nil },
		"key and key-file": func(c *config.Config) {
			c.KeyFile = "testdata/does-not-matter"
		},
	}

	for name, mutate := range cases {
		cfg := valid
		mutate(&cfg)

		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
