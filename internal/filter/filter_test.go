package filter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/teanc/internal/filter"
)

func TestMatcher(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		match   bool
	}{
		{"*.enc", "secrets.enc", true},
		{"*.enc", "dir/nested/secrets.enc", true}, // * crosses /
		{"*.enc", "secrets.txt", false},
		{"src/*", "src/a/b/c.go", true},
		{"?.go", "a.go", true},
		{"?.go", "ab.go", false},
		{"[ab].go", "a.go", true},
		{"[ab].go", "c.go", false},
		{"[!ab].go", "c.go", true},
		{"[!ab].go", "a.go", false},
		{`a\*.go`, "a*.go", true},
		{`a\*.go`, "ab.go", false},
		{"docs/*.md", "docs/readme.md", true},
		{"docs/*.md", "readme.md", false},
	}

	for _, tc := range cases {
		m, err := filter.NewMatcher([]string{tc.pattern})
		if err != nil {
			t.Fatalf("NewMatcher(%q): %v", tc.pattern, err)
		}

		if got := m.MatchAny(tc.path); got != tc.match {
			t.Errorf("MatchAny(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.match)
		}
	}
}

func TestMatcherErrors(t *testing.T) {
	for _, pattern := range []string{"[abc", `trailing\`} {
		if _, err := filter.NewMatcher([]string{pattern}); err == nil {
			t.Errorf("NewMatcher(%q): expected error", pattern)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.txt", "b.enc", "sub/c.txt", "sub/d.enc"} {
		path := filepath.Join(dir, name)

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = os.Chdir(wd) })

	files, scanned, err := filter.Resolve([]string{"."}, []string{"*.enc"}, nil, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if scanned != 4 {
		t.Errorf("scanned = %d, want 4", scanned)
	}

	if len(files) != 2 {
		t.Errorf("matched %v, want the two .enc files", files)
	}

	// Excludes win over includes.
	files, _, err = filter.Resolve([]string{"."}, []string{"*.enc"}, []string{"sub/*"}, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(files) != 1 || filepath.ToSlash(files[0]) != "b.enc" {
		t.Errorf("matched %v, want [b.enc]", files)
	}

	if _, _, err := filter.Resolve([]string{"/abs/path"}, nil, nil, false); err == nil {
		t.Error("Resolve with absolute path: expected error")
	}
}
