package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tlang/internal/limits"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestDefaults(t *testing.T) {
	path := writeManifest(t, "name = \"demo\"\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "demo" || m.Entry != DefaultEntry {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if m.Parser.MaxDepth != limits.DefaultMaxDepth {
		t.Fatalf("max depth = %d, want %d", m.Parser.MaxDepth, limits.DefaultMaxDepth)
	}
	if m.Dump.Format != "text" || m.DumpIndent() != "  " || m.FmtIndent() != "  " {
		t.Fatalf("unexpected dump/fmt settings %+v %+v", m.Dump, m.Fmt)
	}
	if got, want := m.EntryPath(), filepath.Join(filepath.Dir(path), "main.t"); got != want {
		t.Fatalf("entry path = %q, want %q", got, want)
	}
}

func TestLoadManifestFull(t *testing.T) {
	path := writeManifest(t, `
name = "shapes"
entry = "src/shapes.t"

[parser]
max_depth = 0

[dump]
format = "yaml"
indent = 4

[fmt]
tabs = true
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Parser.MaxDepth != 0 {
		t.Fatalf("explicit max_depth = 0 was overridden: %d", m.Parser.MaxDepth)
	}
	if m.Dump.Format != "yaml" || m.DumpIndent() != "    " {
		t.Fatalf("unexpected dump settings %+v", m.Dump)
	}
	if m.FmtIndent() != "\t" {
		t.Fatalf("fmt indent = %q, want tab", m.FmtIndent())
	}
	if !strings.HasSuffix(m.EntryPath(), filepath.Join("src", "shapes.t")) {
		t.Fatalf("entry path = %q", m.EntryPath())
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "name = demo\n", "tlang.toml"},
		{"unknown key", "name = \"x\"\ncolour = \"red\"\n", "unknown keys: colour"},
		{"negative depth", "[parser]\nmax_depth = -1\n", "max_depth must be >= 0"},
		{"bad format", "[dump]\nformat = \"json\"\n", "dump.format must be text or yaml"},
		{"bad indent", "[dump]\nindent = 9\n", "dump.indent must be between 1 and 8"},
		{"bad fmt indent", "[fmt]\nindent = 0\n", "fmt.indent must be between 1 and 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, tt.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFind(t *testing.T) {
	path := writeManifest(t, "name = \"demo\"\n")
	got, err := Find(filepath.Dir(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Fatalf("Find = %q, want %q", got, path)
	}

	if _, err := Find(t.TempDir()); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}
