package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tlang/internal/limits"
)

const DefaultManifestName = "tlang.toml"

const (
	DefaultEntry  = "main.t"
	DefaultFormat = "text"
	DefaultIndent = 2
)

// ErrNoManifest is returned by Find when dir holds no manifest.
var ErrNoManifest = errors.New("no " + DefaultManifestName + " found")

type Manifest struct {
	Name   string       `toml:"name"`
	Entry  string       `toml:"entry"`
	Parser ParserConfig `toml:"parser"`
	Dump   DumpConfig   `toml:"dump"`
	Fmt    FmtConfig    `toml:"fmt"`

	// Dir is the directory the manifest was loaded from.
	Dir string `toml:"-"`
}

type ParserConfig struct {
	MaxDepth int `toml:"max_depth"` // 0 disables the guard
}

type DumpConfig struct {
	Format string `toml:"format"` // text | yaml
	Indent int    `toml:"indent"`
}

type FmtConfig struct {
	Indent int  `toml:"indent"`
	Tabs   bool `toml:"tabs"`
}

// Default is the manifest used when a project has none.
func Default() *Manifest {
	return &Manifest{
		Entry:  DefaultEntry,
		Parser: ParserConfig{MaxDepth: limits.DefaultMaxDepth},
		Dump:   DumpConfig{Format: DefaultFormat, Indent: DefaultIndent},
		Fmt:    FmtConfig{Indent: DefaultIndent},
	}
}

// LoadManifest decodes path over Default, so absent keys keep their default
// values and an explicit max_depth = 0 disables the guard.
func LoadManifest(path string) (*Manifest, error) {
	m := Default()
	md, err := toml.DecodeFile(path, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if m.Entry == "" {
		m.Entry = DefaultEntry
	}
	if m.Dump.Format == "" {
		m.Dump.Format = DefaultFormat
	}
	m.Dir = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) Validate() error {
	if m.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must be >= 0, got %d", m.Parser.MaxDepth)
	}
	switch m.Dump.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("dump.format must be text or yaml, got %q", m.Dump.Format)
	}
	if m.Dump.Indent < 1 || m.Dump.Indent > 8 {
		return fmt.Errorf("dump.indent must be between 1 and 8, got %d", m.Dump.Indent)
	}
	if m.Fmt.Indent < 1 || m.Fmt.Indent > 8 {
		return fmt.Errorf("fmt.indent must be between 1 and 8, got %d", m.Fmt.Indent)
	}
	return nil
}

// EntryPath resolves Entry against the manifest directory.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) || m.Dir == "" {
		return m.Entry
	}
	return filepath.Join(m.Dir, m.Entry)
}

// DumpIndent is the indent unit for tree dumps.
func (m *Manifest) DumpIndent() string {
	return strings.Repeat(" ", m.Dump.Indent)
}

// FmtIndent is the indent unit for source formatting.
func (m *Manifest) FmtIndent() string {
	if m.Fmt.Tabs {
		return "\t"
	}
	return strings.Repeat(" ", m.Fmt.Indent)
}

// Find returns the manifest path in dir.
func Find(dir string) (string, error) {
	path := filepath.Join(dir, DefaultManifestName)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", dir, ErrNoManifest)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return path, nil
}
