package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tlang/internal/config"
	"tlang/internal/frontend"
)

const sourceExt = ".t"

// manifestFor loads --config when given, else the manifest in dir, else
// the defaults. required makes a missing manifest an error.
func (a *app) manifestFor(dir string, required bool) (*config.Manifest, error) {
	if a.configPath != "" {
		m, err := config.LoadManifest(a.configPath)
		if err != nil {
			return nil, err
		}
		log.Infof("using manifest %s", a.configPath)
		return m, nil
	}
	path, err := config.Find(dir)
	if err != nil {
		if errors.Is(err, config.ErrNoManifest) && !required {
			log.Debugf("no manifest in %s, using defaults", dir)
			return config.Default(), nil
		}
		return nil, err
	}
	log.Infof("using manifest %s", path)
	return config.LoadManifest(path)
}

// resolveEntry maps the optional path argument to one source file. A file
// is used as is; a directory, or no argument, goes through the manifest
// entry.
func (a *app) resolveEntry(args []string) (string, *config.Manifest, error) {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if len(args) == 0 && a.configPath != "" {
		m, err := a.manifestFor("", true)
		if err != nil {
			return "", nil, err
		}
		return m.EntryPath(), m, nil
	}

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("path not found: %s", target)
		}
		return "", nil, err
	}
	if !info.IsDir() {
		m, err := a.manifestFor(filepath.Dir(target), false)
		if err != nil {
			return "", nil, err
		}
		return target, m, nil
	}
	m, err := a.manifestFor(target, true)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(m.Entry) == "" {
		return "", nil, fmt.Errorf("%s: missing entry", filepath.Join(target, config.DefaultManifestName))
	}
	return m.EntryPath(), m, nil
}

func frontendOptions(m *config.Manifest) frontend.Options {
	return frontend.Options{MaxDepth: m.Parser.MaxDepth}
}

// collectSourceFiles expands directories into the .t files below them.
// Explicit file arguments are kept whatever their extension.
func collectSourceFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}

		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				base := filepath.Base(path)
				if path != target && (base == ".git" || base == "testdata" || strings.HasPrefix(base, "_")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, sourceExt) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tlangfmt-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
