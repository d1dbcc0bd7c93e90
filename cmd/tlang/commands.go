package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"tlang/internal/config"
	"tlang/internal/format"
	"tlang/internal/frontend"
)

const starterProgram = "int32 main() {\n  return 0;\n}\n"

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [path]",
		Short: "Print the token stream of a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := a.resolveEntry(args)
			if err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			unit, err := frontend.Lex(path, string(src))
			if err != nil {
				return a.report(path, unit.Source, err)
			}
			out := cmd.OutOrStdout()
			for _, tok := range unit.Tokens {
				fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Line, tok.Col, tok.Type, tok.Lexeme)
			}
			return nil
		},
	}
}

func (a *app) astCmd() *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:   "ast [path]",
		Short: "Parse a source file and print its syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, m, err := a.resolveEntry(args)
			if err != nil {
				return err
			}
			if outFormat == "" {
				outFormat = m.Dump.Format
			}
			unit, err := frontend.Load(path, frontendOptions(m))
			if err != nil {
				if unit == nil {
					return err
				}
				return a.report(path, unit.Source, err)
			}
			s, err := format.Render(unit.Program, format.Options{Format: outFormat, Indent: m.DumpIndent()})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFormat, "format", "f", "", "output format: text or yaml (default from manifest)")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Lex and parse sources, reporting the first error in each",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				files []string
				m     *config.Manifest
				err   error
			)
			if len(args) == 0 {
				var entry string
				entry, m, err = a.resolveEntry(nil)
				if err != nil {
					return err
				}
				files = []string{entry}
			} else {
				if m, err = a.manifestFor(".", false); err != nil {
					return err
				}
				if files, err = collectSourceFiles(args); err != nil {
					return err
				}
			}

			failed := 0
			for _, path := range files {
				unit, err := frontend.Load(path, frontendOptions(m))
				if err != nil {
					if unit == nil {
						return err
					}
					if rerr := a.report(path, unit.Source, err); rerr != errReported {
						return rerr
					}
					failed++
					continue
				}
				log.Infof("%s: ok", path)
			}
			if failed > 0 {
				fmt.Fprintf(a.stderr, "%d of %d files failed\n", failed, len(files))
				return errReported
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files\n", len(files))
			return nil
		},
	}
}

func (a *app) fmtCmd() *cobra.Command {
	var write, list bool
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Reformat source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			m, err := a.manifestFor(".", false)
			if err != nil {
				return err
			}
			files, err := collectSourceFiles(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			opt := format.Options{Indent: m.FmtIndent()}
			failed := false
			for _, path := range files {
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				formatted, err := format.Source(string(src), opt)
				if err != nil {
					if rerr := a.report(path, string(src), err); rerr != errReported {
						return rerr
					}
					failed = true
					continue
				}
				changed := formatted != string(src)
				if list && changed {
					fmt.Fprintln(out, path)
				}
				switch {
				case write && changed:
					if err := writeFileAtomic(path, []byte(formatted)); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					log.Infof("formatted %s", path)
				case !write && !list:
					fmt.Fprint(out, formatted)
				}
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to each file")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list files whose formatting differs")
	return cmd
}

// initManifest is what init writes; the remaining keys keep their defaults.
type initManifest struct {
	Name  string `toml:"name,omitempty"`
	Entry string `toml:"entry"`
}

func (a *app) initCmd() *cobra.Command {
	var (
		name  string
		entry string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a tlang.toml manifest and a starter program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if name == "" {
				abs, err := filepath.Abs(dir)
				if err != nil {
					return err
				}
				name = filepath.Base(abs)
			}

			manifestPath := filepath.Join(dir, config.DefaultManifestName)
			exists, err := pathExists(manifestPath)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", manifestPath)
			}

			var buf bytes.Buffer
			if err := toml.NewEncoder(&buf).Encode(initManifest{Name: name, Entry: entry}); err != nil {
				return err
			}
			if err := os.WriteFile(manifestPath, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", manifestPath)

			entryPath := filepath.Join(dir, entry)
			exists, err = pathExists(entryPath)
			if err != nil {
				return err
			}
			if exists {
				log.Infof("%s exists, leaving it", entryPath)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(entryPath, []byte(starterProgram), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", entryPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name (default: directory name)")
	cmd.Flags().StringVar(&entry, "entry", config.DefaultEntry, "entry source file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")
	return cmd
}
