package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"tlang/internal/diag"
)

const version = "0.1.0"

var log = commonlog.GetLogger("tlang.cli")

// errReported means the failure was already printed as diagnostics.
var errReported = errors.New("errors reported")

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "tlang:", err)
		}
		os.Exit(1)
	}
}

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    int
	color      string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "tlang",
		Short:         "Front end for tlang sources: lex, parse, dump and format",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.color {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("--color must be auto, always or never, got %q", a.color)
			}
			commonlog.Configure(a.verbose, nil)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a tlang.toml manifest")
	flags.CountVarP(&a.verbose, "verbose", "v", "log more (repeat for debug output)")
	flags.StringVar(&a.color, "color", "auto", "color diagnostics: auto, always or never")

	root.AddCommand(
		a.tokensCmd(),
		a.astCmd(),
		a.checkCmd(),
		a.fmtCmd(),
		a.initCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tlang version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tlang version %s\n", version)
		},
	}
}

// useColor decides whether diagnostics written to w are colored.
func (a *app) useColor(w io.Writer) bool {
	switch a.color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// report prints err as a diagnostic when it carries a position and returns
// errReported; other errors are returned unchanged.
func (a *app) report(path, src string, err error) error {
	d, ok := diag.FromError(err)
	if !ok {
		return err
	}
	p := diag.NewPrinter(a.stderr, a.useColor(a.stderr))
	if perr := p.Print(path, src, d); perr != nil {
		return perr
	}
	return errReported
}
