// Command annosql is the CLI collaborator spec.md §6 describes: it reads
// one or more annotated SQL files (or standard input), runs them through
// the frontend pipeline, and hands the results to the chosen backend
// target.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/emit"
	"github.com/annosql/annosql/frontend"
	"github.com/annosql/annosql/internal/applog"
	"github.com/annosql/annosql/internal/config"
)

// version is overridable at build time via -ldflags, the common Go
// convention for embedding a release version (SPEC_FULL.md supplemented
// feature 1).
var version = "dev"

var (
	// ErrNoInputFiles is returned when no file arguments and no config
	// default file list are available.
	ErrNoInputFiles = errors.New("no input files given")
	// ErrMultipleStdin is returned when "-" appears more than once among
	// the input paths (SPEC_FULL.md supplemented feature 3).
	ErrMultipleStdin = errors.New("cannot read standard input more than once")
	// ErrUnknownTarget is returned when --target names something not in
	// the emit registry.
	ErrUnknownTarget = errors.New("unknown target")
)

// CLI is the flag/argument surface kong parses, matching spec.md §6
// exactly: a required --target (or the literal "help"), one or more file
// paths or "-" for stdin.
var CLI struct {
	Target    string           `help:"Backend target, or 'help' to list targets." short:"t" required:""`
	Config    string           `help:"Path to the annosql.yaml project file." default:"annosql.yaml"`
	Output    string           `help:"Output directory for generated files." short:"o"`
	Verbose   bool             `help:"Enable debug-level logging." short:"v"`
	Quiet     bool             `help:"Suppress informational logging." short:"q"`
	LogFormat string           `help:"Log output format: text or json." default:"text"`
	Files     []string         `arg:"" optional:"" name:"file" help:"Input SQL files, or '-' for standard input."`
	Version   kong.VersionFlag `help:"Print the tool version and exit."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("annosql"),
		kong.Description("Generate typed database-access code from annotated SQL."),
		kong.Vars{"version": version},
	)

	logger := applog.New(CLI.Verbose, CLI.Quiet, CLI.LogFormat == "json")

	if err := run(logger); err != nil {
		var fd *fileDiagnostic
		if errors.As(err, &fd) {
			fmt.Fprint(os.Stderr, diag.Render(fd.filename, fd.input, fd.d))
		} else {
			fmt.Fprintf(os.Stderr, "annosql: %v\n", err)
		}

		os.Exit(1)
	}
}

// fileDiagnostic pairs a *diag.Diagnostic with the filename/input it came
// from, so main can call diag.Render without every layer threading those
// two strings through plain error returns.
type fileDiagnostic struct {
	filename string
	input    string
	d        *diag.Diagnostic
}

func (f *fileDiagnostic) Error() string { return f.d.Error() }

func run(logger *logrus.Logger) error {
	if CLI.Target == "help" {
		fmt.Print(emit.HelpText())
		return nil
	}

	target, ok := emit.Lookup(CLI.Target)
	if !ok {
		return fmt.Errorf("%w: %q (use --target help to list targets)", ErrUnknownTarget, CLI.Target)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	files := CLI.Files
	if len(files) == 0 {
		files = cfg.Files
	}

	if len(files) == 0 {
		return ErrNoInputFiles
	}

	docs, err := processFiles(files)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"files": len(docs), "target": CLI.Target}).Info("parsed and typechecked input")

	out, err := target.Run(docs)
	if err != nil {
		return err
	}

	return writeOutput(logger, out, cfg.Output)
}

// processFiles reads and runs the frontend pipeline over each file in
// order, stopping at the first diagnostic.
func processFiles(files []string) ([]ast.NamedDocument, error) {
	docs := make([]ast.NamedDocument, 0, len(files))

	seenStdin := false

	for _, f := range files {
		input, err := readOne(f, &seenStdin)
		if err != nil {
			return nil, err
		}

		name := displayName(f)

		doc, d := frontend.ProcessFile(name, input)
		if d != nil {
			return nil, &fileDiagnostic{filename: name, input: input, d: d}
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func readOne(f string, seenStdin *bool) (string, error) {
	if f == "-" {
		if *seenStdin {
			return "", ErrMultipleStdin
		}

		*seenStdin = true

		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(f)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f, err)
	}

	return string(data), nil
}

func displayName(f string) string {
	if f == "-" {
		return "<stdin>"
	}

	return f
}

// writeOutput prints out to stdout, unless an output directory was given
// either on the command line or in the config file, in which case it
// writes a single file there named after the target.
func writeOutput(logger *logrus.Logger, out, configOutput string) error {
	output := CLI.Output
	if output == "" {
		output = configOutput
	}

	if output == "" {
		fmt.Print(out)
		return nil
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", output, err)
	}

	dest := filepath.Join(output, CLI.Target+".out")
	if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	logger.WithFields(logrus.Fields{"path": dest}).Info("wrote output")

	return nil
}
