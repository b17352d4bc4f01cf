package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/radioedit/internal/app"
	"github.com/vk/radioedit/internal/config"
	"github.com/vk/radioedit/internal/fieldref"
	"github.com/vk/radioedit/internal/radioerr"
)

// Exit codes returned by the command.
const (
	ExitRuntime      = 1
	ExitUsage        = 2
	ExitUnrecognized = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// FromRunError maps an error returned by the application to an ExitError.
func FromRunError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if errors.Is(err, radioerr.ErrNotFound) {
		return &ExitError{Code: ExitUnrecognized, Message: err.Error()}
	}
	return &ExitError{Code: ExitRuntime, Message: err.Error()}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("radioedit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprintf(output, `
radioedit - View and edit Yaesu radio memory images.

Usage:
  radioedit [options] IMAGE_PATH
  radioedit -list-radios [options]

Arguments:
  IMAGE_PATH
    Path to a memory image saved by the clone tool.

Configuration directory:
  -configdir, else $%s, else %s.
  It holds the "radios" catalog, one "<radio>.rad" description per radio
  and the optional %s settings file.

Options:
`, config.EnvConfigDir, config.DefaultConfigDir, config.SettingsFile)
		flagSet.PrintDefaults()
	}

	configDirFlag := flagSet.String("configdir", "", "Directory holding the radio catalog and descriptions.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	formatFlag := flagSet.String("format", "", "Dump format for -import and -export. Options: 'hcl' or 'yaml'.")
	noColorFlag := flagSet.Bool("no-color", false, "Disable colored table output.")
	identifyFlag := flagSet.Bool("identify", false, "Print the name of the radio that produced the image and exit.")
	listFlag := flagSet.Bool("list-radios", false, "List the radios in the catalog and exit.")
	sectionFlag := flagSet.String("section", "", "Show or export only this section.")
	importFlag := flagSet.String("import", "", "Apply the values of a dump file to the image.")
	exportFlag := flagSet.String("export", "", "Write the image values to a dump file, '-' for standard output.")
	outputFlag := flagSet.String("o", "", "Save the image to this file instead of in place.")

	var sets []fieldref.Assignment
	flagSet.Func("set", "Set a field, as Section.Field=value or Section.Field[row]=value. Repeatable.", func(s string) error {
		a, err := fieldref.ParseAssignment(s)
		if err != nil {
			return err
		}
		sets = append(sets, a)
		return nil
	})

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("expected one image path, got %d arguments", flagSet.NArg())}
	}
	path := flagSet.Arg(0)
	slog.Debug("Image path determined.", "path", path)

	if path == "" && !*listFlag {
		slog.Debug("No image path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg, err := app.NewConfig(app.Config{
		ImagePath:  path,
		ConfigDir:  config.ResolveConfigDir(*configDirFlag),
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
		DumpFormat: strings.ToLower(*formatFlag),
		NoColor:    *noColorFlag,
		Identify:   *identifyFlag,
		ListRadios: *listFlag,
		Section:    *sectionFlag,
		Sets:       sets,
		ImportPath: *importFlag,
		ExportPath: *exportFlag,
		OutputPath: *outputFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
