package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/hrmkit/internal/app"
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

const usageText = `
hrmkit - Home-Row-Mod tooling for Glove80 layout JSON files.

Usage:
  hrmkit <command> [options]

Commands:
  copy    Copy HRM bindings and their support set between two layouts.
  rename  Rename legacy HRM behavior names to the canonical scheme.
  insert  Split Base-layer HRM keys into a dedicated layer after Base.
  swap    Swap two layers across transparent positions.

Run 'hrmkit <command> -h' for command options.
`

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}

	command := args[0]
	switch command {
	case "-h", "--help", "help":
		fmt.Fprint(output, usageText)
		return nil, true, nil
	case app.CommandCopy, app.CommandRename, app.CommandInsert, app.CommandSwap:
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", command)}
	}

	flagSet := flag.NewFlagSet("hrmkit "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)

	cfg := app.Config{Command: command}
	var values stringList

	switch command {
	case app.CommandCopy:
		flagSet.StringVar(&cfg.SourcePath, "source", "", "Source layout JSON path.")
		flagSet.StringVar(&cfg.TargetPath, "target", "", "Target layout JSON path.")
		flagSet.StringVar(&cfg.SrcLayer, "src-layer", "", "Layer in the source layout to pull bindings from.")
		flagSet.StringVar(&cfg.DstLayer, "dst-layer", "", "Layer in the target layout to update.")
		flagSet.Var(&values, "value", "Behavior value to copy (repeat for multiple). Prefix '&' optional.")
		flagSet.StringVar(&cfg.OutputPath, "output", "", "Output path. Defaults to <target>_with_hrm.json.")
		flagSet.StringVar(&cfg.SchemePath, "scheme", "", "Optional HCL naming-scheme file.")
		flagSet.BoolVar(&cfg.DumpDefs, "dump", false, "Dump the collected definition set for troubleshooting.")
	case app.CommandRename:
		flagSet.StringVar(&cfg.InputPath, "input", "", "Layout JSON file containing HRM names.")
		flagSet.StringVar(&cfg.OutputPath, "output", "", "Output path. Defaults to overwriting the input.")
		flagSet.StringVar(&cfg.SchemePath, "scheme", "", "Optional HCL naming-scheme file.")
	case app.CommandInsert:
		flagSet.StringVar(&cfg.InputPath, "input", "", "Input layout JSON path.")
		flagSet.StringVar(&cfg.OutputPath, "output", "", "Output path. Defaults to overwriting the input.")
	case app.CommandSwap:
		flagSet.StringVar(&cfg.InputPath, "input", "", "Input layout JSON path.")
		flagSet.StringVar(&cfg.OutputPath, "output", "", "Output path. Defaults to overwriting the input.")
		flagSet.StringVar(&cfg.LayerA, "layer-a", "Base", "Layer to demote to a transparent fallback.")
		flagSet.StringVar(&cfg.LayerB, "layer-b", "BaseModded", "Layer to promote into layer-a's slot.")
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	cfg.Values = values

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}
