package app

import (
	"errors"
	"fmt"

	"github.com/vk/hrmkit/internal/fsutil"
	"github.com/vk/hrmkit/internal/splice"
)

// The subcommands the app can run.
const (
	CommandCopy   = "copy"
	CommandRename = "rename"
	CommandInsert = "insert"
	CommandSwap   = "swap"
)

// outputMarker is appended to the target's file stem when copy runs
// without an explicit --output.
const outputMarker = "_with_hrm"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string

	// copy
	SourcePath string
	TargetPath string
	SrcLayer   string
	DstLayer   string
	Values     []string
	DumpDefs   bool

	// rename, insert, swap
	InputPath string

	// swap
	LayerA string
	LayerB string

	// OutputPath defaults per command: copy derives a sibling of the
	// target, the in-place commands overwrite their input.
	OutputPath string
	// SchemePath is an optional HCL naming-scheme file.
	SchemePath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills in per-command defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandCopy:
		if cfg.SourcePath == "" || cfg.TargetPath == "" {
			return nil, errors.New("copy requires --source and --target")
		}
		if cfg.SrcLayer == "" || cfg.DstLayer == "" {
			return nil, errors.New("copy requires --src-layer and --dst-layer")
		}
		if len(cfg.Values) == 0 {
			return nil, errors.New("copy requires at least one --value")
		}
		if cfg.OutputPath == "" {
			cfg.OutputPath = fsutil.DeriveOutputPath(cfg.TargetPath, outputMarker)
		}
	case CommandRename, CommandInsert, CommandSwap:
		if cfg.InputPath == "" {
			return nil, fmt.Errorf("%s requires --input", cfg.Command)
		}
		if cfg.OutputPath == "" {
			cfg.OutputPath = cfg.InputPath
		}
		if cfg.Command == CommandSwap {
			if cfg.LayerA == "" {
				cfg.LayerA = splice.BaseLayerName
			}
			if cfg.LayerB == "" {
				cfg.LayerB = "BaseModded"
			}
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	return &cfg, nil
}
