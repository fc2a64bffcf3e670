package app

import (
	"context"
	"fmt"

	"github.com/vk/hrmkit/internal/ctxlog"
)

// Run executes the configured command. The output document is written
// once, fully, only after every transform step has completed; a fatal
// error on any step leaves the output path untouched.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", cfg.Command)

	var err error
	switch cfg.Command {
	case CommandCopy:
		err = a.runCopy(ctx, cfg)
	case CommandRename:
		err = a.runRename(ctx, cfg)
	case CommandInsert:
		err = a.runInsert(ctx, cfg)
	case CommandSwap:
		err = a.runSwap(ctx, cfg)
	default:
		err = fmt.Errorf("unknown command %q", cfg.Command)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
