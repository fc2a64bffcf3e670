package app

import (
	"context"
	"fmt"

	"github.com/vk/hrmkit/internal/splice"
)

// runRename applies the whole-document rename cleanup: legacy names to
// canonical, regenerated descriptions, sorted behavior collections.
func (a *App) runRename(ctx context.Context, cfg *Config) error {
	doc, err := a.loader.Load(ctx, cfg.InputPath)
	if err != nil {
		return err
	}

	a.renamer.Cleanup(doc)

	if err := a.loader.Save(ctx, cfg.OutputPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "Renamed behaviors in %s (%d holdTaps, %d macros).\n",
		cfg.OutputPath, len(doc.HoldTaps), len(doc.Macros))
	return nil
}

// runInsert splits the canonical HRM keys of the Base layer into a
// dedicated layer inserted after it.
func (a *App) runInsert(ctx context.Context, cfg *Config) error {
	doc, err := a.loader.Load(ctx, cfg.InputPath)
	if err != nil {
		return err
	}

	if err := splice.InsertAfterBase(ctx, doc, a.scheme.CanonicalPrefix); err != nil {
		return err
	}

	if err := a.loader.Save(ctx, cfg.OutputPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "Inserted %q layer after %q into %s.\n",
		splice.HRMLayerName, splice.BaseLayerName, cfg.OutputPath)
	return nil
}

// runSwap exchanges the two configured layers across their transparent
// positions.
func (a *App) runSwap(ctx context.Context, cfg *Config) error {
	doc, err := a.loader.Load(ctx, cfg.InputPath)
	if err != nil {
		return err
	}

	if err := splice.Swap(doc, cfg.LayerA, cfg.LayerB); err != nil {
		return err
	}

	if err := a.loader.Save(ctx, cfg.OutputPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "Swapped layers %q and %q into %s.\n",
		cfg.LayerA, cfg.LayerB, cfg.OutputPath)
	return nil
}
