package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/davecgh/go-spew/spew"

	"github.com/vk/hrmkit/internal/collect"
	"github.com/vk/hrmkit/internal/ctxlog"
	"github.com/vk/hrmkit/internal/layout"
	"github.com/vk/hrmkit/internal/resolve"
)

// runCopy copies the requested HRM bindings from a layer of the source
// document onto a layer of the target document, carries over the
// transitive hold-tap/macro support set and any layers those macros
// activate, remaps the moved layer indices, and finishes with the
// whole-document rename cleanup.
func (a *App) runCopy(ctx context.Context, cfg *Config) error {
	logger := ctxlog.FromContext(ctx)

	source, err := a.loader.Load(ctx, cfg.SourcePath)
	if err != nil {
		return err
	}
	target, err := a.loader.Load(ctx, cfg.TargetPath)
	if err != nil {
		return err
	}

	srcIdx, err := source.FindLayerIndex(cfg.SrcLayer)
	if err != nil {
		return err
	}
	dstIdx, err := target.FindLayerIndex(cfg.DstLayer)
	if err != nil {
		return err
	}
	srcLayer := source.Layers[srcIdx]
	dstLayer := target.Layers[dstIdx]

	wanted := make([]string, len(cfg.Values))
	for i, v := range cfg.Values {
		wanted[i] = layout.NormalizeValueName(v)
	}

	entries := collect.LayerEntries(srcLayer, wanted)
	if missing := missingValues(wanted, entries); len(missing) > 0 {
		return &layout.MissingValuesError{Layer: cfg.SrcLayer, Values: missing}
	}
	for _, e := range entries {
		dstLayer[e.Index] = e.Key.Clone()
	}
	logger.Debug("Copied layer bindings.", "count", len(entries), "layer", cfg.DstLayer)

	// First pass: the macros reachable from the copied bindings tell us
	// which source layers they momentarily activate; everything bound on
	// those layers joins the required set before the full collection.
	initialValues := entryValues(entries)
	_, macrosInitial := collect.Collect(source, initialValues)
	requiredIndices := resolve.MacroLayerIndices(macrosInitial)
	layerValues := collect.LayerValues(source, requiredIndices)

	allRequired := append([]string(nil), initialValues...)
	for v := range layerValues {
		allRequired = append(allRequired, v)
	}
	sort.Strings(allRequired)

	holdTapsSrc, macrosSrc := collect.Collect(source, allRequired)
	holdTaps := make([]*layout.HoldTap, len(holdTapsSrc))
	for i, h := range holdTapsSrc {
		holdTaps[i] = h.Clone()
	}
	macros := make([]*layout.Macro, len(macrosSrc))
	for i, m := range macrosSrc {
		macros[i] = m.Clone()
	}
	logger.Debug("Collected support definitions.",
		"holdTaps", len(holdTaps), "macros", len(macros))
	if cfg.DumpDefs {
		spew.Fdump(a.errW, holdTaps, macros)
	}

	requiredIndices = resolve.MacroLayerIndices(macros)
	layerMapping := resolve.Layers(ctx, source, target, requiredIndices)
	resolve.RemapMacroLayers(macros, layerMapping)

	for _, h := range holdTaps {
		target.UpsertHoldTap(h)
	}
	for _, m := range macros {
		target.UpsertMacro(m)
	}

	a.renamer.Cleanup(target)

	if err := a.loader.Save(ctx, cfg.OutputPath, target); err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Copied %d bindings from %q to %q into %s.\n",
		len(entries), cfg.SrcLayer, cfg.DstLayer, cfg.OutputPath)
	if len(holdTaps) > 0 {
		fmt.Fprintf(a.outW, "Included %d holdTap definitions.\n", len(holdTaps))
	}
	if len(macros) > 0 {
		fmt.Fprintf(a.outW, "Included %d macro definitions.\n", len(macros))
	}
	if len(layerMapping) > 0 {
		fmt.Fprintf(a.outW, "Added/updated layers: %s.\n",
			mappedLayerNames(target, layerMapping))
	}
	return nil
}

// missingValues returns the wanted values with no entry on the layer,
// sorted for a stable error message.
func missingValues(wanted []string, entries []collect.Entry) []string {
	found := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if v, ok := e.Key.Value.StringValue(); ok {
			found[v] = struct{}{}
		}
	}
	var missing []string
	for _, w := range wanted {
		if _, ok := found[w]; !ok {
			missing = append(missing, w)
		}
	}
	sort.Strings(missing)
	return missing
}

// entryValues returns the distinct behavior values of the entries, sorted.
func entryValues(entries []collect.Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if v, ok := e.Key.Value.StringValue(); ok {
			seen[v] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// mappedLayerNames lists the destination layer names of a mapping, in
// ascending source-index order.
func mappedLayerNames(doc *layout.Document, mapping map[int]int) string {
	srcIndices := make([]int, 0, len(mapping))
	for idx := range mapping {
		srcIndices = append(srcIndices, idx)
	}
	sort.Ints(srcIndices)

	names := ""
	for i, idx := range srcIndices {
		if i > 0 {
			names += ", "
		}
		names += doc.LayerNames[mapping[idx]]
	}
	return names
}
