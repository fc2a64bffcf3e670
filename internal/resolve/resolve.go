// Package resolve upholds the layer-index invariant when macros move
// between documents: every momentary-layer parameter must point at a valid
// index into the destination's layer list. It collects the source indices
// the moved macros require, ensures the destination has a layer for each,
// and produces the index remapping to rewrite the macros with.
package resolve

import (
	"context"
	"sort"

	"github.com/vk/hrmkit/internal/ctxlog"
	"github.com/vk/hrmkit/internal/layout"
)

// MomentaryActivator is the behavior that temporarily switches the active
// layer to the index given as its parameter.
const MomentaryActivator = "&mo"

// MacroLayerIndices scans the macros for momentary-layer bindings and
// returns every integer layer index they reference.
func MacroLayerIndices(macros []*layout.Macro) map[int]struct{} {
	indices := make(map[int]struct{})
	for _, m := range macros {
		for _, b := range m.Bindings {
			if b.Key == nil {
				continue
			}
			if v, ok := b.Key.Value.StringValue(); !ok || v != MomentaryActivator {
				continue
			}
			for _, p := range b.Key.Params {
				if n, ok := p.Value.IntValue(); ok {
					indices[n] = struct{}{}
				}
			}
		}
	}
	return indices
}

// Layers makes sure the destination document has a layer for every required
// source index and returns the source-index to destination-index mapping.
// Required indices are processed in ascending order. A source layer whose
// name already exists in the destination maps to the existing index;
// otherwise a deep copy of the layer and its name is appended. The
// destination is only ever appended to, so previously valid indices stay
// valid. Out-of-range source indices are skipped, not failed; the caller's
// macros keep those parameters untouched (a latent dangling reference the
// debug log makes visible).
func Layers(ctx context.Context, src, dst *layout.Document, required map[int]struct{}) map[int]int {
	logger := ctxlog.FromContext(ctx)

	existing := make(map[string]int, len(dst.LayerNames))
	for i, name := range dst.LayerNames {
		existing[name] = i
	}

	ordered := make([]int, 0, len(required))
	for idx := range required {
		ordered = append(ordered, idx)
	}
	sort.Ints(ordered)

	mapping := make(map[int]int, len(ordered))
	for _, srcIdx := range ordered {
		if srcIdx < 0 || srcIdx >= len(src.Layers) {
			logger.Debug("Skipping out-of-range layer reference.",
				"index", srcIdx, "source_layers", len(src.Layers))
			continue
		}
		name := src.LayerNames[srcIdx]
		if dstIdx, ok := existing[name]; ok {
			mapping[srcIdx] = dstIdx
			continue
		}
		dst.LayerNames = append(dst.LayerNames, name)
		dst.Layers = append(dst.Layers, src.Layers[srcIdx].Clone())
		newIdx := len(dst.LayerNames) - 1
		existing[name] = newIdx
		mapping[srcIdx] = newIdx
		logger.Debug("Appended layer to destination.", "name", name, "index", newIdx)
	}
	return mapping
}

// RemapMacroLayers rewrites every momentary-layer integer parameter in the
// macros through the mapping. Parameters whose index is not in the mapping
// are left untouched.
func RemapMacroLayers(macros []*layout.Macro, mapping map[int]int) {
	for _, m := range macros {
		for _, b := range m.Bindings {
			if b.Key == nil {
				continue
			}
			if v, ok := b.Key.Value.StringValue(); !ok || v != MomentaryActivator {
				continue
			}
			for _, p := range b.Key.Params {
				if n, ok := p.Value.IntValue(); ok {
					if mapped, ok := mapping[n]; ok {
						p.Value = layout.Int(mapped)
					}
				}
			}
		}
	}
}
