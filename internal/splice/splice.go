// Package splice performs whole-layer structural edits on a document:
// swapping a pair of layers across transparent-fallback positions, and
// splitting the home-row-mod keys of the base layer out into a dedicated
// layer inserted right after it.
package splice

import (
	"context"
	"errors"
	"strings"

	"github.com/vk/hrmkit/internal/ctxlog"
	"github.com/vk/hrmkit/internal/layout"
	"github.com/vk/hrmkit/internal/resolve"
)

// Swap exchanges the layers named nameA and nameB. Before the exchange,
// every transparent position of nameB receives a copy of nameA's key at
// that position, and nameA's position is reset to transparent, so the
// promoted layer keeps full coverage while the demoted one becomes a
// fallback. Non-transparent nameB keys are kept as-is apart from ensuring
// a params list; they are deliberately not copied back, so Swap is not its
// own inverse on those positions.
func Swap(doc *layout.Document, nameA, nameB string) error {
	idxA, err := doc.FindLayerIndex(nameA)
	if err != nil {
		return err
	}
	idxB, err := doc.FindLayerIndex(nameB)
	if err != nil {
		return err
	}

	layerA := doc.Layers[idxA]
	layerB := doc.Layers[idxB]
	if len(layerA) != len(layerB) {
		return &layout.ShapeMismatchError{
			LayerA: nameA, LayerB: nameB,
			LenA: len(layerA), LenB: len(layerB),
		}
	}

	for i := range layerA {
		if layerB[i].IsTransparent() {
			layerB[i] = layerA[i].Clone()
			layerA[i] = layout.TransparentKey()
		} else if layerB[i].Params == nil {
			layerB[i].Params = []*layout.Key{}
		}
	}

	doc.Layers[idxA], doc.Layers[idxB] = doc.Layers[idxB], doc.Layers[idxA]
	doc.LayerNames[idxA], doc.LayerNames[idxB] = doc.LayerNames[idxB], doc.LayerNames[idxA]
	return nil
}

// Base-layer names InsertAfterBase operates on, and the name of the layer
// it creates.
const (
	BaseLayerName     = "Base"
	OriginalLayerName = "Original"
	HRMLayerName      = "HRM"
)

// InsertAfterBase moves every canonical HRM key of the "Base" layer into a
// new all-transparent layer inserted immediately after Base, restoring the
// corresponding "Original" key into Base at those positions. The insertion
// shifts every later layer index by one, so every layer reference in the
// document (momentary-layer macro parameters and the layer lists of
// hold-taps, combos and input listeners) is rewritten through the full
// old-to-new index mapping.
func InsertAfterBase(ctx context.Context, doc *layout.Document, canonicalPrefix string) error {
	logger := ctxlog.FromContext(ctx)

	baseIdx, err := doc.FindLayerIndex(BaseLayerName)
	if err != nil {
		return err
	}
	originalIdx, err := doc.FindLayerIndex(OriginalLayerName)
	if err != nil {
		return err
	}
	if _, err := doc.FindLayerIndex(HRMLayerName); err == nil {
		return errors.New("document already has an HRM layer")
	}

	base := doc.Layers[baseIdx]
	original := doc.Layers[originalIdx]
	if len(base) != len(original) {
		return &layout.ShapeMismatchError{
			LayerA: BaseLayerName, LayerB: OriginalLayerName,
			LenA: len(base), LenB: len(original),
		}
	}

	oldNames := append([]string(nil), doc.LayerNames...)

	hrmLayer := make(layout.Layer, len(base))
	for i := range hrmLayer {
		hrmLayer[i] = layout.TransparentKey()
	}
	moved := 0
	for i, key := range base {
		if v, ok := key.Value.StringValue(); ok && canonicalPrefix != "" && strings.HasPrefix(v, canonicalPrefix) {
			hrmLayer[i] = key.Clone()
			base[i] = original[i].Clone()
			moved++
		}
	}
	logger.Debug("Split HRM keys out of base layer.", "positions", moved)

	insertAt := baseIdx + 1
	doc.LayerNames = append(doc.LayerNames[:insertAt],
		append([]string{HRMLayerName}, doc.LayerNames[insertAt:]...)...)
	doc.Layers = append(doc.Layers[:insertAt],
		append([]layout.Layer{hrmLayer}, doc.Layers[insertAt:]...)...)

	// Every pre-existing layer keeps its name, so the new index is just
	// its position in the extended name list.
	mapping := make(map[int]int, len(oldNames))
	for oldIdx, name := range oldNames {
		newIdx, err := doc.FindLayerIndex(name)
		if err != nil {
			return err
		}
		mapping[oldIdx] = newIdx
	}

	resolve.RemapMacroLayers(doc.Macros, mapping)
	for _, ref := range doc.LayerReferences() {
		ref.RemapLayerIndices(mapping)
	}
	logger.Debug("Remapped layer references after insertion.",
		"mapping_size", len(mapping), "inserted_at", insertAt)
	return nil
}
