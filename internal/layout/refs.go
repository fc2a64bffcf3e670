package layout

// LayerReferencing is the capability of an entity that holds layer-index
// lists. It replaces a schema-free tree walk keyed on a field literally
// named "layers": every entity that can reference layers by index declares
// so here, and index remapping after a layer insertion goes through this
// interface only.
type LayerReferencing interface {
	// LayerIndices returns the referenced layer indices.
	LayerIndices() []int
	// RemapLayerIndices rewrites every referenced index present in the
	// mapping. Indices absent from the mapping are left untouched.
	RemapLayerIndices(mapping map[int]int)
}

func remapInts(vs []int, mapping map[int]int) {
	for i, v := range vs {
		if mapped, ok := mapping[v]; ok {
			vs[i] = mapped
		}
	}
}

// LayerIndices implements LayerReferencing.
func (h *HoldTap) LayerIndices() []int { return h.Layers }

// RemapLayerIndices implements LayerReferencing.
func (h *HoldTap) RemapLayerIndices(mapping map[int]int) { remapInts(h.Layers, mapping) }

// LayerIndices implements LayerReferencing.
func (c *Combo) LayerIndices() []int { return c.Layers }

// RemapLayerIndices implements LayerReferencing.
func (c *Combo) RemapLayerIndices(mapping map[int]int) { remapInts(c.Layers, mapping) }

// LayerIndices implements LayerReferencing. Listener-level and node-level
// layer lists are both reported.
func (l *InputListener) LayerIndices() []int {
	out := append([]int(nil), l.Layers...)
	for _, n := range l.Nodes {
		out = append(out, n.Layers...)
	}
	return out
}

// RemapLayerIndices implements LayerReferencing.
func (l *InputListener) RemapLayerIndices(mapping map[int]int) {
	remapInts(l.Layers, mapping)
	for _, n := range l.Nodes {
		remapInts(n.Layers, mapping)
	}
}

// LayerReferences enumerates every entity in the document that holds layer
// indices: hold-taps, combos and input listeners.
func (d *Document) LayerReferences() []LayerReferencing {
	var refs []LayerReferencing
	for _, h := range d.HoldTaps {
		refs = append(refs, h)
	}
	for _, c := range d.Combos {
		refs = append(refs, c)
	}
	for _, l := range d.InputListeners {
		refs = append(refs, l)
	}
	return refs
}
