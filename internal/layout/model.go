package layout

import (
	"encoding/json"
	"strings"
)

// TransparentValue is the behavior value meaning "fall through to the layer
// beneath". It is used as a placeholder during layer merges and swaps.
const TransparentValue = "&trans"

// Sigil is the prefix that marks a behavior reference.
const Sigil = "&"

// Document is the full layout file. LayerNames and Layers are parallel,
// index-addressed sequences; a position index means the same physical key
// on every layer. Top-level fields outside the typed schema are kept in
// Extra and written back on save.
type Document struct {
	LayerNames     []string
	Layers         []Layer
	HoldTaps       []*HoldTap
	Macros         []*Macro
	Combos         []*Combo
	InputListeners []*InputListener

	Extra map[string]any
}

// Layer is one complete key map: an ordered sequence of key bindings, one
// per physical key position.
type Layer []*Key

// Key is a single tagged binding: a behavior reference plus its parameter
// cells. Parameter cells share the same shape, so params nest.
type Key struct {
	Value  Scalar
	Params []*Key
}

// HoldTap is a named hold-tap behavior definition. Bindings reference the
// behaviors triggered on tap and on hold.
type HoldTap struct {
	Name        string
	Description string
	Bindings    []Binding
	Layers      []int

	Extra map[string]any
}

// Macro is a named sequence of behavior bindings played back as a unit.
type Macro struct {
	Name        string
	Description string
	Bindings    []Binding

	Extra map[string]any
}

// Combo triggers a binding when several key positions are pressed together,
// restricted to the listed layers.
type Combo struct {
	Name   string
	Layers []int

	Extra map[string]any
}

// InputListener routes pointing-device input, optionally per layer.
type InputListener struct {
	Layers []int
	Nodes  []*ListenerNode

	Extra map[string]any
}

// ListenerNode is one entry of an input listener.
type ListenerNode struct {
	Layers []int

	Extra map[string]any
}

// Binding is one entry of a behavior definition's bindings list. The wire
// format allows either a bare behavior name string or a structured key
// cell; exactly one of Name and Key is set.
type Binding struct {
	Name string
	Key  *Key
}

// Value returns the behavior name the binding refers to, for either form.
func (b Binding) Value() (string, bool) {
	if b.Key != nil {
		return b.Key.Value.StringValue()
	}
	if b.Name != "" {
		return b.Name, true
	}
	return "", false
}

// Clone returns a deep copy of the binding.
func (b Binding) Clone() Binding {
	return Binding{Name: b.Name, Key: b.Key.Clone()}
}

// NormalizeValueName ensures a behavior name carries the reference sigil.
// Seed names given on the command line may omit it; layer values never do,
// so a lookup with an unsigiled name would silently miss.
func NormalizeValueName(name string) string {
	if strings.HasPrefix(name, Sigil) {
		return name
	}
	return Sigil + name
}

// TransparentKey returns a fresh transparent-fallback key cell.
func TransparentKey() *Key {
	return &Key{Value: String(TransparentValue), Params: []*Key{}}
}

// IsTransparent reports whether the key is the transparent-fallback sentinel.
func (k *Key) IsTransparent() bool {
	v, ok := k.Value.StringValue()
	return ok && v == TransparentValue
}

// Clone returns a deep copy of the key. Cloning nil yields nil.
func (k *Key) Clone() *Key {
	if k == nil {
		return nil
	}
	out := &Key{Value: k.Value}
	if k.Params != nil {
		out.Params = make([]*Key, len(k.Params))
		for i, p := range k.Params {
			out.Params[i] = p.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	out := make(Layer, len(l))
	for i, k := range l {
		out[i] = k.Clone()
	}
	return out
}

// Clone returns a deep copy of the hold-tap definition.
func (h *HoldTap) Clone() *HoldTap {
	out := &HoldTap{
		Name:        h.Name,
		Description: h.Description,
		Bindings:    cloneBindings(h.Bindings),
		Layers:      cloneInts(h.Layers),
		Extra:       cloneExtra(h.Extra),
	}
	return out
}

// Clone returns a deep copy of the macro definition.
func (m *Macro) Clone() *Macro {
	return &Macro{
		Name:        m.Name,
		Description: m.Description,
		Bindings:    cloneBindings(m.Bindings),
		Extra:       cloneExtra(m.Extra),
	}
}

func cloneBindings(bs []Binding) []Binding {
	if bs == nil {
		return nil
	}
	out := make([]Binding, len(bs))
	for i, b := range bs {
		out[i] = b.Clone()
	}
	return out
}

func cloneInts(vs []int) []int {
	if vs == nil {
		return nil
	}
	out := make([]int, len(vs))
	copy(out, vs)
	return out
}

// cloneExtra deep-copies an extra-field bag. Values are the decoded JSON
// shapes: map[string]any, []any, json.Number, string, bool, nil.
func cloneExtra(extra map[string]any) map[string]any {
	if extra == nil {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneAny(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneAny(item)
		}
		return out
	default:
		// Scalars (string, bool, json.Number, nil) are immutable.
		return v
	}
}

// FindLayerIndex resolves a layer name to its index, or returns a
// NotFoundError listing the available names.
func (d *Document) FindLayerIndex(name string) (int, error) {
	for i, n := range d.LayerNames {
		if n == name {
			return i, nil
		}
	}
	return 0, &NotFoundError{Layer: name, Available: append([]string(nil), d.LayerNames...)}
}

// UpsertHoldTap replaces the hold-tap with the same name, or appends.
func (d *Document) UpsertHoldTap(h *HoldTap) {
	for i, existing := range d.HoldTaps {
		if existing.Name == h.Name {
			d.HoldTaps[i] = h
			return
		}
	}
	d.HoldTaps = append(d.HoldTaps, h)
}

// UpsertMacro replaces the macro with the same name, or appends.
func (d *Document) UpsertMacro(m *Macro) {
	for i, existing := range d.Macros {
		if existing.Name == m.Name {
			d.Macros[i] = m
			return
		}
	}
	d.Macros = append(d.Macros, m)
}

// ensure Document round-trips through encoding/json via the custom codecs.
var (
	_ json.Marshaler   = (*Document)(nil)
	_ json.Unmarshaler = (*Document)(nil)
)
