package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// The wire format is the Glove80 layout-editor JSON export. Decoding is
// strict about the shapes the transforms depend on (layer arrays, key
// cells, behavior definitions) and permissive about everything else:
// unrecognized fields land in per-entity Extra bags and are written back
// on save. Numbers are kept as json.Number so integer layer indices
// survive a round-trip untouched.
//
// Serialization order is canonical rather than source-preserving: extra
// fields (sorted) lead the document, followed by the structural fields;
// entities write their known fields first and sorted extras last. The
// point is determinism, not byte-identity with the input.

// marshalNoEscape serializes v without HTML escaping. Every behavior value
// carries the "&" sigil, and the editor export writes it literally; the
// default encoder would turn each one into "\u0026".
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// objectEncoder builds a JSON object with an explicit field order.
type objectEncoder struct {
	buf bytes.Buffer
	n   int
	err error
}

func (e *objectEncoder) field(name string, v any) {
	if e.err != nil {
		return
	}
	data, err := marshalNoEscape(v)
	if err != nil {
		e.err = err
		return
	}
	if e.n == 0 {
		e.buf.WriteByte('{')
	} else {
		e.buf.WriteByte(',')
	}
	key, _ := marshalNoEscape(name)
	e.buf.Write(key)
	e.buf.WriteByte(':')
	e.buf.Write(data)
	e.n++
}

func (e *objectEncoder) extras(extra map[string]any) {
	for _, k := range sortedKeys(extra) {
		e.field(k, extra[k])
	}
}

func (e *objectEncoder) result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.n == 0 {
		return []byte("{}"), nil
	}
	e.buf.WriteByte('}')
	return e.buf.Bytes(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// rawObject splits an object into its raw fields, erroring on any other
// JSON shape.
func rawObject(data []byte, what string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s must be a JSON object: %w", what, err)
	}
	return raw, nil
}

// decodeExtra decodes the fields left over after the typed ones were
// consumed, keeping numbers as json.Number.
func decodeExtra(raw map[string]json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(raw))
	for k, v := range raw {
		val, err := decodeAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		extra[k] = val
	}
	return extra, nil
}

func decodeAny(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	enc.extras(d.Extra)
	enc.field("layer_names", d.LayerNames)
	enc.field("layers", d.Layers)
	if d.HoldTaps != nil {
		enc.field("holdTaps", d.HoldTaps)
	}
	if d.Macros != nil {
		enc.field("macros", d.Macros)
	}
	if d.Combos != nil {
		enc.field("combos", d.Combos)
	}
	if d.InputListeners != nil {
		enc.field("inputListeners", d.InputListeners)
	}
	return enc.result()
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data, "layout document")
	if err != nil {
		return err
	}
	take := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		return nil
	}
	*d = Document{}
	if err := take("layer_names", &d.LayerNames); err != nil {
		return err
	}
	if err := take("layers", &d.Layers); err != nil {
		return err
	}
	if err := take("holdTaps", &d.HoldTaps); err != nil {
		return err
	}
	if err := take("macros", &d.Macros); err != nil {
		return err
	}
	if err := take("combos", &d.Combos); err != nil {
		return err
	}
	if err := take("inputListeners", &d.InputListeners); err != nil {
		return err
	}
	d.Extra, err = decodeExtra(raw)
	return err
}

// MarshalJSON implements json.Marshaler. Params are always written, as an
// empty array when nil, matching the editor's export shape.
func (k *Key) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	enc.field("value", k.Value)
	params := k.Params
	if params == nil {
		params = []*Key{}
	}
	enc.field("params", params)
	return enc.result()
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Key) UnmarshalJSON(data []byte) error {
	var wire struct {
		Value  Scalar `json:"value"`
		Params []*Key `json:"params"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("key cell: %w", err)
	}
	k.Value = wire.Value
	k.Params = wire.Params
	return nil
}

// MarshalJSON implements json.Marshaler. A bare-name binding round-trips
// as a plain string.
func (b Binding) MarshalJSON() ([]byte, error) {
	if b.Key != nil {
		return b.Key.MarshalJSON()
	}
	return marshalNoEscape(b.Name)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Binding) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Name)
	}
	b.Key = &Key{}
	if err := json.Unmarshal(data, b.Key); err != nil {
		return fmt.Errorf("binding entry: %w", err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (h *HoldTap) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	enc.field("name", h.Name)
	if h.Description != "" {
		enc.field("description", h.Description)
	}
	if h.Bindings != nil {
		enc.field("bindings", h.Bindings)
	}
	if h.Layers != nil {
		enc.field("layers", h.Layers)
	}
	enc.extras(h.Extra)
	return enc.result()
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HoldTap) UnmarshalJSON(data []byte) error {
	return unmarshalDef(data, "holdTap", &h.Name, &h.Description, &h.Bindings, &h.Layers, &h.Extra)
}

// MarshalJSON implements json.Marshaler.
func (m *Macro) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	enc.field("name", m.Name)
	if m.Description != "" {
		enc.field("description", m.Description)
	}
	if m.Bindings != nil {
		enc.field("bindings", m.Bindings)
	}
	enc.extras(m.Extra)
	return enc.result()
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Macro) UnmarshalJSON(data []byte) error {
	return unmarshalDef(data, "macro", &m.Name, &m.Description, &m.Bindings, nil, &m.Extra)
}

// unmarshalDef decodes the shared shape of behavior definitions. layers is
// nil for entities that cannot reference layers.
func unmarshalDef(data []byte, what string, name, description *string, bindings *[]Binding, layers *[]int, extra *map[string]any) error {
	raw, err := rawObject(data, what)
	if err != nil {
		return err
	}
	take := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("%s field %q: %w", what, key, err)
		}
		return nil
	}
	if err := take("name", name); err != nil {
		return err
	}
	if err := take("description", description); err != nil {
		return err
	}
	if err := take("bindings", bindings); err != nil {
		return err
	}
	if layers != nil {
		if err := take("layers", layers); err != nil {
			return err
		}
	}
	*extra, err = decodeExtra(raw)
	return err
}

// MarshalJSON implements json.Marshaler.
func (c *Combo) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	if c.Name != "" {
		enc.field("name", c.Name)
	}
	if c.Layers != nil {
		enc.field("layers", c.Layers)
	}
	enc.extras(c.Extra)
	return enc.result()
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Combo) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data, "combo")
	if err != nil {
		return err
	}
	if v, ok := raw["name"]; ok {
		delete(raw, "name")
		if err := json.Unmarshal(v, &c.Name); err != nil {
			return fmt.Errorf("combo field %q: %w", "name", err)
		}
	}
	if v, ok := raw["layers"]; ok {
		delete(raw, "layers")
		if err := json.Unmarshal(v, &c.Layers); err != nil {
			return fmt.Errorf("combo field %q: %w", "layers", err)
		}
	}
	c.Extra, err = decodeExtra(raw)
	return err
}

// MarshalJSON implements json.Marshaler.
func (l *InputListener) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	if l.Layers != nil {
		enc.field("layers", l.Layers)
	}
	if l.Nodes != nil {
		enc.field("nodes", l.Nodes)
	}
	enc.extras(l.Extra)
	return enc.result()
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *InputListener) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data, "inputListener")
	if err != nil {
		return err
	}
	if v, ok := raw["layers"]; ok {
		delete(raw, "layers")
		if err := json.Unmarshal(v, &l.Layers); err != nil {
			return fmt.Errorf("inputListener field %q: %w", "layers", err)
		}
	}
	if v, ok := raw["nodes"]; ok {
		delete(raw, "nodes")
		if err := json.Unmarshal(v, &l.Nodes); err != nil {
			return fmt.Errorf("inputListener field %q: %w", "nodes", err)
		}
	}
	l.Extra, err = decodeExtra(raw)
	return err
}

// MarshalJSON implements json.Marshaler.
func (n *ListenerNode) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	if n.Layers != nil {
		enc.field("layers", n.Layers)
	}
	enc.extras(n.Extra)
	return enc.result()
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *ListenerNode) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data, "listener node")
	if err != nil {
		return err
	}
	if v, ok := raw["layers"]; ok {
		delete(raw, "layers")
		if err := json.Unmarshal(v, &n.Layers); err != nil {
			return fmt.Errorf("listener node field %q: %w", "layers", err)
		}
	}
	n.Extra, err = decodeExtra(raw)
	return err
}
