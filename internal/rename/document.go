package rename

import (
	"sort"

	"github.com/vk/hrmkit/internal/layout"
)

// TransformDocument applies TransformString to every string-valued field
// in the document tree: layer names, key values and parameter cells,
// behavior names, descriptions and bindings, and every string inside the
// extra-field bags. Non-string values pass through untouched.
func (r *Renamer) TransformDocument(doc *layout.Document) {
	for i, name := range doc.LayerNames {
		doc.LayerNames[i] = r.TransformString(name)
	}
	for _, layer := range doc.Layers {
		for _, key := range layer {
			r.transformKey(key)
		}
	}
	for _, h := range doc.HoldTaps {
		h.Name = r.TransformString(h.Name)
		h.Description = r.TransformString(h.Description)
		r.transformBindings(h.Bindings)
		r.transformExtra(h.Extra)
	}
	for _, m := range doc.Macros {
		m.Name = r.TransformString(m.Name)
		m.Description = r.TransformString(m.Description)
		r.transformBindings(m.Bindings)
		r.transformExtra(m.Extra)
	}
	for _, c := range doc.Combos {
		c.Name = r.TransformString(c.Name)
		r.transformExtra(c.Extra)
	}
	for _, l := range doc.InputListeners {
		for _, n := range l.Nodes {
			r.transformExtra(n.Extra)
		}
		r.transformExtra(l.Extra)
	}
	r.transformExtra(doc.Extra)
}

func (r *Renamer) transformKey(key *layout.Key) {
	if key == nil {
		return
	}
	if v, ok := key.Value.StringValue(); ok {
		key.Value = layout.String(r.TransformString(v))
	}
	for _, p := range key.Params {
		r.transformKey(p)
	}
}

func (r *Renamer) transformBindings(bindings []layout.Binding) {
	for i, b := range bindings {
		if b.Key != nil {
			r.transformKey(b.Key)
			continue
		}
		bindings[i].Name = r.TransformString(b.Name)
	}
}

// transformExtra walks a decoded JSON tree in place, rewriting strings and
// preserving shape everywhere else.
func (r *Renamer) transformExtra(extra map[string]any) {
	for k, v := range extra {
		extra[k] = r.transformAny(v)
	}
}

func (r *Renamer) transformAny(v any) any {
	switch t := v.(type) {
	case string:
		return r.TransformString(t)
	case map[string]any:
		for k, item := range t {
			t[k] = r.transformAny(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = r.transformAny(item)
		}
		return t
	default:
		return v
	}
}

// Cleanup is the whole-document rename pass: transform every string,
// regenerate macro and hold-tap descriptions from their canonical names,
// and sort both collections by name for deterministic output.
func (r *Renamer) Cleanup(doc *layout.Document) {
	r.TransformDocument(doc)
	for _, m := range doc.Macros {
		m.Description = r.DescribeMacro(m.Name, m.Description)
	}
	for _, h := range doc.HoldTaps {
		h.Description = r.DescribeHoldTap(h.Name, h.Description)
	}
	sort.Slice(doc.Macros, func(i, j int) bool {
		return doc.Macros[i].Name < doc.Macros[j].Name
	})
	sort.Slice(doc.HoldTaps, func(i, j int) bool {
		return doc.HoldTaps[i].Name < doc.HoldTaps[j].Name
	})
}
