// Package collect computes the transitive support set of a group of
// bindings: every hold-tap and macro definition reachable from a set of
// seed behavior names through the definitions' own bindings lists.
package collect

import (
	"github.com/vk/hrmkit/internal/layout"
)

// Entry is a key found on a layer together with its position.
type Entry struct {
	Index int
	Key   *layout.Key
}

// LayerEntries returns the positions on the layer whose value is one of
// the wanted behavior names, in position order.
func LayerEntries(layer layout.Layer, wanted []string) []Entry {
	wantedSet := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		wantedSet[w] = struct{}{}
	}
	var entries []Entry
	for i, key := range layer {
		if v, ok := key.Value.StringValue(); ok {
			if _, want := wantedSet[v]; want {
				entries = append(entries, Entry{Index: i, Key: key})
			}
		}
	}
	return entries
}

// LayerValues gathers every behavior value used on the given layers.
// Out-of-range indices are skipped.
func LayerValues(doc *layout.Document, indices map[int]struct{}) map[string]struct{} {
	values := make(map[string]struct{})
	for idx := range indices {
		if idx < 0 || idx >= len(doc.Layers) {
			continue
		}
		for _, key := range doc.Layers[idx] {
			if v, ok := key.Value.StringValue(); ok {
				values[v] = struct{}{}
			}
		}
	}
	return values
}

// Collect walks the binding graph starting from the seed names and returns
// every reachable hold-tap and macro definition, each exactly once, in
// first-visit order. A name present in both collections resolves as a
// hold-tap. Cycles terminate through the visited sets.
func Collect(doc *layout.Document, seeds []string) ([]*layout.HoldTap, []*layout.Macro) {
	holdTapsByName := make(map[string]*layout.HoldTap, len(doc.HoldTaps))
	for _, h := range doc.HoldTaps {
		holdTapsByName[h.Name] = h
	}
	macrosByName := make(map[string]*layout.Macro, len(doc.Macros))
	for _, m := range doc.Macros {
		macrosByName[m.Name] = m
	}

	var (
		holdTaps     []*layout.HoldTap
		macros       []*layout.Macro
		seenHoldTaps = make(map[string]struct{})
		seenMacros   = make(map[string]struct{})
	)

	stack := append([]string(nil), seeds...)
	push := func(name string) {
		_, isNewHoldTap := holdTapsByName[name]
		if isNewHoldTap {
			if _, seen := seenHoldTaps[name]; seen {
				isNewHoldTap = false
			}
		}
		_, isNewMacro := macrosByName[name]
		if isNewMacro {
			if _, seen := seenMacros[name]; seen {
				isNewMacro = false
			}
		}
		if isNewHoldTap || isNewMacro {
			stack = append(stack, name)
		}
	}
	pushBindings := func(bindings []layout.Binding) {
		for _, b := range bindings {
			if v, ok := b.Value(); ok {
				push(v)
			}
		}
	}

	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Hold-tap resolution takes precedence when a name exists in both
		// collections.
		if h, ok := holdTapsByName[name]; ok {
			if _, seen := seenHoldTaps[name]; !seen {
				holdTaps = append(holdTaps, h)
				seenHoldTaps[name] = struct{}{}
				pushBindings(h.Bindings)
			}
			continue
		}
		if m, ok := macrosByName[name]; ok {
			if _, seen := seenMacros[name]; !seen {
				macros = append(macros, m)
				seenMacros[name] = struct{}{}
				pushBindings(m.Bindings)
			}
		}
	}

	return holdTaps, macros
}
