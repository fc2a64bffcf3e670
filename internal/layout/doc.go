// Package layout defines the typed in-memory model of a Glove80 keyboard
// layout document: layers of key bindings, hold-tap and macro behavior
// definitions, combos and input listeners. Unknown fields are preserved in
// per-entity extra bags so a load/save round-trip loses no data.
package layout
