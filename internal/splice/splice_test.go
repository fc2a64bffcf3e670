package splice

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/hrmkit/internal/layout"
)

func key(value string) *layout.Key {
	return &layout.Key{Value: layout.String(value), Params: []*layout.Key{}}
}

func layerOf(values ...string) layout.Layer {
	layer := make(layout.Layer, len(values))
	for i, v := range values {
		layer[i] = key(v)
	}
	return layer
}

func layerValues(t *testing.T, layer layout.Layer) []string {
	t.Helper()
	out := make([]string, len(layer))
	for i, k := range layer {
		v, ok := k.Value.StringValue()
		require.True(t, ok)
		out[i] = v
	}
	return out
}

func TestSwap_AllTransparentDestination(t *testing.T) {
	t.Parallel()

	base := layerOf("&kp", "&BHRM_L_Index", "&none")
	doc := &layout.Document{
		LayerNames: []string{"Base", "BaseModded"},
		Layers: []layout.Layer{
			base,
			layerOf("&trans", "&trans", "&trans"),
		},
	}
	want := append(layout.Layer(nil), base...)
	wantClone := want.Clone()

	require.NoError(t, Swap(doc, "Base", "BaseModded"))

	// BaseModded now sits in Base's former slot carrying Base's keys.
	require.Equal(t, []string{"BaseModded", "Base"}, doc.LayerNames)
	if diff := cmp.Diff(layerValues(t, wantClone), layerValues(t, doc.Layers[0])); diff != "" {
		t.Fatalf("promoted layer mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"&trans", "&trans", "&trans"}, layerValues(t, doc.Layers[1]))
}

func TestSwap_NotAnInverseOnOccupiedPositions(t *testing.T) {
	t.Parallel()

	doc := &layout.Document{
		LayerNames: []string{"Base", "BaseModded"},
		Layers: []layout.Layer{
			layerOf("&kp", "&kp"),
			layout.Layer{key("&BHRM_L_Index"), key("&trans")},
		},
	}

	require.NoError(t, Swap(doc, "Base", "BaseModded"))
	require.NoError(t, Swap(doc, "Base", "BaseModded"))

	// Position 0 was occupied in BaseModded, so the original Base key at
	// that position was never promoted and the double swap does not
	// restore the starting state.
	require.Equal(t, []string{"Base", "BaseModded"}, doc.LayerNames)
	require.NotEqual(t, []string{"&kp", "&kp"}, layerValues(t, doc.Layers[0]))
}

func TestSwap_EnsuresParamsOnKeptKeys(t *testing.T) {
	t.Parallel()

	kept := &layout.Key{Value: layout.String("&caps_word")}
	doc := &layout.Document{
		LayerNames: []string{"Base", "BaseModded"},
		Layers: []layout.Layer{
			layerOf("&kp"),
			layout.Layer{kept},
		},
	}

	require.NoError(t, Swap(doc, "Base", "BaseModded"))
	require.NotNil(t, kept.Params, "kept keys get an ensured params list")
}

func TestSwap_Errors(t *testing.T) {
	t.Parallel()

	doc := &layout.Document{
		LayerNames: []string{"Base", "BaseModded"},
		Layers: []layout.Layer{
			layerOf("&kp", "&kp"),
			layerOf("&trans"),
		},
	}

	var notFound *layout.NotFoundError
	require.ErrorAs(t, Swap(doc, "Missing", "BaseModded"), &notFound)
	require.ErrorAs(t, Swap(doc, "Base", "Missing"), &notFound)

	var mismatch *layout.ShapeMismatchError
	require.ErrorAs(t, Swap(doc, "Base", "BaseModded"), &mismatch)
}

func TestInsertAfterBase(t *testing.T) {
	t.Parallel()

	doc := &layout.Document{
		LayerNames: []string{"Base", "Nav", "Original"},
		Layers: []layout.Layer{
			layout.Layer{key("&BHRM_L_Index"), key("&kp"), key("&BHRM_L_Middle")},
			layerOf("&mo", "&trans", "&trans"),
			layerOf("&kp", "&kp", "&kp"),
		},
		HoldTaps: []*layout.HoldTap{
			{Name: "&BHRM_L_Index", Layers: []int{0, 1}},
		},
		Macros: []*layout.Macro{
			{
				Name: "&bhrm_hold_index",
				Bindings: []layout.Binding{
					{Key: &layout.Key{Value: layout.String("&mo"), Params: []*layout.Key{{Value: layout.Int(1)}}}},
				},
			},
		},
		Combos:         []*layout.Combo{{Name: "combo_esc", Layers: []int{0, 2}}},
		InputListeners: []*layout.InputListener{{Nodes: []*layout.ListenerNode{{Layers: []int{2}}}}},
	}

	require.NoError(t, InsertAfterBase(context.Background(), doc, "&BHRM_"))

	require.Equal(t, []string{"Base", "HRM", "Nav", "Original"}, doc.LayerNames)

	// HRM positions moved out of Base, Original keys restored into Base.
	require.Equal(t, []string{"&kp", "&kp", "&kp"}, layerValues(t, doc.Layers[0]))
	require.Equal(t, []string{"&BHRM_L_Index", "&trans", "&BHRM_L_Middle"}, layerValues(t, doc.Layers[1]))

	// Every layer reference shifted past the insertion point.
	require.Equal(t, []int{0, 2}, doc.HoldTaps[0].Layers)
	n, _ := doc.Macros[0].Bindings[0].Key.Params[0].Value.IntValue()
	require.Equal(t, 2, n)
	require.Equal(t, []int{0, 3}, doc.Combos[0].Layers)
	require.Equal(t, []int{3}, doc.InputListeners[0].Nodes[0].Layers)
}

func TestInsertAfterBase_Errors(t *testing.T) {
	t.Parallel()

	missing := &layout.Document{
		LayerNames: []string{"Base"},
		Layers:     []layout.Layer{layerOf("&kp")},
	}
	var notFound *layout.NotFoundError
	require.ErrorAs(t, InsertAfterBase(context.Background(), missing, "&BHRM_"), &notFound)

	ragged := &layout.Document{
		LayerNames: []string{"Base", "Original"},
		Layers:     []layout.Layer{layerOf("&kp", "&kp"), layerOf("&kp")},
	}
	var mismatch *layout.ShapeMismatchError
	require.ErrorAs(t, InsertAfterBase(context.Background(), ragged, "&BHRM_"), &mismatch)

	already := &layout.Document{
		LayerNames: []string{"Base", "HRM", "Original"},
		Layers:     []layout.Layer{layerOf("&kp"), layerOf("&trans"), layerOf("&kp")},
	}
	require.Error(t, InsertAfterBase(context.Background(), already, "&BHRM_"))
}
