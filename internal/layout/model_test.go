package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValueName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&HRM_left_pinky", NormalizeValueName("HRM_left_pinky"))
	assert.Equal(t, "&HRM_left_pinky", NormalizeValueName("&HRM_left_pinky"))
}

func TestFindLayerIndex_NotFound(t *testing.T) {
	t.Parallel()

	doc := &Document{LayerNames: []string{"Base", "Nav"}}

	idx, err := doc.FindLayerIndex("Nav")
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	_, err = doc.FindLayerIndex("Sym")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "Sym", notFound.Layer)
	require.Contains(t, err.Error(), "Base, Nav")
}

func TestUpsert_ReplacesByName(t *testing.T) {
	t.Parallel()

	doc := &Document{
		HoldTaps: []*HoldTap{{Name: "&a", Description: "old"}},
	}

	doc.UpsertHoldTap(&HoldTap{Name: "&a", Description: "new"})
	require.Len(t, doc.HoldTaps, 1)
	require.Equal(t, "new", doc.HoldTaps[0].Description)

	doc.UpsertHoldTap(&HoldTap{Name: "&b"})
	require.Len(t, doc.HoldTaps, 2)

	doc.UpsertMacro(&Macro{Name: "&m"})
	doc.UpsertMacro(&Macro{Name: "&m", Description: "replaced"})
	require.Len(t, doc.Macros, 1)
	require.Equal(t, "replaced", doc.Macros[0].Description)
}

func TestClone_NoStructuralSharing(t *testing.T) {
	t.Parallel()

	key := &Key{Value: String("&mo"), Params: []*Key{{Value: Int(3)}}}
	clone := key.Clone()
	clone.Params[0].Value = Int(7)
	n, _ := key.Params[0].Value.IntValue()
	require.Equal(t, 3, n)

	ht := &HoldTap{
		Name:     "&h",
		Bindings: []Binding{{Key: &Key{Value: String("&mo"), Params: []*Key{{Value: Int(1)}}}}},
		Layers:   []int{0, 1},
		Extra:    map[string]any{"flavor": "balanced", "positions": []any{"a"}},
	}
	htClone := ht.Clone()
	htClone.Bindings[0].Key.Params[0].Value = Int(9)
	htClone.Layers[0] = 5
	htClone.Extra["positions"].([]any)[0] = "b"

	n, _ = ht.Bindings[0].Key.Params[0].Value.IntValue()
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, ht.Layers[0])
	assert.Equal(t, "a", ht.Extra["positions"].([]any)[0])
}

func TestTransparentKey(t *testing.T) {
	t.Parallel()

	k := TransparentKey()
	require.True(t, k.IsTransparent())
	require.NotNil(t, k.Params)
	require.False(t, (&Key{Value: String("&kp")}).IsTransparent())
	require.False(t, (&Key{Value: Int(1)}).IsTransparent())
}
