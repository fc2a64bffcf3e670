package layout

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "title": "QuantumTouch80 - TailorKey",
  "uuid": "c5342d66-e6ed-4d04-9ae0-2dfc9cd87930",
  "layer_names": ["Base", "Nav"],
  "layers": [
    [
      {"value": "&kp", "params": [{"value": "A", "params": []}]},
      {"value": "&BHRM_L_Index", "params": []}
    ],
    [
      {"value": "&trans", "params": []},
      {"value": "&mo", "params": [{"value": 1, "params": []}]}
    ]
  ],
  "holdTaps": [
    {
      "name": "&BHRM_L_Index",
      "description": "HRM index",
      "bindings": ["&macro_hold", "&kp"],
      "tappingTermMs": 200
    }
  ],
  "macros": [
    {
      "name": "&macro_hold",
      "bindings": [{"value": "&mo", "params": [{"value": 1, "params": []}]}]
    }
  ],
  "combos": [
    {"name": "combo_esc", "layers": [0, 1], "keyPositions": [0, 1]}
  ],
  "inputListeners": [
    {"nodes": [{"layers": [1], "code": "zip_xy"}]}
  ]
}`

func TestDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	doc := &Document{}
	require.NoError(t, json.Unmarshal([]byte(sampleDocument), doc))

	require.Equal(t, []string{"Base", "Nav"}, doc.LayerNames)
	require.Len(t, doc.Layers, 2)
	require.Len(t, doc.HoldTaps, 1)
	require.Len(t, doc.Macros, 1)
	require.Equal(t, "QuantumTouch80 - TailorKey", doc.Extra["title"])

	// The hold-tap keeps its unknown field.
	require.Equal(t, json.Number("200"), doc.HoldTaps[0].Extra["tappingTermMs"])

	// The &mo parameter survives as an integer.
	n, ok := doc.Layers[1][1].Params[0].Value.IntValue()
	require.True(t, ok)
	require.Equal(t, 1, n)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	reparsed := &Document{}
	require.NoError(t, json.Unmarshal(data, reparsed))
	if diff := cmp.Diff(doc, reparsed, cmp.AllowUnexported(Scalar{})); diff != "" {
		t.Fatalf("round-trip mismatch (-first +second):\n%s", diff)
	}

	// Serialization is a fixed point once canonicalized.
	again, err := json.Marshal(reparsed)
	require.NoError(t, err)
	require.Equal(t, string(data), string(again))
}

func TestDocument_RoundTripPreservesIntegerText(t *testing.T) {
	t.Parallel()

	doc := &Document{}
	require.NoError(t, json.Unmarshal([]byte(sampleDocument), doc))

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(data), `{"value":1,"params":[]}`)
	require.NotContains(t, string(data), "1.0")
}

func TestBinding_BothWireForms(t *testing.T) {
	t.Parallel()

	var bare Binding
	require.NoError(t, json.Unmarshal([]byte(`"&kp"`), &bare))
	v, ok := bare.Value()
	require.True(t, ok)
	require.Equal(t, "&kp", v)

	var structured Binding
	require.NoError(t, json.Unmarshal([]byte(`{"value":"&mo","params":[{"value":3,"params":[]}]}`), &structured))
	v, ok = structured.Value()
	require.True(t, ok)
	require.Equal(t, "&mo", v)

	data, err := bare.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"&kp"`, string(data), "bare bindings keep their literal sigil")
}

func TestScalar_RejectsNonScalarValue(t *testing.T) {
	t.Parallel()

	var s Scalar
	require.Error(t, s.UnmarshalJSON([]byte(`{"nested": true}`)))
	require.Error(t, s.UnmarshalJSON([]byte(`[1]`)))
}
