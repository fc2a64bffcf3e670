package app

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/hrmkit/internal/layout"
)

// stubLoader serves documents from memory and records saves, so the
// pipelines run without touching the filesystem.
type stubLoader struct {
	docs  map[string]*layout.Document
	saved map[string]*layout.Document
}

func newStubLoader() *stubLoader {
	return &stubLoader{
		docs:  map[string]*layout.Document{},
		saved: map[string]*layout.Document{},
	}
}

func (s *stubLoader) Load(_ context.Context, path string) (*layout.Document, error) {
	doc, ok := s.docs[path]
	if !ok {
		return nil, fmt.Errorf("could not read %q: no such document", path)
	}
	return doc, nil
}

func (s *stubLoader) Save(_ context.Context, path string, doc *layout.Document) error {
	s.saved[path] = doc
	return nil
}

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

// sourceDoc is a TailorKey-style source: the HRM layer carries a legacy
// hold-tap whose macro momentarily activates the Nav layer.
func sourceDoc() *layout.Document {
	return &layout.Document{
		LayerNames: []string{"Base", "HRM_macOS", "Nav"},
		Layers: []layout.Layer{
			layerOf("&kp", "&kp", "&kp"),
			layerOf("&kp", "&HRM_left_index_v1B_TKZ", "&none"),
			layerOf("&kp", "&trans", "&kp"),
		},
		HoldTaps: []*layout.HoldTap{{
			Name:        "&HRM_left_index_v1B_TKZ",
			Description: "Index HRM - TailorKey",
			Bindings:    []layout.Binding{{Name: "&bhrm_hold_index"}, {Name: "&kp"}},
		}},
		Macros: []*layout.Macro{{
			Name: "&bhrm_hold_index",
			Bindings: []layout.Binding{
				{Key: &layout.Key{Value: layout.String("&mo"), Params: []*layout.Key{{Value: layout.Int(2)}}}},
			},
		}},
	}
}

func targetDoc() *layout.Document {
	return &layout.Document{
		LayerNames: []string{"Base", "BaseModded"},
		Layers: []layout.Layer{
			layerOf("&kp", "&kp", "&kp"),
			layerOf("&trans", "&trans", "&trans"),
		},
	}
}

func runApp(t *testing.T, loader layout.Loader, raw Config) (string, error) {
	t.Helper()
	cfg, err := NewConfig(raw)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	a := NewApp(out, errOut, cfg, loader)
	runErr := a.Run(context.Background(), cfg)
	return out.String(), runErr
}

func TestRunCopy_EndToEnd(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.docs["source.json"] = sourceDoc()
	loader.docs["target.json"] = targetDoc()

	out, err := runApp(t, loader, Config{
		Command:    CommandCopy,
		SourcePath: "source.json",
		TargetPath: "target.json",
		SrcLayer:   "HRM_macOS",
		DstLayer:   "BaseModded",
		Values:     []string{"HRM_left_index_v1B_TKZ"},
		OutputPath: "out.json",
	})
	require.NoError(t, err)

	saved, ok := loader.saved["out.json"]
	require.True(t, ok, "the transformed target must be saved")

	// The binding landed on the destination layer, renamed.
	dstIdx, err := saved.FindLayerIndex("BaseModded")
	require.NoError(t, err)
	v, _ := saved.Layers[dstIdx][1].Value.StringValue()
	require.Equal(t, "&BHRM_L_Index", v)

	// The Nav layer followed the macro and the &mo parameter was remapped
	// to its destination index.
	navIdx, err := saved.FindLayerIndex("Nav")
	require.NoError(t, err)
	require.Equal(t, 2, navIdx)
	require.Len(t, saved.Macros, 1)
	n, _ := saved.Macros[0].Bindings[0].Key.Params[0].Value.IntValue()
	require.Equal(t, 2, n)

	// The support set arrived renamed, with regenerated descriptions.
	require.Len(t, saved.HoldTaps, 1)
	require.Equal(t, "&BHRM_L_Index", saved.HoldTaps[0].Name)
	require.Equal(t, "HRM: tap→key, hold→layer", saved.HoldTaps[0].Description)

	require.Contains(t, out, `Copied 1 bindings from "HRM_macOS" to "BaseModded" into out.json.`)
	require.Contains(t, out, "Included 1 holdTap definitions.")
	require.Contains(t, out, "Included 1 macro definitions.")
	require.Contains(t, out, "Added/updated layers: Nav.")
}

func TestRunCopy_MissingValueIsFatal(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.docs["source.json"] = sourceDoc()
	loader.docs["target.json"] = targetDoc()

	_, err := runApp(t, loader, Config{
		Command:    CommandCopy,
		SourcePath: "source.json",
		TargetPath: "target.json",
		SrcLayer:   "HRM_macOS",
		DstLayer:   "BaseModded",
		Values:     []string{"HRM_left_index_v1B_TKZ", "HRM_left_ghost"},
		OutputPath: "out.json",
	})

	var missing *layout.MissingValuesError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"&HRM_left_ghost"}, missing.Values)
	require.Empty(t, loader.saved, "no partial output on a fatal path")
}

func TestRunRename(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.docs["layout.json"] = sourceDoc()

	out, err := runApp(t, loader, Config{
		Command:   CommandRename,
		InputPath: "layout.json",
		// OutputPath deliberately empty: NewConfig defaults to the input.
	})
	require.NoError(t, err)

	saved, ok := loader.saved["layout.json"]
	require.True(t, ok)
	require.Equal(t, "&BHRM_L_Index", saved.HoldTaps[0].Name)
	require.Contains(t, out, "Renamed behaviors in layout.json")
}

func TestRunSwap(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	doc := targetDoc()
	doc.Layers[1][0] = key("&caps_word")
	loader.docs["layout.json"] = doc

	out, err := runApp(t, loader, Config{
		Command:   CommandSwap,
		InputPath: "layout.json",
		LayerA:    "Base",
		LayerB:    "BaseModded",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"BaseModded", "Base"}, loader.saved["layout.json"].LayerNames)
	require.Contains(t, out, `Swapped layers "Base" and "BaseModded"`)
}

func TestRunInsert(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.docs["layout.json"] = &layout.Document{
		LayerNames: []string{"Base", "Original"},
		Layers: []layout.Layer{
			layerOf("&BHRM_L_Index", "&kp"),
			layerOf("&kp", "&kp"),
		},
	}

	out, err := runApp(t, loader, Config{
		Command:   CommandInsert,
		InputPath: "layout.json",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Base", "HRM", "Original"}, loader.saved["layout.json"].LayerNames)
	require.Contains(t, out, `Inserted "HRM" layer after "Base"`)
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	a := NewApp(out, out, &Config{}, newStubLoader())
	err := a.Run(context.Background(), &Config{Command: "explode"})
	require.Error(t, err)
}
