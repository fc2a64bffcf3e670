package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/hrmkit/internal/ctxlog"
)

// Loader is the interface for a format-specific document loader. The app
// receives one at construction so the pipelines never touch the filesystem
// directly.
type Loader interface {
	// Load reads and validates a full layout document from path.
	Load(ctx context.Context, path string) (*Document, error)
	// Save serializes the document to path, overwriting it. The file is
	// written once, fully, after all transforms have completed.
	Save(ctx context.Context, path string, doc *Document) error
}

// JSONLoader loads and saves Glove80 layout-editor JSON exports.
type JSONLoader struct{}

// NewJSONLoader returns a loader for layout JSON files.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Load implements Loader. Shape violations fail fast here rather than
// surfacing mid-transform.
func (l *JSONLoader) Load(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading layout document.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", path, err)
	}
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("invalid layout %q: %w", path, err)
	}

	logger.Debug("Layout document loaded.",
		"path", path,
		"layers", len(doc.Layers),
		"holdTaps", len(doc.HoldTaps),
		"macros", len(doc.Macros),
	)
	return doc, nil
}

// Save implements Loader. Output uses stable 2-space indentation and a
// trailing newline. HTML escaping is off so behavior values keep their
// literal "&" sigil, matching the editor export.
func (l *JSONLoader) Save(ctx context.Context, path string, doc *Document) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Saving layout document.", "path", path)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not serialize layout: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}

	logger.Debug("Layout document saved.", "path", path, "bytes", buf.Len())
	return nil
}

// validate enforces the positional key-map invariant: names and layers are
// parallel, and every layer has the same length, since a position index
// means the same physical key everywhere.
func validate(doc *Document) error {
	if len(doc.LayerNames) != len(doc.Layers) {
		return fmt.Errorf("layer_names has %d entries but layers has %d",
			len(doc.LayerNames), len(doc.Layers))
	}
	seen := make(map[string]struct{}, len(doc.LayerNames))
	for _, name := range doc.LayerNames {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate layer name %q", name)
		}
		seen[name] = struct{}{}
	}
	if len(doc.Layers) > 1 {
		want := len(doc.Layers[0])
		for i, layer := range doc.Layers[1:] {
			if len(layer) != want {
				return &ShapeMismatchError{
					LayerA: doc.LayerNames[0],
					LayerB: doc.LayerNames[i+1],
					LenA:   want,
					LenB:   len(layer),
				}
			}
		}
	}
	return nil
}
