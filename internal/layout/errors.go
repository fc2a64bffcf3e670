package layout

import (
	"fmt"
	"strings"
)

// NotFoundError reports a layer name absent from a document's name list.
type NotFoundError struct {
	Layer     string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("layer %q not found; available layers: %s",
		e.Layer, strings.Join(e.Available, ", "))
}

// ShapeMismatchError reports two layers that were expected to correspond
// position-for-position but differ in length.
type ShapeMismatchError struct {
	LayerA string
	LayerB string
	LenA   int
	LenB   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("layers %q (%d keys) and %q (%d keys) differ in size",
		e.LayerA, e.LenA, e.LayerB, e.LenB)
}

// MissingValuesError reports seed binding values not present on the
// designated source layer.
type MissingValuesError struct {
	Layer  string
	Values []string
}

func (e *MissingValuesError) Error() string {
	return fmt.Sprintf("values not found on layer %q: %s",
		e.Layer, strings.Join(e.Values, ", "))
}
