// Package fsutil provides file system utility functions.
package fsutil

import (
	"path/filepath"
	"strings"
)

// DeriveOutputPath returns the default output path for a transformed copy
// of target: the target's name with the marker appended to its stem, e.g.
// "layout.json" with marker "_with_hrm" becomes "layout_with_hrm.json".
// Extension-less targets get ".json".
func DeriveOutputPath(target, marker string) string {
	ext := filepath.Ext(target)
	if ext == "" {
		ext = ".json"
	}
	stem := strings.TrimSuffix(filepath.Base(target), ext)
	return filepath.Join(filepath.Dir(target), stem+marker+ext)
}
