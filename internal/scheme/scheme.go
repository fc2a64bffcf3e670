// Package scheme holds the behavior-naming configuration: the legacy and
// canonical name prefixes and the hand/finger/role token tables the
// canonicalizer rewrites names with. The tables are data, not code, so an
// alternate naming scheme can be supplied from an HCL file without
// touching the rename logic.
package scheme

import (
	"fmt"
	"strings"
)

// Scheme is one complete naming configuration.
type Scheme struct {
	// LegacyPrefix marks names produced by the source tool, e.g. "&HRM_".
	LegacyPrefix string
	// CanonicalPrefix marks names in the stable scheme, e.g. "&BHRM_".
	CanonicalPrefix string
	// Decoration is a display suffix stripped from descriptions and plain
	// strings, e.g. " - TailorKey".
	Decoration string
	// VersionMarker is a lower-case literal removed from tokens before
	// mapping, e.g. "tkz".
	VersionMarker string

	// Hands maps a lower-case legacy hand token to its short form
	// ("left" -> "L"). An unrecognized hand means the name is not ours.
	Hands map[string]string
	// HandNames maps the short form back to a display name ("L" -> "Left").
	HandNames map[string]string
	// Fingers maps cleaned tokens to canonical finger names
	// ("middy" -> "Middle"). Unmapped tokens fall back to capitalization.
	Fingers map[string]string
	// Roles maps lower-case role tokens to their canonical form
	// ("hold" -> "Hold"). At most one role is kept per name. The "hold"
	// and "tap" tokens are semantic: description generation keys off
	// their canonical forms, whatever their spelling.
	Roles map[string]string
}

// Default returns the built-in TailorKey scheme.
func Default() *Scheme {
	return &Scheme{
		LegacyPrefix:    "&HRM_",
		CanonicalPrefix: "&BHRM_",
		Decoration:      " - TailorKey",
		VersionMarker:   "tkz",
		Hands: map[string]string{
			"left":  "L",
			"right": "R",
		},
		HandNames: map[string]string{
			"L": "Left",
			"R": "Right",
		},
		Fingers: map[string]string{
			"index":  "Index",
			"middle": "Middle",
			"middy":  "Middle",
			"ring":   "Ring",
			"ringy":  "Ring",
			"pinky":  "Pinky",
		},
		Roles: map[string]string{
			"hold": "Hold",
			"tap":  "Tap",
		},
	}
}

// validate rejects schemes the canonicalizer cannot work with.
func (s *Scheme) validate() error {
	if !strings.HasPrefix(s.LegacyPrefix, "&") || len(s.LegacyPrefix) < 2 {
		return fmt.Errorf("legacy prefix %q must start with '&'", s.LegacyPrefix)
	}
	if !strings.HasPrefix(s.CanonicalPrefix, "&") || len(s.CanonicalPrefix) < 2 {
		return fmt.Errorf("canonical prefix %q must start with '&'", s.CanonicalPrefix)
	}
	if s.LegacyPrefix == s.CanonicalPrefix {
		return fmt.Errorf("legacy and canonical prefixes are both %q", s.LegacyPrefix)
	}
	if len(s.Hands) == 0 {
		return fmt.Errorf("scheme has no hand tokens")
	}
	for token, short := range s.Hands {
		if _, ok := s.HandNames[short]; !ok {
			return fmt.Errorf("hand token %q maps to %q which has no display name", token, short)
		}
	}
	return nil
}
