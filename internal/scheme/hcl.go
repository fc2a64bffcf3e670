package scheme

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclSchemeFile is the top-level structure of a scheme file for decoding.
type hclSchemeFile struct {
	Prefixes *hclPrefixes `hcl:"prefixes,block"`
	Hands    []*hclHand   `hcl:"hand,block"`
	Fingers  []*hclFinger `hcl:"finger,block"`
	Roles    []*hclRole   `hcl:"role,block"`
}

type hclPrefixes struct {
	Legacy        string `hcl:"legacy,optional"`
	Canonical     string `hcl:"canonical,optional"`
	Decoration    string `hcl:"decoration,optional"`
	VersionMarker string `hcl:"version_marker,optional"`
}

type hclHand struct {
	Token string `hcl:"token,label"`
	Short string `hcl:"short"`
	Name  string `hcl:"name"`
}

type hclFinger struct {
	Token     string `hcl:"token,label"`
	Canonical string `hcl:"canonical"`
}

type hclRole struct {
	Token     string `hcl:"token,label"`
	Canonical string `hcl:"canonical"`
}

// LoadHCL reads a naming-scheme file and merges it over the defaults.
// Prefix attributes override individually; a non-empty hand, finger or
// role block list replaces that table whole, since the tables are closed.
//
// Example:
//
//	prefixes {
//	  legacy    = "&HRM_"
//	  canonical = "&BHRM_"
//	}
//
//	hand "left" {
//	  short = "L"
//	  name  = "Left"
//	}
//
//	finger "middy" {
//	  canonical = "Middle"
//	}
func LoadHCL(path string) (*Scheme, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scheme file %s: %w", path, diags)
	}

	var parsed hclSchemeFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scheme file %s: %w", path, diags)
	}

	s := Default()
	if p := parsed.Prefixes; p != nil {
		if p.Legacy != "" {
			s.LegacyPrefix = p.Legacy
		}
		if p.Canonical != "" {
			s.CanonicalPrefix = p.Canonical
		}
		if p.Decoration != "" {
			s.Decoration = p.Decoration
		}
		if p.VersionMarker != "" {
			s.VersionMarker = p.VersionMarker
		}
	}
	if len(parsed.Hands) > 0 {
		s.Hands = make(map[string]string, len(parsed.Hands))
		s.HandNames = make(map[string]string, len(parsed.Hands))
		for _, h := range parsed.Hands {
			s.Hands[h.Token] = h.Short
			s.HandNames[h.Short] = h.Name
		}
	}
	if len(parsed.Fingers) > 0 {
		s.Fingers = make(map[string]string, len(parsed.Fingers))
		for _, f := range parsed.Fingers {
			s.Fingers[f.Token] = f.Canonical
		}
	}
	if len(parsed.Roles) > 0 {
		s.Roles = make(map[string]string, len(parsed.Roles))
		for _, r := range parsed.Roles {
			s.Roles[r.Token] = r.Canonical
		}
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scheme file %s: %w", path, err)
	}
	return s, nil
}
