// Package rename rewrites behavior names from the legacy, tool-versioned
// naming scheme into the stable canonical one, and regenerates the
// human-readable descriptions derived from canonical names. All table
// lookups come from an injected scheme.Scheme.
package rename

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/hrmkit/internal/scheme"
)

// Renamer applies one naming scheme. It is stateless after construction
// and safe to reuse across documents.
type Renamer struct {
	scheme *scheme.Scheme

	// legacyName matches a full legacy behavior reference inside text.
	legacyName *regexp.Regexp
	// versionSuffix matches the version marker at the end of a name body,
	// e.g. "_v1B_TKZ" or "_v3".
	versionSuffix *regexp.Regexp
	// trailingVersion and trailingDigits clean individual tokens.
	trailingVersion *regexp.Regexp
	trailingDigits  *regexp.Regexp
}

// New builds a Renamer for the given scheme.
func New(s *scheme.Scheme) *Renamer {
	marker := strings.ToUpper(s.VersionMarker)
	return &Renamer{
		scheme:          s,
		legacyName:      regexp.MustCompile(regexp.QuoteMeta(s.LegacyPrefix) + `[A-Za-z0-9_]+`),
		versionSuffix:   regexp.MustCompile(`_v[0-9A-Za-z]*(_` + regexp.QuoteMeta(marker) + `)?$`),
		trailingVersion: regexp.MustCompile(`v\d+$`),
		trailingDigits:  regexp.MustCompile(`\d+$`),
	}
}

// normalizeBase strips the trailing version marker from a name body.
func (r *Renamer) normalizeBase(body string) string {
	return r.versionSuffix.ReplaceAllString(body, "")
}

// cleanToken lower-cases a token and strips the version-marker literal,
// version suffixes and trailing digits.
func (r *Renamer) cleanToken(token string) string {
	token = strings.ToLower(token)
	token = strings.ReplaceAll(token, r.scheme.VersionMarker, "")
	token = r.trailingVersion.ReplaceAllString(token, "")
	token = r.trailingDigits.ReplaceAllString(token, "")
	return strings.Trim(token, "_")
}

// formatToken cleans a token and maps it through the finger table, falling
// back to plain capitalization. Tokens that clean away entirely yield "".
func (r *Renamer) formatToken(token string) string {
	token = r.cleanToken(token)
	if token == "" {
		return ""
	}
	if mapped, ok := r.scheme.Fingers[token]; ok {
		return mapped
	}
	return capitalize(token)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// splitRole pulls at most one role token out of the formatted tokens after
// the primary; the first match wins and the rest become extras.
func (r *Renamer) splitRole(tokens []string) (extras []string, role string) {
	for _, token := range tokens {
		lower := strings.ToLower(token)
		if mapped, ok := r.scheme.Roles[lower]; ok && role == "" {
			role = mapped
			continue
		}
		extras = append(extras, token)
	}
	return extras, role
}

func (r *Renamer) assemble(hand, primary string, extras []string, role string) string {
	name := r.scheme.CanonicalPrefix + hand + "_" + primary
	if len(extras) > 0 {
		name += "_" + strings.Join(extras, "_")
	}
	if role != "" {
		name += "_" + role
	}
	return name
}

// RenameLegacy rewrites a legacy behavior name into the canonical scheme.
// Values that do not carry the legacy prefix, a known hand token and at
// least one descriptive token are returned unchanged: they are not ours.
func (r *Renamer) RenameLegacy(value string) string {
	if !strings.HasPrefix(value, r.scheme.LegacyPrefix) {
		return value
	}

	body := r.normalizeBase(strings.TrimPrefix(value, "&"))
	parts := strings.Split(body, "_")
	prefixToken := strings.TrimSuffix(strings.TrimPrefix(r.scheme.LegacyPrefix, "&"), "_")
	if len(parts) < 3 || parts[0] != prefixToken {
		return value
	}

	hand, ok := r.scheme.Hands[strings.ToLower(parts[1])]
	if !ok {
		return value
	}

	var tokens []string
	for _, part := range parts[2:] {
		if t := r.formatToken(part); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return value
	}

	extras, role := r.splitRole(tokens[1:])
	return r.assemble(hand, tokens[0], extras, role)
}

// Canonicalize re-normalizes an already-canonical name so repeated
// application is a fixed point. Anything that does not parse comes back
// unchanged.
func (r *Renamer) Canonicalize(value string) string {
	if !strings.HasPrefix(value, r.scheme.CanonicalPrefix) {
		return value
	}
	tokens := strings.Split(strings.TrimPrefix(value, r.scheme.CanonicalPrefix), "_")
	if len(tokens) == 0 {
		return value
	}
	hand := strings.ToUpper(tokens[0])
	rest := tokens[1:]
	if len(rest) == 0 {
		return value
	}

	role := ""
	if mapped, ok := r.scheme.Roles[strings.ToLower(rest[len(rest)-1])]; ok {
		role = mapped
		rest = rest[:len(rest)-1]
	}

	var cleaned []string
	for _, token := range rest {
		if t := r.formatToken(token); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return value
	}
	return r.assemble(hand, cleaned[0], cleaned[1:], role)
}

// RewriteOccurrences renames every legacy behavior reference embedded in a
// larger string, leaving the surrounding text untouched.
func (r *Renamer) RewriteOccurrences(text string) string {
	return r.legacyName.ReplaceAllStringFunc(text, r.RenameLegacy)
}

// StripDecoration removes the decorative suffix and trims the result.
func (r *Renamer) StripDecoration(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, r.scheme.Decoration, ""))
}

// TransformString applies the per-string rules: canonical names are
// re-canonicalized, legacy names renamed, embedded legacy references
// rewritten, and everything else has the decoration stripped.
func (r *Renamer) TransformString(s string) string {
	switch {
	case strings.HasPrefix(s, r.scheme.CanonicalPrefix):
		return r.Canonicalize(s)
	case strings.HasPrefix(s, r.scheme.LegacyPrefix):
		return r.RenameLegacy(s)
	case strings.Contains(s, strings.TrimPrefix(r.scheme.LegacyPrefix, "&")):
		return r.RewriteOccurrences(s)
	default:
		return r.StripDecoration(s)
	}
}

// NameInfo is a canonical name parsed back into its parts.
type NameInfo struct {
	Hand    string
	Primary string
	Combos  []string
	Role    string
}

// ParseName parses a canonical behavior name. The hand must resolve
// through the display-name table; a trailing canonical role token is
// split off; the first remaining token is the primary (usually a finger)
// and the rest are combo names.
func (r *Renamer) ParseName(name string) (NameInfo, bool) {
	if !strings.HasPrefix(name, r.scheme.CanonicalPrefix) {
		return NameInfo{}, false
	}
	tokens := strings.Split(strings.TrimPrefix(name, r.scheme.CanonicalPrefix), "_")
	if len(tokens) == 0 {
		return NameInfo{}, false
	}
	hand, ok := r.scheme.HandNames[strings.ToUpper(tokens[0])]
	if !ok {
		return NameInfo{}, false
	}
	rest := tokens[1:]
	if len(rest) == 0 {
		return NameInfo{}, false
	}

	role := ""
	if isCanonicalRole(r.scheme.Roles, rest[len(rest)-1]) {
		role = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	if len(rest) == 0 {
		return NameInfo{}, false
	}
	return NameInfo{
		Hand:    hand,
		Primary: rest[0],
		Combos:  rest[1:],
		Role:    role,
	}, true
}

func isCanonicalRole(roles map[string]string, token string) bool {
	for _, canonical := range roles {
		if token == canonical {
			return true
		}
	}
	return false
}

// DescribeMacro derives a macro description from its canonical name.
// Names that do not parse, or parse without a role, fall back to the
// current description with the decoration stripped.
func (r *Renamer) DescribeMacro(name, current string) string {
	base := r.StripDecoration(current)
	info, ok := r.ParseName(name)
	if !ok {
		return base
	}
	// The role meaning comes from the scheme's "hold"/"tap" entries, so a
	// scheme with different canonical role spellings still describes them.
	switch {
	case info.Role != "" && info.Role == r.scheme.Roles["hold"]:
		return fmt.Sprintf("Hold: activate %s %s layer", info.Hand, info.Primary)
	case info.Role != "" && info.Role == r.scheme.Roles["tap"]:
		return "Tap: restore base key"
	}
	return base
}

// DescribeHoldTap derives a hold-tap description from its canonical name.
func (r *Renamer) DescribeHoldTap(name, current string) string {
	base := r.StripDecoration(current)
	info, ok := r.ParseName(name)
	if !ok {
		return base
	}
	if len(info.Combos) > 0 {
		parts := append([]string{info.Primary}, info.Combos...)
		return "Combo: " + strings.Join(parts, " + ")
	}
	return "HRM: tap→key, hold→layer"
}
