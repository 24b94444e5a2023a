// Package canon normalizes node display names and asset file stems into a
// canonical comparable form. Design tools append numeric disambiguators to
// duplicate layer names ("Hero 2"), designers mix dashes, underscores and
// periods in file names, and macOS file names arrive NFD-decomposed; all of
// that noise is stripped here so the matcher compares meaning, not typing
// habits.
package canon

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	trailingDigits = regexp.MustCompile(`(?: \d+)+$`)
	separatorRuns  = regexp.MustCompile(`[_\-.]+`)
	spaceRuns      = regexp.MustCompile(`\s+`)
)

// dashLike maps typographic dash variants to ASCII hyphen.
var dashLike = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
)

// Name returns the canonical form of a display name or file stem.
// The result may be empty. Name is idempotent.
func Name(raw string) string {
	s := norm.NFC.String(raw)
	s = dashLike.Replace(s)
	s = separatorRuns.ReplaceAllString(s, " ")
	s = strings.ToLower(s)
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	// Strip after collapse so "home-hero-2" and "Home Hero 2" reach the
	// same fixpoint in one pass.
	return trailingDigits.ReplaceAllString(s, "")
}
