// Package names canonicalizes Arabic personal names and scores their
// similarity. Everything here is a pure function over strings; no store or
// service bindings, so matching policy stays unit-testable in isolation.
package names

import (
	"regexp"
	"strings"
)

// Folding and filtering rules, applied in a fixed order. Later steps assume
// the earlier ones already ran: the letter filter only has to keep the bare
// alef range because the hamza variants were folded first.
var (
	definiteArticlePrefix = regexp.MustCompile(`^ال`)
	hamzaAlefVariants     = regexp.MustCompile(`[أإآ]`)
	dotlessYa             = regexp.MustCompile(`ى`)
	trailingTaMarbuta     = regexp.MustCompile(`ة$`)
	nonArabicLetters      = regexp.MustCompile(`[^ا-ي\s]`)
	whitespaceRuns        = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes an Arabic name for comparison. It is pure and
// total: any input, including empty or non-Arabic text, yields a (possibly
// empty) string without error. Single spaces between tokens are preserved;
// use MatchKey when a whitespace-free comparison key is needed.
//
// Steps, in order:
//  1. strip one leading definite article ("ال")
//  2. fold hamza-bearing alef variants (أ إ آ) to bare alef, and dotless
//     yāʾ (ى) to yāʾ (ي)
//  3. fold a trailing tāʾ marbūṭa (ة) to hāʾ (ه)
//  4. drop every rune outside the Arabic letter range (ا–ي) and whitespace
//  5. collapse whitespace runs to single spaces and trim
func Normalize(name string) string {
	name = definiteArticlePrefix.ReplaceAllString(name, "")
	name = hamzaAlefVariants.ReplaceAllString(name, "ا")
	name = dotlessYa.ReplaceAllString(name, "ي")
	name = trailingTaMarbuta.ReplaceAllString(name, "ه")
	name = nonArabicLetters.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// MatchKey returns the whitespace-free canonical form used for equality and
// similarity comparison. Distinct from the display form: keys are never
// shown to users.
func MatchKey(name string) string {
	return strings.ReplaceAll(Normalize(name), " ", "")
}
