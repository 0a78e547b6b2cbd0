package chart

import (
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeID strips every character outside letters, digits, hyphen and
// underscore so a label can be used as an element identifier
func SanitizeID(s string) string {
	return invalidIDChars.ReplaceAllString(s, "")
}

// SanitizeSeriesID folds accented letters to their base form and turns
// whitespace into hyphens before applying SanitizeID
func SanitizeSeriesID(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return SanitizeID(whitespaceRuns.ReplaceAllString(folded, "-"))
}
