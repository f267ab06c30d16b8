package papertitle

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	filenameReplacer  = strings.NewReplacer("_", " ")
)

// NormalizeCourseCode folds a course code into its comparable form:
// compatibility-normalized, without whitespace, uppercase. "cse 2005" and
// full-width "ＣＳＥ２００５" both become "CSE2005".
func NormalizeCourseCode(code string) string {
	folded := norm.NFKC.String(code)
	folded = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
	// Casers carry state, so each call gets its own.
	return cases.Upper(language.Und).String(folded)
}

// FromFilename derives a raw title from an uploaded file path. The extension
// is kept so Parse can strip it with the rest of the title noise.
func FromFilename(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	base = filenameReplacer.Replace(base)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(base, " "))
}

// IsCourseCode reports whether value, once normalized, is exactly one course
// code such as "CSE2005" or "BCSE302L".
func IsCourseCode(value string) bool {
	normalized := NormalizeCourseCode(value)
	return normalized != "" && ExtractCourseCode(normalized) == normalized
}
