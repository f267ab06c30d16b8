package papertitle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical renders the standard title form "Course Name [CODE] EXAM SLOT
// YEAR", omitting absent parts. An all-lowercase course name is title-cased.
// It reports false when the course name or the course code is missing.
func Canonical(p Parsed) (string, bool) {
	name := strings.TrimSpace(p.CourseName)
	code := NormalizeCourseCode(p.CourseCode)
	if name == "" || code == "" {
		return "", false
	}
	if name == strings.ToLower(name) {
		name = cases.Title(language.Und).String(name)
	}
	parts := []string{name, "[" + code + "]"}
	for _, value := range []string{p.ExamType, p.Slot, yearLabel(p)} {
		if value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " "), true
}

func yearLabel(p Parsed) string {
	if p.AcademicYear != "" {
		return p.AcademicYear
	}
	return p.Year
}
