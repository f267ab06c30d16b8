package papertitle

import (
	"regexp"
	"strconv"
	"strings"
)

// Exam types recognised in titles.
const (
	ExamCAT1 = "CAT-1"
	ExamCAT2 = "CAT-2"
	ExamFAT  = "FAT"
	ExamMID  = "MID"
	ExamQuiz = "QUIZ"
	ExamCIA  = "CIA"
)

// Parsed holds the metadata extracted from a title. Empty strings mean the
// field was not present.
type Parsed struct {
	CleanTitle   string `json:"clean_title"`
	ExamType     string `json:"exam_type,omitempty"`
	Slot         string `json:"slot,omitempty"`
	Year         string `json:"year,omitempty"`
	AcademicYear string `json:"academic_year,omitempty"`
	CourseCode   string `json:"course_code,omitempty"`
	CourseName   string `json:"course_name,omitempty"`
}

var (
	pdfSuffixPattern    = regexp.MustCompile(`(?i)\.pdf$`)
	selectSuffixPattern = regexp.MustCompile(`(?i)select$`)
	slotPattern         = regexp.MustCompile(`(?i)\b([A-G][1-2])\b`)
	yearRangePattern    = regexp.MustCompile(`\b((?:20)?\d{2})\s*-\s*((?:20)?\d{2})\b`)
	yearPattern         = regexp.MustCompile(`\b(20\d{2})\b`)
	courseCodePattern   = regexp.MustCompile(`[A-Z]{2,5}\d{3,4}[A-Z]{0,3}`)
	codeAnnotation      = regexp.MustCompile(`(?i)\[[A-Z]{2,5}\s?\d{3,4}[A-Z]{0,3}\]\s*`)
	danglingBracket     = regexp.MustCompile(`[\[\]]\s*$`)
	trailingSeparator   = regexp.MustCompile(`[-–—]\s*$`)
)

// examPatterns are checked in order; the first match wins.
var examPatterns = []struct {
	pattern *regexp.Regexp
	value   string
}{
	{regexp.MustCompile(`(?i)\bcat[-\s]?1\b`), ExamCAT1},
	{regexp.MustCompile(`(?i)\bcat[-\s]?2\b`), ExamCAT2},
	{regexp.MustCompile(`(?i)\bfat(?:\s*2)?\b`), ExamFAT},
	{regexp.MustCompile(`(?i)\bmid(?:term)?\b`), ExamMID},
	{regexp.MustCompile(`(?i)\bquiz\b`), ExamQuiz},
	{regexp.MustCompile(`(?i)\bcia\b`), ExamCIA},
}

// Parse extracts metadata from a raw title. Each field is derived from the
// normalized title independently, except CourseName which is derived from
// CleanTitle and CourseCode.
func Parse(raw string) Parsed {
	base := baseTitle(raw)
	academicYear, year := ExtractYear(base)
	parsed := Parsed{
		ExamType:     ExtractExamType(base),
		Slot:         ExtractSlot(base),
		Year:         year,
		AcademicYear: academicYear,
		CourseCode:   ExtractCourseCode(base),
	}
	parsed.CleanTitle = StripMetadata(base)
	parsed.CourseName = ExtractCourseName(parsed.CleanTitle, parsed.CourseCode)
	return parsed
}

// baseTitle drops a trailing ".pdf" and then a trailing "select".
func baseTitle(raw string) string {
	title := pdfSuffixPattern.ReplaceAllString(raw, "")
	title = selectSuffixPattern.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// ExtractExamType returns the highest-priority exam type named in title.
func ExtractExamType(title string) string {
	for _, exam := range examPatterns {
		if exam.pattern.MatchString(title) {
			return exam.value
		}
	}
	return ""
}

// ExtractSlot returns the first slot code in title, uppercased.
func ExtractSlot(title string) string {
	match := slotPattern.FindStringSubmatch(title)
	if match == nil {
		return ""
	}
	return strings.ToUpper(match[1])
}

// ExtractYear returns the academic year and start year found in title. A
// range such as "2022-23" yields ("2022-2023", "2022"); a bare year yields
// the same value twice.
func ExtractYear(title string) (academicYear, year string) {
	if match := yearRangePattern.FindStringSubmatch(title); match != nil {
		start := normalizeYear(match[1])
		end := normalizeYear(match[2])
		if start != "" && end != "" {
			return start + "-" + end, start
		}
	}
	if match := yearPattern.FindStringSubmatch(title); match != nil {
		if normalized := normalizeYear(match[1]); normalized != "" {
			return normalized, normalized
		}
	}
	return "", ""
}

// ExtractCourseCode returns the last course code in title. Titles often
// repeat the code in a trailing bracket, which is the authoritative one.
func ExtractCourseCode(title string) string {
	matches := courseCodePattern.FindAllString(asciiUpper(title), -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}

// ExtractCourseName returns the free text of a clean title once the course
// code and metadata tokens are removed. Bracketed code annotations are
// dropped first; the remaining text is then cut at the last occurrence of
// the code, so a title that opens with its code has no course name.
func ExtractCourseName(cleanTitle, courseCode string) string {
	working := codeAnnotation.ReplaceAllString(cleanTitle, "")
	if courseCode != "" {
		working = truncateAtCourseCode(working, courseCode)
	}
	return courseNameFrom(working)
}

func courseNameFrom(working string) string {
	working = danglingBracket.ReplaceAllString(working, "")
	working = strings.TrimSpace(trailingSeparator.ReplaceAllString(working, ""))

	tokens := strings.Fields(working)
	collected := make([]string, 0, len(tokens))
	started := false
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		pair := i+1 < len(tokens) && isMetadataPair(token, tokens[i+1])
		metadata := pair || isMetadataToken(token)
		if !started {
			if metadata {
				if pair {
					i++
				}
				continue
			}
			started = true
		}
		if metadata {
			break
		}
		collected = append(collected, token)
	}
	return strings.TrimSpace(strings.Join(collected, " "))
}

// truncateAtCourseCode keeps the text before the last case-insensitive
// occurrence of code, with any earlier occurrences removed.
func truncateAtCourseCode(value, code string) string {
	if idx := strings.LastIndex(asciiUpper(value), code); idx >= 0 {
		value = value[:idx]
	}
	return removeCourseCode(value, code)
}

func removeCourseCode(value, code string) string {
	upper := asciiUpper(value)
	for {
		idx := strings.Index(upper, code)
		if idx < 0 {
			return value
		}
		value = value[:idx] + " " + value[idx+len(code):]
		upper = upper[:idx] + " " + upper[idx+len(code):]
	}
}

func normalizeYear(value string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	switch len(digits) {
	case 4:
		return digits
	case 2:
		n, err := strconv.Atoi(digits)
		if err != nil {
			return ""
		}
		return strconv.Itoa(2000 + n)
	default:
		return ""
	}
}

// asciiUpper uppercases ASCII letters only, keeping byte offsets aligned with
// the input.
func asciiUpper(value string) string {
	b := []byte(value)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
