package papertitle

import "testing"

func TestNormalizeCourseCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cse2005", "CSE2005"},
		{" cse 2005 ", "CSE2005"},
		{"ＣＳＥ２００５", "CSE2005"},
		{"BCSE302L", "BCSE302L"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeCourseCode(tt.input); got != tt.want {
			t.Errorf("NormalizeCourseCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/uploads/2023/DBMS_CAT-1_A1_2023.pdf", "DBMS CAT-1 A1 2023.pdf"},
		{"Operating  Systems   FAT.pdf", "Operating Systems FAT.pdf"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FromFilename(tt.input); got != tt.want {
			t.Errorf("FromFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	parsed := Parse(FromFilename("/uploads/DBMS_CAT-1_A1_2023.pdf"))
	if parsed.ExamType != ExamCAT1 || parsed.Slot != "A1" || parsed.Year != "2023" {
		t.Fatalf("unexpected parse of derived title: %+v", parsed)
	}
}

func TestCanonical(t *testing.T) {
	parsed := Parse("[cse2005] Operating Systems FAT G2 2022-2023.pdf")
	got, ok := Canonical(parsed)
	if !ok {
		t.Fatal("expected canonical title")
	}
	want := "Operating Systems [CSE2005] FAT G2 2022-2023"
	if got != want {
		t.Fatalf("Canonical = %q, want %q", got, want)
	}
	reparsed := Parse(got)
	if reparsed.CourseCode != parsed.CourseCode || reparsed.CourseName != parsed.CourseName ||
		reparsed.ExamType != parsed.ExamType || reparsed.Slot != parsed.Slot ||
		reparsed.AcademicYear != parsed.AcademicYear {
		t.Fatalf("canonical title does not round-trip: %+v vs %+v", reparsed, parsed)
	}

	lower, ok := Canonical(Parse("data structures cse2001 cat 2 b1 22-23"))
	if !ok || lower != "Data Structures [CSE2001] CAT-2 B1 2022-2023" {
		t.Fatalf("Canonical lowercase = %q, %v", lower, ok)
	}

	if _, ok := Canonical(Parse("DBMS CAT-1 A1 2023")); ok {
		t.Fatal("expected no canonical title without a course code")
	}
}

func TestIsCourseCode(t *testing.T) {
	for _, value := range []string{"CSE2005", "cse 2005", "BCSE302L"} {
		if !IsCourseCode(value) {
			t.Errorf("IsCourseCode(%q) = false, want true", value)
		}
	}
	for _, value := range []string{"", "Operating Systems", "CSE2005 Operating", "2005"} {
		if IsCourseCode(value) {
			t.Errorf("IsCourseCode(%q) = true, want false", value)
		}
	}
}
