package duplicate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"paperdesk/internal/papertitle"
)

type fakeSource struct {
	records   []Record
	searchErr error
	searches  []string
	limits    []int
}

func (f *fakeSource) FindByFileRef(_ context.Context, fileRef, excludeID string) (*Record, error) {
	for i := range f.records {
		if f.records[i].ID != excludeID && f.records[i].FileRef == fileRef {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSource) FindByTitle(_ context.Context, title, excludeID string) (*Record, error) {
	for i := range f.records {
		if f.records[i].ID != excludeID && strings.EqualFold(f.records[i].Title, title) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSource) SearchCourseCode(_ context.Context, code, excludeID string, limit int) ([]Record, error) {
	f.searches = append(f.searches, code)
	f.limits = append(f.limits, limit)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []Record
	for _, rec := range f.records {
		if rec.ID == excludeID {
			continue
		}
		hit := strings.Contains(strings.ToUpper(rec.Title), code)
		for _, tag := range rec.Tags {
			if strings.Contains(strings.ToUpper(tag), code) {
				hit = true
			}
		}
		if hit {
			out = append(out, rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name string
		a    Record
		b    Record
		want bool
	}{
		{
			name: "same file short-circuits",
			a:    Record{ID: "1", Title: "Physics", FileRef: "sha256:abc"},
			b:    Record{ID: "2", Title: "Chemistry", FileRef: "sha256:abc"},
			want: true,
		},
		{
			name: "equal metadata different titles",
			a:    Record{ID: "1", Title: "[CSE2005] Operating Systems FAT G2 2022-2023"},
			b:    Record{ID: "2", Title: "OS fat g2 CSE2005 2022-23.pdf"},
			want: true,
		},
		{
			name: "different slot",
			a:    Record{ID: "1", Title: "[CSE2005] Operating Systems FAT G2 2022-2023"},
			b:    Record{ID: "2", Title: "[CSE2005] Operating Systems FAT G1 2022-2023"},
			want: false,
		},
		{
			name: "different exam type",
			a:    Record{ID: "1", Title: "[CSE2005] Operating Systems CAT-1 G2"},
			b:    Record{ID: "2", Title: "[CSE2005] Operating Systems CAT-2 G2"},
			want: false,
		},
		{
			name: "missing year is a wildcard",
			a:    Record{ID: "1", Title: "Networks [CSE1004] CAT-1 A1"},
			b:    Record{ID: "2", Title: "Networks [CSE1004] CAT-1 A1 2024"},
			want: true,
		},
		{
			name: "missing slot is a wildcard",
			a:    Record{ID: "1", Title: "Networks [CSE1004] CAT-1 2024"},
			b:    Record{ID: "2", Title: "Networks [CSE1004] CAT-1 A1 2024"},
			want: true,
		},
		{
			name: "different course code",
			a:    Record{ID: "1", Title: "Networks [CSE1004] CAT-1 A1"},
			b:    Record{ID: "2", Title: "Networks [CSE1005] CAT-1 A1"},
			want: false,
		},
		{
			name: "candidate without course code",
			a:    Record{ID: "1", Title: "Networks [CSE1004] CAT-1 A1"},
			b:    Record{ID: "2", Title: "Networks CAT-1 A1"},
			want: false,
		},
		{
			name: "no course code falls back to title equality",
			a:    Record{ID: "1", Title: "DBMS CAT-1 A1 2023"},
			b:    Record{ID: "2", Title: "  dbms cat-1 a1 2023 "},
			want: true,
		},
		{
			name: "no course code and different titles",
			a:    Record{ID: "1", Title: "DBMS CAT-1 A1 2023"},
			b:    Record{ID: "2", Title: "DBMS CAT-1 A1 2024"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.a, tt.b); got != tt.want {
				t.Fatalf("IsDuplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearCompatibility(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal ranges", "2022-2023", "2022-23", true},
		{"different ranges", "2022-2023", "2023-2024", false},
		{"bare years equal", "2023", "2023", true},
		{"bare years differ", "2023", "2024", false},
		{"range against its start year", "2022-2023", "2022", false},
		{"range against a year outside it", "2022-2023", "2024", false},
		{"neither side", "", "", true},
		{"one side only", "", "2024", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Record{Title: "Networks [CSE1004] CAT-1 " + tt.a}
			b := Record{Title: "Networks [CSE1004] CAT-1 " + tt.b}
			if got := IsDuplicate(a, b); got != tt.want {
				t.Fatalf("IsDuplicate(%q, %q) = %v, want %v", a.Title, b.Title, got, tt.want)
			}
		})
	}
}

func TestCheckFileReferenceFirst(t *testing.T) {
	source := &fakeSource{records: []Record{
		{ID: "old", Title: "Something else entirely", FileRef: "sha256:same"},
	}}
	classifier := New(source)

	result, err := classifier.Check(context.Background(), Record{ID: "new", Title: "[CSE2005] OS FAT", FileRef: "sha256:same"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !result.Duplicate || result.MatchedID != "old" || result.Reason != ReasonFile {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(source.searches) != 0 {
		t.Fatalf("expected no candidate search after file match, got %v", source.searches)
	}
}

func TestCheckFirstCompatibleCandidateWins(t *testing.T) {
	source := &fakeSource{records: []Record{
		{ID: "a", Title: "Operating Systems [CSE2005] FAT G1 2022-2023"},
		{ID: "b", Title: "Operating Systems [CSE2005] FAT G2"},
		{ID: "c", Title: "OS CSE2005 FAT G2 2022-2023"},
		{ID: "self", Title: "[CSE2005] Operating Systems FAT G2 2022-2023"},
	}}
	classifier := New(source)

	result, err := classifier.Check(context.Background(), Record{ID: "self", Title: "[cse2005] Operating Systems FAT G2 2022-2023"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !result.Duplicate || result.MatchedID != "b" || result.Reason != ReasonMetadata {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(source.searches) != 1 || source.searches[0] != "CSE2005" {
		t.Fatalf("expected one normalized search, got %v", source.searches)
	}
	if source.limits[0] != DefaultCandidateLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultCandidateLimit, source.limits[0])
	}
}

func TestCheckMatchesCandidateFoundByTag(t *testing.T) {
	source := &fakeSource{records: []Record{
		{ID: "tagged", Title: "Operating Systems FAT CSE2005", Tags: []string{"cse2005"}},
	}}
	result, err := New(source).Check(context.Background(), Record{ID: "new", Title: "OS [CSE2005] FAT"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !result.Duplicate || result.MatchedID != "tagged" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckCandidateLimit(t *testing.T) {
	records := make([]Record, 0, 5)
	for i := 0; i < 4; i++ {
		records = append(records, Record{ID: string(rune('a' + i)), Title: "Networks [CSE1004] CAT-2"})
	}
	records = append(records, Record{ID: "late", Title: "Networks [CSE1004] CAT-1"})
	source := &fakeSource{records: records}

	result, err := New(source, WithCandidateLimit(4)).Check(context.Background(), Record{ID: "new", Title: "Networks [CSE1004] CAT-1"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if result.Duplicate {
		t.Fatalf("expected match beyond the candidate limit to be missed, got %+v", result)
	}
	if source.limits[0] != 4 {
		t.Fatalf("expected limit 4, got %d", source.limits[0])
	}
}

func TestCheckWithoutCourseCodeUsesTitle(t *testing.T) {
	source := &fakeSource{records: []Record{{ID: "old", Title: "dbms cat-1 a1 2023"}}}
	classifier := New(source)

	result, err := classifier.Check(context.Background(), Record{ID: "new", Title: "DBMS CAT-1 A1 2023"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !result.Duplicate || result.Reason != ReasonTitle || result.MatchedID != "old" {
		t.Fatalf("unexpected result: %+v", result)
	}

	result, err = classifier.Check(context.Background(), Record{ID: "new", Title: "DBMS CAT-2 A1 2023"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if result.Duplicate {
		t.Fatalf("expected no duplicate, got %+v", result)
	}
	if len(source.searches) != 0 {
		t.Fatalf("expected no course code search, got %v", source.searches)
	}
}

func TestCheckPropagatesSourceErrors(t *testing.T) {
	boom := errors.New("storage unavailable")
	source := &fakeSource{searchErr: boom}

	_, err := New(source).Check(context.Background(), Record{ID: "new", Title: "Networks [CSE1004] CAT-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestCheckHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source := &fakeSource{}

	_, err := New(source).Check(ctx, Record{ID: "new", Title: "Networks [CSE1004] CAT-1", FileRef: "sha256:x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(source.searches) != 0 {
		t.Fatal("expected no search after cancellation")
	}
}

func TestYearCompatibleBareYearIsSingleYearRange(t *testing.T) {
	tests := []struct {
		name string
		a, b papertitle.Parsed
		want bool
	}{
		{"range against its start year", papertitle.Parsed{AcademicYear: "2022-2023", Year: "2022"}, papertitle.Parsed{Year: "2022"}, false},
		{"single-year range against bare year", papertitle.Parsed{AcademicYear: "2022-2022", Year: "2022"}, papertitle.Parsed{Year: "2022"}, true},
		{"unparsable range falls back to year", papertitle.Parsed{AcademicYear: "spring", Year: "2021"}, papertitle.Parsed{Year: "2021"}, true},
		{"no year on either side", papertitle.Parsed{}, papertitle.Parsed{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearCompatible(tt.a, tt.b); got != tt.want {
				t.Fatalf("yearCompatible = %v, want %v", got, tt.want)
			}
			if got := yearCompatible(tt.b, tt.a); got != tt.want {
				t.Fatalf("yearCompatible (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}
