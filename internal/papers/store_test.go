package papers_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"paperdesk/internal/papers"
	"paperdesk/internal/testsupport"
)

// steppingClock returns a clock advancing one second per call.
func steppingClock() func() time.Time {
	current := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func openStore(t *testing.T) *papers.Store {
	t.Helper()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	store.SetClock(steppingClock())
	return store
}

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if store.Path() != cfg.DatabasePath() {
		t.Fatalf("Path() = %q, want %q", store.Path(), cfg.DatabasePath())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := papers.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.Add(context.Background(), papers.NewPaper{Title: "Networks CAT-1"}); err != nil {
		t.Fatalf("Add after reopen: %v", err)
	}
}

func TestAddAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	paper, err := store.Add(ctx, papers.NewPaper{
		Title:      "  Operating Systems FAT G2 2022-2023 ",
		FileRef:    "sha256:abc",
		SourcePath: "/tmp/os.pdf",
		Tags:       []string{"cse 2005", "Operating Systems", "operating systems", " "},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if paper.ID == "" {
		t.Fatal("expected an identifier")
	}
	if paper.Title != "Operating Systems FAT G2 2022-2023" {
		t.Fatalf("title not trimmed: %q", paper.Title)
	}
	if paper.Cleared || paper.Status() != "pending" {
		t.Fatalf("new paper should be pending: %#v", paper)
	}
	if want := []string{"CSE2005", "Operating Systems"}; !reflect.DeepEqual(paper.Tags, want) {
		t.Fatalf("tags = %v, want %v", paper.Tags, want)
	}
	if paper.FileRef != "sha256:abc" || paper.SourcePath != "/tmp/os.pdf" {
		t.Fatalf("unexpected file fields: %#v", paper)
	}
	if paper.CreatedAt.IsZero() || !paper.CreatedAt.Equal(paper.UpdatedAt) {
		t.Fatalf("unexpected timestamps: %v %v", paper.CreatedAt, paper.UpdatedAt)
	}

	missing, err := store.GetByID(ctx, "missing")
	if err != nil {
		t.Fatalf("GetByID missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing paper, got %#v", missing)
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	store := openStore(t)
	if _, err := store.Add(context.Background(), papers.NewPaper{Title: "   "}); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestListPendingNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := testsupport.AddPaper(t, store, "Physics CAT-1", "")
	second := testsupport.AddPaper(t, store, "Chemistry CAT-1", "")
	third := testsupport.AddPaper(t, store, "Biology CAT-1", "")

	if err := store.MarkCleared(ctx, second.ID); err != nil {
		t.Fatalf("MarkCleared: %v", err)
	}

	pending, err := store.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != third.ID || pending[1].ID != first.ID {
		t.Fatalf("unexpected pending order: %+v", pending)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 papers, got %d", len(all))
	}

	cleared, err := store.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !cleared.Cleared || !cleared.UpdatedAt.After(cleared.CreatedAt) {
		t.Fatalf("expected cleared paper with bumped updated_at: %#v", cleared)
	}
}

func TestMutationsOnMissingPaper(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	checks := map[string]error{
		"mark cleared": store.MarkCleared(ctx, "missing"),
		"rename":       store.Rename(ctx, "missing", "Title"),
		"delete":       store.Delete(ctx, "missing"),
		"set tags":     store.SetTags(ctx, "missing", []string{"x"}),
	}
	for name, err := range checks {
		if !errors.Is(err, papers.ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestRenameAndTags(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	paper := testsupport.AddPaper(t, store, "os fat", "", "old")

	if err := store.Rename(ctx, paper.ID, " "); err == nil {
		t.Fatal("expected error for blank rename")
	}
	if err := store.Rename(ctx, paper.ID, "Operating Systems [CSE2005] FAT"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if err := store.SetTags(ctx, paper.ID, []string{"cse2005", "Systems", "SYSTEMS"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}

	got, err := store.GetByID(ctx, paper.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Operating Systems [CSE2005] FAT" {
		t.Fatalf("title = %q", got.Title)
	}
	if want := []string{"CSE2005", "Systems"}; !reflect.DeepEqual(got.Tags, want) {
		t.Fatalf("tags = %v, want %v", got.Tags, want)
	}
}

func TestDeleteRemovesTags(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	paper := testsupport.AddPaper(t, store, "Networks [BCSE302L]", "", "BCSE302L")

	if err := store.Delete(ctx, paper.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := store.GetByID(ctx, paper.ID)
	if err != nil || got != nil {
		t.Fatalf("expected deleted paper to be gone, got %#v, %v", got, err)
	}
	found, err := store.SearchCourseCode(ctx, "BCSE302L", "", 10)
	if err != nil {
		t.Fatalf("SearchCourseCode: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected no candidates after delete, got %+v", found)
	}
}

func TestFindByFileRefExcludesSelf(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	first := testsupport.AddPaper(t, store, "DBMS CAT-1", "sha256:same")
	second := testsupport.AddPaper(t, store, "DBMS CAT 1 copy", "sha256:same")

	rec, err := store.FindByFileRef(ctx, "sha256:same", second.ID)
	if err != nil {
		t.Fatalf("FindByFileRef: %v", err)
	}
	if rec == nil || rec.ID != first.ID {
		t.Fatalf("expected %s, got %#v", first.ID, rec)
	}

	rec, err = store.FindByFileRef(ctx, "sha256:other", second.ID)
	if err != nil || rec != nil {
		t.Fatalf("expected no match, got %#v, %v", rec, err)
	}
}

func TestFindByTitleIgnoresCaseAndSpace(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	existing := testsupport.AddPaper(t, store, "Midterm Paper", "")
	upload := testsupport.AddPaper(t, store, "MIDTERM paper ", "")

	rec, err := store.FindByTitle(ctx, "  midterm PAPER", upload.ID)
	if err != nil {
		t.Fatalf("FindByTitle: %v", err)
	}
	if rec == nil || rec.ID != existing.ID {
		t.Fatalf("expected %s, got %#v", existing.ID, rec)
	}
}

func TestSearchCourseCode(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	byTitle := testsupport.AddPaper(t, store, "Operating Systems [cse2005] CAT-1", "")
	byTag := testsupport.AddPaper(t, store, "Operating Systems CAT-2", "", "CSE2005")
	testsupport.AddPaper(t, store, "Networks [BCSE302L]", "")
	self := testsupport.AddPaper(t, store, "CSE2005 FAT", "")
	later := testsupport.AddPaper(t, store, "CSE2005 Quiz", "")

	got, err := store.SearchCourseCode(ctx, "CSE2005", self.ID, 10)
	if err != nil {
		t.Fatalf("SearchCourseCode: %v", err)
	}
	var ids []string
	for _, rec := range got {
		ids = append(ids, rec.ID)
	}
	if want := []string{byTitle.ID, byTag.ID, later.ID}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("candidates = %v, want %v", ids, want)
	}
	if !reflect.DeepEqual(got[1].Tags, []string{"CSE2005"}) {
		t.Fatalf("expected tags on candidate, got %v", got[1].Tags)
	}

	limited, err := store.SearchCourseCode(ctx, "CSE2005", self.ID, 2)
	if err != nil {
		t.Fatalf("SearchCourseCode limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestOpenPathRejectsEmpty(t *testing.T) {
	if _, err := papers.OpenPath(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
	store, err := papers.OpenPath(filepath.Join(t.TempDir(), "direct.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	store.Close()
}

func TestNormalizeTags(t *testing.T) {
	got := papers.NormalizeTags([]string{" mat 1011 ", "Calculus", "  calculus", "", "MAT1011", "Year  One"})
	want := []string{"MAT1011", "Calculus", "Year One"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeTags = %v, want %v", got, want)
	}
}
