package testsupport

import (
	"context"
	"testing"

	"paperdesk/internal/config"
	"paperdesk/internal/papers"
)

// MustOpenStore opens a papers.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *papers.Store {
	t.Helper()

	store, err := papers.Open(cfg)
	if err != nil {
		t.Fatalf("papers.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddPaper inserts a pending paper for tests using the provided store.
func AddPaper(t testing.TB, store *papers.Store, title, fileRef string, tags ...string) *papers.Paper {
	t.Helper()

	paper, err := store.Add(context.Background(), papers.NewPaper{Title: title, FileRef: fileRef, Tags: tags})
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return paper
}
