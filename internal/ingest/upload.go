package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"paperdesk/internal/fileutil"
	"paperdesk/internal/papers"
	"paperdesk/internal/papertitle"
)

// Adder inserts pending papers.
type Adder interface {
	Add(ctx context.Context, in papers.NewPaper) (*papers.Paper, error)
}

// UploadOptions tunes Upload.
type UploadOptions struct {
	// Title overrides the title derived from the filename.
	Title string
	Tags  []string
	// ArchiveDir, when set, receives a content-addressed copy of the file
	// and the stored paper points at that copy.
	ArchiveDir string
}

// FileRef returns the content reference "sha256:<hex>" for the file at path.
func FileRef(path string) (string, error) {
	sum, err := fileutil.HashFile(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return "sha256:" + sum, nil
}

// Upload stores the file at path as a pending paper. A blank title is
// derived from the filename. The parsed course code is added to the tags.
func Upload(ctx context.Context, store Adder, path string, opts UploadOptions) (*papers.Paper, error) {
	if store == nil {
		return nil, errors.New("paper store is nil")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat upload: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("upload %s is a directory", path)
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = papertitle.FromFilename(path)
	}
	if title == "" {
		return nil, fmt.Errorf("cannot derive a title from %s", path)
	}

	var ref, source string
	if opts.ArchiveDir != "" {
		sum, stored, err := fileutil.StoreByHash(path, opts.ArchiveDir)
		if err != nil {
			return nil, fmt.Errorf("archive upload: %w", err)
		}
		ref, source = "sha256:"+sum, stored
	} else {
		if ref, err = FileRef(path); err != nil {
			return nil, err
		}
		source = path
		if abs, err := filepath.Abs(path); err == nil {
			source = abs
		}
	}

	paper, err := store.Add(ctx, papers.NewPaper{
		Title:      title,
		FileRef:    ref,
		SourcePath: source,
		Tags:       withCourseCode(title, opts.Tags),
	})
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	return paper, nil
}

func withCourseCode(title string, tags []string) []string {
	out := append([]string(nil), tags...)
	if code := papertitle.NormalizeCourseCode(papertitle.Parse(title).CourseCode); code != "" {
		out = append(out, code)
	}
	return out
}
