package papers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paperdesk/internal/duplicate"
)

var _ duplicate.Source = (*Store)(nil)

// FindByFileRef returns the oldest other paper stored under fileRef.
func (s *Store) FindByFileRef(ctx context.Context, fileRef, excludeID string) (*duplicate.Record, error) {
	return s.findOne(ctx,
		`WHERE p.file_ref = ? AND p.id <> ? ORDER BY p.created_at, p.id LIMIT 1`,
		fileRef, excludeID)
}

// FindByTitle returns the oldest other paper whose trimmed title matches
// title ignoring ASCII case.
func (s *Store) FindByTitle(ctx context.Context, title, excludeID string) (*duplicate.Record, error) {
	return s.findOne(ctx,
		`WHERE lower(trim(p.title)) = lower(trim(?)) AND p.id <> ? ORDER BY p.created_at, p.id LIMIT 1`,
		title, excludeID)
}

// SearchCourseCode returns up to limit other papers whose title or any tag
// contains code ignoring case, oldest first.
func (s *Store) SearchCourseCode(ctx context.Context, code, excludeID string, limit int) ([]duplicate.Record, error) {
	if limit <= 0 {
		limit = duplicate.DefaultCandidateLimit
	}
	papers, err := s.list(ctx,
		`WHERE p.id <> ?
            AND (instr(upper(p.title), upper(?)) > 0
                OR EXISTS (SELECT 1 FROM paper_tags t WHERE t.paper_id = p.id AND instr(upper(t.name), upper(?)) > 0))
        ORDER BY p.created_at, p.id
        LIMIT ?`,
		excludeID, code, code, limit)
	if err != nil {
		return nil, fmt.Errorf("search course code: %w", err)
	}
	records := make([]duplicate.Record, 0, len(papers))
	for _, paper := range papers {
		records = append(records, paper.Record())
	}
	return records, nil
}

func (s *Store) findOne(ctx context.Context, clause string, args ...any) (*duplicate.Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+paperColumns+` FROM papers p `+clause, args...)
	paper, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find paper: %w", err)
	}
	rec := paper.Record()
	return &rec, nil
}
