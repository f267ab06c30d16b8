package papers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Add inserts a pending paper with a fresh identifier.
func (s *Store) Add(ctx context.Context, in NewPaper) (*Paper, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("paper title is empty")
	}

	id := uuid.NewString()
	now := timestamp(s.now())
	tags := NormalizeTags(in.Tags)

	err := s.execTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO papers (id, title, file_ref, source_path, cleared, created_at, updated_at)
            VALUES (?, ?, ?, ?, 0, ?, ?)`,
			id, title, nullableString(in.FileRef), nullableString(in.SourcePath), now, now,
		); err != nil {
			return err
		}
		return insertTags(ctx, tx, id, tags)
	})
	if err != nil {
		return nil, fmt.Errorf("insert paper: %w", err)
	}
	return s.GetByID(ctx, id)
}

func insertTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO paper_tags (paper_id, name) VALUES (?, ?)`, id, tag,
		); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	return nil
}

// GetByID fetches a paper by identifier. A missing paper yields (nil, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*Paper, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+paperColumns+` FROM papers p WHERE p.id = ?`, id)
	paper, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get paper: %w", err)
	}
	return paper, nil
}

// ListPending returns papers awaiting moderation, newest first.
func (s *Store) ListPending(ctx context.Context) ([]*Paper, error) {
	return s.list(ctx, `WHERE p.cleared = 0 ORDER BY p.created_at DESC, p.id DESC`)
}

// List returns every stored paper, newest first.
func (s *Store) List(ctx context.Context) ([]*Paper, error) {
	return s.list(ctx, `ORDER BY p.created_at DESC, p.id DESC`)
}

func (s *Store) list(ctx context.Context, clause string, args ...any) ([]*Paper, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT `+paperColumns+` FROM papers p `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	defer rows.Close()

	var out []*Paper
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		out = append(out, paper)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate papers: %w", err)
	}
	return out, nil
}

// MarkCleared records that a moderator approved the paper.
func (s *Store) MarkCleared(ctx context.Context, id string) error {
	return s.updatePaper(ctx, id, `UPDATE papers SET cleared = 1, updated_at = ? WHERE id = ?`)
}

// Rename replaces the paper's title.
func (s *Store) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("paper title is empty")
	}
	return s.updatePaper(ctx, id, `UPDATE papers SET title = ?, updated_at = ? WHERE id = ?`, title)
}

// Delete removes the paper and its tags.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.execTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM papers WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete paper: %w", err)
		}
		return requireAffected(res)
	})
}

// SetTags replaces the paper's tags with the normalized form of tags.
func (s *Store) SetTags(ctx context.Context, id string, tags []string) error {
	normalized := NormalizeTags(tags)
	return s.execTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE papers SET updated_at = ? WHERE id = ?`, timestamp(s.now()), id)
		if err != nil {
			return fmt.Errorf("touch paper: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM paper_tags WHERE paper_id = ?`, id); err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		return insertTags(ctx, tx, id, normalized)
	})
}

// updatePaper runs a single-row update whose final two placeholders are the
// update timestamp and the paper id.
func (s *Store) updatePaper(ctx context.Context, id, query string, args ...any) error {
	args = append(args, timestamp(s.now()), id)
	return s.execTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update paper: %w", err)
		}
		return requireAffected(res)
	})
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Tags returns the paper's tags in case-insensitive order.
func (s *Store) Tags(ctx context.Context, id string) ([]string, error) {
	paper, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, ErrNotFound
	}
	return paper.Tags, nil
}
