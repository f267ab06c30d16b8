package papers

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"paperdesk/internal/papertitle"
)

const tagSeparator = "\x1f"

const paperColumns = `p.id, p.title, p.file_ref, p.source_path, p.cleared, p.created_at, p.updated_at,
    (SELECT group_concat(t.name, char(31)) FROM paper_tags t WHERE t.paper_id = p.id)`

func scanPaper(scanner interface{ Scan(dest ...any) error }) (*Paper, error) {
	var (
		id         string
		title      string
		fileRef    sql.NullString
		sourcePath sql.NullString
		cleared    int64
		createdRaw string
		updatedRaw string
		tags       sql.NullString
	)
	if err := scanner.Scan(&id, &title, &fileRef, &sourcePath, &cleared, &createdRaw, &updatedRaw, &tags); err != nil {
		return nil, err
	}

	paper := &Paper{
		ID:         id,
		Title:      title,
		FileRef:    fileRef.String,
		SourcePath: sourcePath.String,
		Cleared:    cleared != 0,
		Tags:       splitTags(tags.String),
		CreatedAt:  parseTimestamp(createdRaw),
		UpdatedAt:  parseTimestamp(updatedRaw),
	}
	return paper, nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	tags := strings.Split(raw, tagSeparator)
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

// NormalizeTags trims tags, canonicalizes course codes, and drops blanks and
// case-insensitive repeats while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.Join(strings.Fields(tag), " ")
		if tag == "" {
			continue
		}
		if papertitle.IsCourseCode(tag) {
			tag = papertitle.NormalizeCourseCode(tag)
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
