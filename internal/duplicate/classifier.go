package duplicate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"paperdesk/internal/logging"
	"paperdesk/internal/papertitle"
)

// DefaultCandidateLimit caps how many pre-filtered candidates are compared.
// A true duplicate beyond the cap is missed; this keeps approval cheap.
const DefaultCandidateLimit = 50

// Reason explains why a record was flagged.
type Reason string

const (
	ReasonFile     Reason = "file"
	ReasonMetadata Reason = "metadata"
	ReasonTitle    Reason = "title"
)

// Record is a past paper as seen by the classifier.
type Record struct {
	ID      string
	Title   string
	FileRef string
	Tags    []string
}

// Result reports the outcome of a duplicate check.
type Result struct {
	Duplicate    bool
	MatchedID    string
	MatchedTitle string
	Reason       Reason
}

func matched(rec Record, reason Reason) Result {
	return Result{Duplicate: true, MatchedID: rec.ID, MatchedTitle: rec.Title, Reason: reason}
}

// Source is the read-only candidate store consulted during a check. Every
// method excludes the record with excludeID from its results.
type Source interface {
	// FindByFileRef returns a record sharing the stored file, or nil.
	FindByFileRef(ctx context.Context, fileRef, excludeID string) (*Record, error)
	// FindByTitle returns a record whose title equals title ignoring case, or nil.
	FindByTitle(ctx context.Context, title, excludeID string) (*Record, error)
	// SearchCourseCode returns up to limit records whose title or tags contain
	// code ignoring case, in a stable order.
	SearchCourseCode(ctx context.Context, code, excludeID string, limit int) ([]Record, error)
}

// Classifier decides whether an upload re-submits an existing paper.
type Classifier struct {
	source Source
	limit  int
	logger *slog.Logger
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithCandidateLimit overrides DefaultCandidateLimit. Non-positive values are ignored.
func WithCandidateLimit(limit int) Option {
	return func(c *Classifier) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithLogger attaches a logger for match diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Classifier over source.
func New(source Source, opts ...Option) *Classifier {
	c := &Classifier{source: source, limit: DefaultCandidateLimit, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logging.String("component", "duplicate"))
	return c
}

// Check compares rec against stored papers. Candidates are examined in the
// order the source returns them and the first compatible one is reported.
// Source failures are returned as-is; no fallback decision is made.
func (c *Classifier) Check(ctx context.Context, rec Record) (Result, error) {
	if c == nil || c.source == nil {
		return Result{}, errors.New("duplicate classifier has no candidate source")
	}

	if ref := strings.TrimSpace(rec.FileRef); ref != "" {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		found, err := c.source.FindByFileRef(ctx, ref, rec.ID)
		if err != nil {
			return Result{}, fmt.Errorf("find by file reference: %w", err)
		}
		if found != nil {
			c.logger.Debug("file reference match", logging.String("paper_id", rec.ID), logging.String("match_id", found.ID))
			return matched(*found, ReasonFile), nil
		}
	}

	parsed := papertitle.Parse(rec.Title)
	code := papertitle.NormalizeCourseCode(parsed.CourseCode)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if code == "" {
		found, err := c.source.FindByTitle(ctx, strings.TrimSpace(rec.Title), rec.ID)
		if err != nil {
			return Result{}, fmt.Errorf("find by title: %w", err)
		}
		if found != nil {
			return matched(*found, ReasonTitle), nil
		}
		return Result{}, nil
	}

	candidates, err := c.source.SearchCourseCode(ctx, code, rec.ID, c.limit)
	if err != nil {
		return Result{}, fmt.Errorf("search candidates for %s: %w", code, err)
	}
	if len(candidates) > c.limit {
		candidates = candidates[:c.limit]
	}
	for _, candidate := range candidates {
		if metadataMatch(parsed, papertitle.Parse(candidate.Title)) {
			c.logger.Debug("metadata match",
				logging.String("paper_id", rec.ID),
				logging.String("match_id", candidate.ID),
				logging.String("course_code", code),
				logging.Int("candidates", len(candidates)),
			)
			return matched(candidate, ReasonMetadata), nil
		}
	}
	return Result{}, nil
}

// IsDuplicate reports whether a and b denote the same paper: the same stored
// file, or compatible structured metadata. When a has no course code only a
// case-insensitive title match counts.
func IsDuplicate(a, b Record) bool {
	if ref := strings.TrimSpace(a.FileRef); ref != "" && ref == strings.TrimSpace(b.FileRef) {
		return true
	}
	pa := papertitle.Parse(a.Title)
	if pa.CourseCode == "" {
		return strings.EqualFold(strings.TrimSpace(a.Title), strings.TrimSpace(b.Title))
	}
	return metadataMatch(pa, papertitle.Parse(b.Title))
}

// metadataMatch applies the course code gate followed by the exam type, slot
// and year compatibility checks.
func metadataMatch(a, b papertitle.Parsed) bool {
	codeA := papertitle.NormalizeCourseCode(a.CourseCode)
	if codeA == "" || codeA != papertitle.NormalizeCourseCode(b.CourseCode) {
		return false
	}
	if !compatible(a.ExamType, b.ExamType) || !compatible(a.Slot, b.Slot) {
		return false
	}
	return yearCompatible(a, b)
}

// compatible treats an absent value as a wildcard.
func compatible(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}

type yearRange struct {
	start, end int
}

func rangeOf(p papertitle.Parsed) (yearRange, bool) {
	if start, end, ok := strings.Cut(p.AcademicYear, "-"); ok {
		s, errS := strconv.Atoi(start)
		e, errE := strconv.Atoi(end)
		if errS == nil && errE == nil {
			return yearRange{s, e}, true
		}
	}
	if year, ok := bareYear(p); ok {
		return yearRange{year, year}, true
	}
	return yearRange{}, false
}

func bareYear(p papertitle.Parsed) (int, bool) {
	if p.Year == "" {
		return 0, false
	}
	year, err := strconv.Atoi(p.Year)
	if err != nil {
		return 0, false
	}
	return year, true
}

// yearCompatible compares year information range-aware. rangeOf promotes a
// bare year to the single-year range {Y, Y}, so any two titles that both
// carry a year compare full ranges: "2022-2023" and "2022" are not
// compatible. Titles without any year information are compatible with
// everything.
func yearCompatible(a, b papertitle.Parsed) bool {
	rangeA, okA := rangeOf(a)
	rangeB, okB := rangeOf(b)
	if !okA || !okB {
		return true
	}
	return rangeA == rangeB
}
