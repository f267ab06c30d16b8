package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"paperdesk/internal/duplicate"
	"paperdesk/internal/logging"
	"paperdesk/internal/papers"
	"paperdesk/internal/papertitle"
)

// ErrPaperNotFound is returned when an action names an unknown paper.
var ErrPaperNotFound = errors.New("past paper not found")

// Status is the result of an approval attempt.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusDuplicate Status = "duplicate"
)

// Store is the persistence the service needs.
type Store interface {
	GetByID(ctx context.Context, id string) (*papers.Paper, error)
	ListPending(ctx context.Context) ([]*papers.Paper, error)
	MarkCleared(ctx context.Context, id string) error
	Rename(ctx context.Context, id, title string) error
	SetTags(ctx context.Context, id string, tags []string) error
	Delete(ctx context.Context, id string) error
}

// Checker decides whether a paper duplicates a stored one.
type Checker interface {
	Check(ctx context.Context, rec duplicate.Record) (duplicate.Result, error)
}

// ApproveOptions tunes Approve.
type ApproveOptions struct {
	// AllowDuplicate skips the duplicate check.
	AllowDuplicate bool
}

// Outcome reports an approval attempt.
type Outcome struct {
	Status         Status           `json:"status"`
	DuplicateID    string           `json:"duplicate_id,omitempty"`
	DuplicateTitle string           `json:"duplicate_title,omitempty"`
	Reason         duplicate.Reason `json:"reason,omitempty"`
}

// Service performs moderator actions.
type Service struct {
	store   Store
	checker Checker
	logger  *slog.Logger
}

// NewService wires a Service. A nil logger discards output.
func NewService(store Store, checker Checker, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		checker: checker,
		logger:  logging.NewComponentLogger(logger, "moderation"),
	}
}

// Pending lists papers awaiting moderation, newest first.
func (s *Service) Pending(ctx context.Context) ([]*papers.Paper, error) {
	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending papers: %w", err)
	}
	return pending, nil
}

// Approve clears the paper unless it duplicates a stored paper. A duplicate
// leaves the paper untouched and is reported in the outcome, not as an error.
func (s *Service) Approve(ctx context.Context, id string, opts ApproveOptions) (Outcome, error) {
	paper, err := s.load(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	logger := s.logger.With(logging.String(logging.FieldPaperID, paper.ID))

	if !opts.AllowDuplicate {
		if s.checker == nil {
			return Outcome{}, errors.New("duplicate checker not configured")
		}
		result, err := s.checker.Check(ctx, paper.Record())
		if err != nil {
			logger.Error("duplicate check failed", logging.Error(err))
			return Outcome{}, fmt.Errorf("duplicate check: %w", err)
		}
		if result.Duplicate {
			logger.Info("approval blocked by duplicate",
				logging.String("duplicate_id", result.MatchedID),
				logging.String("reason", string(result.Reason)),
			)
			return Outcome{
				Status:         StatusDuplicate,
				DuplicateID:    result.MatchedID,
				DuplicateTitle: result.MatchedTitle,
				Reason:         result.Reason,
			}, nil
		}
	}

	if err := s.store.MarkCleared(ctx, paper.ID); err != nil {
		return Outcome{}, s.mutationError("approve", err)
	}
	logger.Info("paper approved", logging.Bool("duplicate_override", opts.AllowDuplicate))
	return Outcome{Status: StatusApproved}, nil
}

// Rename replaces the paper's title.
func (s *Service) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title must not be blank")
	}
	if err := s.store.Rename(ctx, id, title); err != nil {
		return s.mutationError("rename", err)
	}
	s.logger.Info("paper renamed", logging.String(logging.FieldPaperID, id), logging.String("title", title))
	return nil
}

// Retitle rewrites the paper's title into the canonical format. It returns
// the resulting title and whether it changed; titles without a course name
// and code are left alone.
func (s *Service) Retitle(ctx context.Context, id string) (string, bool, error) {
	paper, err := s.load(ctx, id)
	if err != nil {
		return "", false, err
	}
	canonical, ok := papertitle.Canonical(papertitle.Parse(paper.Title))
	if !ok || canonical == paper.Title {
		return paper.Title, false, nil
	}
	if err := s.store.Rename(ctx, paper.ID, canonical); err != nil {
		return "", false, s.mutationError("retitle", err)
	}
	s.logger.Info("paper retitled",
		logging.String(logging.FieldPaperID, paper.ID),
		logging.String("from", paper.Title),
		logging.String("to", canonical),
	)
	return canonical, true, nil
}

// Tag replaces the paper's tags.
func (s *Service) Tag(ctx context.Context, id string, tags []string) ([]string, error) {
	normalized := papers.NormalizeTags(tags)
	if err := s.store.SetTags(ctx, id, normalized); err != nil {
		return nil, s.mutationError("tag", err)
	}
	s.logger.Info("paper tagged", logging.String(logging.FieldPaperID, id), logging.Int("tags", len(normalized)))
	return normalized, nil
}

// Delete removes the paper.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mutationError("delete", err)
	}
	s.logger.Info("paper deleted", logging.String(logging.FieldPaperID, id))
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*papers.Paper, error) {
	paper, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load paper %s: %w", id, err)
	}
	if paper == nil {
		return nil, fmt.Errorf("%w: %s", ErrPaperNotFound, id)
	}
	return paper, nil
}

func (s *Service) mutationError(action string, err error) error {
	if errors.Is(err, papers.ErrNotFound) {
		return fmt.Errorf("%s: %w", action, ErrPaperNotFound)
	}
	return fmt.Errorf("%s: %w", action, err)
}
