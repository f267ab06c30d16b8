package papers

import (
	"errors"
	"time"

	"paperdesk/internal/duplicate"
)

// ErrNotFound is returned when a mutation targets a paper that does not exist.
var ErrNotFound = errors.New("paper not found")

// Paper is a stored past paper upload.
type Paper struct {
	ID         string
	Title      string
	FileRef    string
	SourcePath string
	Cleared    bool
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPaper describes an upload to insert.
type NewPaper struct {
	Title      string
	FileRef    string
	SourcePath string
	Tags       []string
}

// Record converts the paper into the classifier's view of it.
func (p *Paper) Record() duplicate.Record {
	if p == nil {
		return duplicate.Record{}
	}
	return duplicate.Record{
		ID:      p.ID,
		Title:   p.Title,
		FileRef: p.FileRef,
		Tags:    append([]string(nil), p.Tags...),
	}
}

// Status returns a short moderation label.
func (p *Paper) Status() string {
	if p != nil && p.Cleared {
		return "cleared"
	}
	return "pending"
}
