// Package report persists analysis results so earlier runs can be
// listed and reopened.
//
// A [Report] captures one analysis: the inputs (package name, repo,
// mode, filter), which manifest produced the dependency list, and the
// reported specifiers. The [Store] interface has two backends:
//   - file: one JSON file per report in a config directory (CLI default)
//   - mongo: a shared collection for fleets that want central history
//
// # Usage
//
//	store, err := report.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	r := report.New("requests", "https://github.com/psf/requests", "remote", "", "setup-cfg", specs)
//	if err := store.Save(ctx, r); err != nil {
//	    return err
//	}
//
//	recent, err := store.List(ctx, 20)
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Report records the outcome of a single dependency analysis.
type Report struct {
	ID         string    `json:"id" bson:"_id"`
	Package    string    `json:"package" bson:"package"`
	Repo       string    `json:"repo" bson:"repo"`
	Mode       string    `json:"mode" bson:"mode"`
	Filter     string    `json:"filter,omitempty" bson:"filter,omitempty"`
	Source     string    `json:"source,omitempty" bson:"source,omitempty"`
	Specifiers []string  `json:"specifiers" bson:"specifiers"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// New creates a Report with a fresh ID and the current time.
// Source names the manifest kind that produced the specifiers and may be
// empty when no manifest matched.
func New(pkg, repo, mode, filter, source string, specifiers []string) *Report {
	return &Report{
		ID:         uuid.NewString(),
		Package:    pkg,
		Repo:       repo,
		Mode:       mode,
		Filter:     filter,
		Source:     source,
		Specifiers: specifiers,
		CreatedAt:  time.Now(),
	}
}

// Store is the interface for report storage backends.
type Store interface {
	// Save persists a report. Saving an existing ID overwrites it.
	Save(ctx context.Context, r *Report) error

	// Get retrieves a report by ID.
	// Returns nil, nil if the report doesn't exist.
	Get(ctx context.Context, id string) (*Report, error)

	// List returns reports sorted newest first.
	// A limit <= 0 returns all reports.
	List(ctx context.Context, limit int) ([]*Report, error)

	// Delete removes a report. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes all reports.
	Clear(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
