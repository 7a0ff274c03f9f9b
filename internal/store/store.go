// Package store persists report templates. Persistence is outside the
// template core; the server and CLI reach it only through the Store
// interface.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-reportschema/pkg/model"
)

// ErrNotFound is returned when no template has the requested ID.
var ErrNotFound = errors.New("store: template not found")

// Record is a stored template snapshot. Template.ID always equals ID.
type Record struct {
	ID        string         `json:"id"`
	Template  model.Template `json:"template"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ListOptions filters List results. Zero values match everything.
type ListOptions struct {
	ReportType model.ReportType
	ActiveOnly bool
}

// Store defines the operations needed for persisting templates. This allows
// swapping implementations (in-memory vs. SQLite).
type Store interface {
	// Create assigns a new ID and persists t.
	Create(ctx context.Context, t model.Template) (Record, error)

	// Get retrieves a template by ID.
	Get(ctx context.Context, id string) (Record, error)

	// List returns templates ordered by name, then ID.
	List(ctx context.Context, opts ListOptions) ([]Record, error)

	// Update replaces the stored snapshot, keeping ID and CreatedAt.
	Update(ctx context.Context, id string, t model.Template) (Record, error)

	// SetActive flips the activation flag.
	SetActive(ctx context.Context, id string, active bool) (Record, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error

	// Close releases underlying resources.
	Close() error
}

// Option configures a store implementation.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: newUUID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func matches(t model.Template, opts ListOptions) bool {
	if opts.ReportType != "" && t.ReportType != opts.ReportType {
		return false
	}
	if opts.ActiveOnly && !t.IsActive {
		return false
	}
	return true
}
