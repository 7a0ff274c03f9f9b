package store

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-reportschema/pkg/model"
)

// MemoryStore is an in-process Store used by tests and the CLI.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	opts    options
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		opts:    resolveOptions(opts),
	}
}

func (s *MemoryStore) Create(ctx context.Context, t model.Template) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	id := s.opts.newID()
	t = t.Clone()
	t.ID = id
	rec := Record{ID: id, Template: t, CreatedAt: now, UpdatedAt: now}
	s.records[id] = rec
	return cloneRecord(rec), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		if matches(rec.Template, opts) {
			out = append(out, cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Template.Name != out[j].Template.Name {
			return out[i].Template.Name < out[j].Template.Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, t model.Template) (Record, error) {
	return s.modify(ctx, id, func(rec *Record) {
		t = t.Clone()
		t.ID = id
		rec.Template = t
	})
}

func (s *MemoryStore) SetActive(ctx context.Context, id string, active bool) (Record, error) {
	return s.modify(ctx, id, func(rec *Record) {
		rec.Template.IsActive = active
	})
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) modify(ctx context.Context, id string, fn func(*Record)) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	fn(&rec)
	rec.UpdatedAt = s.opts.now()
	s.records[id] = rec
	return cloneRecord(rec), nil
}

func cloneRecord(rec Record) Record {
	rec.Template = rec.Template.Clone()
	return rec
}
