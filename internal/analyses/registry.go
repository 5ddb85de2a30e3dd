package analyses

import (
	"context"
	"sort"
	"sync"
)

// Registry is an in-memory index of analysis records.
type Registry struct {
	mu   sync.RWMutex
	data map[string]Record
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{data: make(map[string]Record)}
}

// Create stores a record.
func (r *Registry) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = rec
	return nil
}

// Get returns a record by ID.
func (r *Registry) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List returns records newest first, honoring limit/offset.
func (r *Registry) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	recs := make([]Record, 0, len(r.data))
	for _, rec := range r.data {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	if offset >= len(recs) {
		return []Record{}, nil
	}
	end := len(recs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return recs[offset:end], nil
}
