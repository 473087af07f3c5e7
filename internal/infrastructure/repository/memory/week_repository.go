package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
)

type WeekRepository struct {
	mu    sync.RWMutex
	items map[int]week.Week
}

func NewWeekRepository() *WeekRepository {
	return &WeekRepository{items: make(map[int]week.Week)}
}

func (r *WeekRepository) Create(_ context.Context, w week.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[w.ID]; ok {
		return fmt.Errorf("%w: id=%d", week.ErrWeekExists, w.ID)
	}
	r.items[w.ID] = w.Clone()
	return nil
}

func (r *WeekRepository) GetByID(_ context.Context, id int) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.items[id]
	if !ok {
		return week.Week{}, false, nil
	}
	return w.Clone(), true, nil
}

func (r *WeekRepository) Latest(_ context.Context) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest week.Week
		found  bool
	)
	for id, w := range r.items {
		if !found || id > latest.ID {
			latest, found = w, true
		}
	}
	if !found {
		return week.Week{}, false, nil
	}
	return latest.Clone(), true, nil
}

func (r *WeekRepository) List(_ context.Context) ([]week.Week, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]week.Week, 0, len(r.items))
	for _, w := range r.items {
		out = append(out, w.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// WithWeek holds the read lock while fn runs; fn must not call back into
// the repository.
func (r *WeekRepository) WithWeek(ctx context.Context, id int, fn func(ctx context.Context, w week.Week) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", week.ErrWeekNotFound, id)
	}
	return fn(ctx, w.Clone())
}

func (r *WeekRepository) Update(_ context.Context, w week.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[w.ID]; !ok {
		return fmt.Errorf("%w: id=%d", week.ErrWeekNotFound, w.ID)
	}
	r.items[w.ID] = w.Clone()
	return nil
}
