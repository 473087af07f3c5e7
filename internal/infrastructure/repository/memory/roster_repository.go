package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
)

// RosterRepository serializes every write behind one mutex, so Mutate is
// an atomic read-modify-write.
type RosterRepository struct {
	mu     sync.RWMutex
	items  map[string]fantasy.Roster
	byUser map[string]string
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		items:  make(map[string]fantasy.Roster),
		byUser: make(map[string]string),
	}
}

func (r *RosterRepository) GetByID(_ context.Context, rosterID string) (fantasy.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster, ok := r.items[rosterID]
	if !ok {
		return fantasy.Roster{}, false, nil
	}
	return roster.Clone(), true, nil
}

func (r *RosterRepository) GetByUser(_ context.Context, userID string) (fantasy.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rosterID, ok := r.byUser[userID]
	if !ok {
		return fantasy.Roster{}, false, nil
	}
	return r.items[rosterID].Clone(), true, nil
}

func (r *RosterRepository) List(_ context.Context) ([]fantasy.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Roster, 0, len(r.items))
	for _, roster := range r.items {
		out = append(out, roster.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) Create(_ context.Context, roster fantasy.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[roster.UserID]; ok {
		return fmt.Errorf("%w: user=%s", fantasy.ErrRosterExists, roster.UserID)
	}
	if _, ok := r.items[roster.ID]; ok {
		return fmt.Errorf("%w: id=%s", fantasy.ErrRosterExists, roster.ID)
	}

	r.items[roster.ID] = roster.Clone()
	r.byUser[roster.UserID] = roster.ID
	return nil
}

func (r *RosterRepository) Mutate(ctx context.Context, rosterID string, fn fantasy.MutateFunc) (fantasy.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[rosterID]
	if !ok {
		return fantasy.Roster{}, fmt.Errorf("%w: id=%s", fantasy.ErrRosterNotFound, rosterID)
	}

	working := current.Clone()
	if err := fn(ctx, &working); err != nil {
		return fantasy.Roster{}, err
	}

	r.items[rosterID] = working.Clone()
	return working, nil
}
