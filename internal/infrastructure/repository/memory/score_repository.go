package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
)

type ScoreRepository struct {
	mu     sync.RWMutex
	byWeek map[int][]scoring.TeamScore
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{byWeek: make(map[int][]scoring.TeamScore)}
}

func (r *ScoreRepository) ReplaceWeekScores(_ context.Context, weekID int, scores []scoring.TeamScore) error {
	replacement := make([]scoring.TeamScore, 0, len(scores))
	for _, s := range scores {
		replacement = append(replacement, s.Clone())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byWeek[weekID] = replacement
	return nil
}

func (r *ScoreRepository) ListByWeek(_ context.Context, weekID int) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scores := r.byWeek[weekID]
	out := make([]scoring.TeamScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (r *ScoreRepository) ListByRoster(_ context.Context, rosterID string) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.TeamScore, 0)
	for _, scores := range r.byWeek {
		for _, s := range scores {
			if s.RosterID == rosterID {
				out = append(out, s.Clone())
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekID > out[j].WeekID })
	return out, nil
}
