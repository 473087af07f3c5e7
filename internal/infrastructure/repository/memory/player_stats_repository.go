package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu     sync.RWMutex
	byWeek map[int]playerstats.WeekStats
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{byWeek: make(map[int]playerstats.WeekStats)}
}

func (r *PlayerStatsRepository) UpsertWeekStats(_ context.Context, weekID int, stats []playerstats.PlayerWeekStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byWeek[weekID]
	if !ok {
		current = make(playerstats.WeekStats, len(stats))
		r.byWeek[weekID] = current
	}
	for _, s := range stats {
		current[s.PlayerID] = s
	}
	return nil
}

func (r *PlayerStatsRepository) GetWeekStats(_ context.Context, weekID int) (playerstats.WeekStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current := r.byWeek[weekID]
	out := make(playerstats.WeekStats, len(current))
	for id, s := range current {
		out[id] = s
	}
	return out, nil
}
