package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type StatsService struct {
	weekRepo     week.Repository
	playerRepo   player.Repository
	statsRepo    playerstats.Repository
	seriesLength int
	logger       *logging.Logger
}

func NewStatsService(
	weekRepo week.Repository,
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	seriesLength int,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsService{
		weekRepo:     weekRepo,
		playerRepo:   playerRepo,
		statsRepo:    statsRepo,
		seriesLength: seriesLength,
		logger:       logger,
	}
}

// UpsertWeekStats stores resolved per-player stats for a week that has not
// been locked yet. Every record must name a known player. The status check
// and the write share the week's guard, so a concurrent LockStats lands
// either before the check or after the write.
func (s *StatsService) UpsertWeekStats(ctx context.Context, weekID int, stats []playerstats.PlayerWeekStats) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.UpsertWeekStats", attribute.Int("week_id", weekID))
	defer span.End()

	if len(stats) == 0 {
		return fmt.Errorf("%w: stats are required", ErrInvalidInput)
	}

	w, err := s.loadWeek(ctx, weekID)
	if err != nil {
		return err
	}
	if !w.StatsEditable() {
		return fmt.Errorf("%w: stats for week %d are locked", ErrPrecondition, w.ID)
	}

	seen := make(map[string]struct{}, len(stats))
	playerIDs := make([]string, 0, len(stats))
	for i := range stats {
		stats[i].PlayerID = strings.TrimSpace(stats[i].PlayerID)
		if err := stats[i].Validate(s.seriesLength); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if _, ok := seen[stats[i].PlayerID]; ok {
			return fmt.Errorf("%w: duplicate stats for player=%s", ErrInvalidInput, stats[i].PlayerID)
		}
		seen[stats[i].PlayerID] = struct{}{}
		playerIDs = append(playerIDs, stats[i].PlayerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("get players by ids: %w", err)
	}
	if len(players) != len(playerIDs) {
		known := make(map[string]struct{}, len(players))
		for _, p := range players {
			known[p.ID] = struct{}{}
		}
		for _, id := range playerIDs {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("%w: unknown player=%s", ErrInvalidInput, id)
			}
		}
	}

	err = s.weekRepo.WithWeek(ctx, w.ID, func(ctx context.Context, current week.Week) error {
		if !current.StatsEditable() {
			return fmt.Errorf("%w: stats for week %d are locked", ErrPrecondition, current.ID)
		}
		if err := s.statsRepo.UpsertWeekStats(ctx, current.ID, stats); err != nil {
			return fmt.Errorf("upsert week stats: %w", err)
		}
		return nil
	})
	switch {
	case errors.Is(err, week.ErrWeekNotFound):
		return fmt.Errorf("%w: week=%d", ErrNotFound, w.ID)
	case err != nil:
		return err
	}

	s.logger.InfoContext(ctx, "week stats saved", "week_id", w.ID, "player_count", len(stats))
	return nil
}

func (s *StatsService) GetWeekStats(ctx context.Context, weekID int) (playerstats.WeekStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetWeekStats", attribute.Int("week_id", weekID))
	defer span.End()

	w, err := s.loadWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.GetWeekStats(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("get week stats: %w", err)
	}
	return stats, nil
}

func (s *StatsService) loadWeek(ctx context.Context, weekID int) (week.Week, error) {
	if weekID <= 0 {
		return week.Week{}, fmt.Errorf("%w: week id must be positive", ErrInvalidInput)
	}
	w, exists, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return week.Week{}, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: week=%d", ErrNotFound, weekID)
	}
	return w, nil
}
