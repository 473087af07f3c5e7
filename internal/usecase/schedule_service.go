package usecase

import (
	"context"

	"github.com/riskibarqy/rl-fantasy/internal/domain/schedule"
	"github.com/riskibarqy/rl-fantasy/internal/platform/cache"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

const scheduleResultsCacheKey = "schedule:results"

// ResultProvider fetches finished match results from an outside source.
type ResultProvider interface {
	FetchResults(ctx context.Context) ([]schedule.Result, error)
}

type ScheduleService struct {
	provider ResultProvider
	cache    *cache.Store
	logger   *logging.Logger
}

// NewScheduleService accepts a nil provider; the calendar is then served
// without scores.
func NewScheduleService(provider ResultProvider, store *cache.Store, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		provider: provider,
		cache:    store,
		logger:   logger,
	}
}

// Rounds returns the season calendar with every known score filled in. A
// provider failure degrades to the bare calendar.
func (s *ScheduleService) Rounds(ctx context.Context) ([]schedule.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Rounds")
	defer span.End()

	template := schedule.SeasonTemplate()
	if s.provider == nil {
		return template, nil
	}

	results, err := s.results(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "match results unavailable, serving calendar only", "error", err)
		return template, nil
	}

	return schedule.Merge(template, results), nil
}

func (s *ScheduleService) results(ctx context.Context) ([]schedule.Result, error) {
	if s.cache == nil {
		return s.provider.FetchResults(ctx)
	}

	return cache.Load(ctx, s.cache, scheduleResultsCacheKey, s.provider.FetchResults)
}
