package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type WeekService struct {
	weekRepo week.Repository
	logger   *logging.Logger
	clock    clockwork.Clock
}

func NewWeekService(weekRepo week.Repository, logger *logging.Logger) *WeekService {
	if logger == nil {
		logger = logging.Default()
	}

	return &WeekService{
		weekRepo: weekRepo,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
	}
}

// Create starts the next sequential week in draft.
func (s *WeekService) Create(ctx context.Context) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Create")
	defer span.End()

	latest, exists, err := s.weekRepo.Latest(ctx)
	if err != nil {
		return week.Week{}, fmt.Errorf("get latest week: %w", err)
	}
	if exists && !latest.CanPublish() {
		return week.Week{}, fmt.Errorf("%w: week %d stats are not locked yet", ErrPrecondition, latest.ID)
	}

	now := s.clock.Now().UTC()
	next := week.Week{
		ID:        latest.ID + 1,
		Status:    week.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.weekRepo.Create(ctx, next); err != nil {
		if errors.Is(err, week.ErrWeekExists) {
			return week.Week{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return week.Week{}, fmt.Errorf("create week: %w", err)
	}

	s.logger.InfoContext(ctx, "week created", "week_id", next.ID)
	return next, nil
}

// Current returns the latest week with its status resolved against the
// clock.
func (s *WeekService) Current(ctx context.Context) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Current")
	defer span.End()

	current, exists, err := s.weekRepo.Latest(ctx)
	if err != nil {
		return week.Week{}, fmt.Errorf("get latest week: %w", err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: no week has been created", ErrNotFound)
	}
	current.Status = current.EffectiveStatus(s.clock.Now().UTC())
	return current, nil
}

func (s *WeekService) Get(ctx context.Context, weekID int) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Get")
	defer span.End()

	return s.load(ctx, weekID)
}

func (s *WeekService) List(ctx context.Context) ([]week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.List")
	defer span.End()

	items, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	now := s.clock.Now().UTC()
	for i := range items {
		items[i].Status = items[i].EffectiveStatus(now)
	}
	return items, nil
}

func (s *WeekService) OpenTransfers(ctx context.Context, weekID int, closesAt *time.Time) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.OpenTransfers", attribute.Int("week_id", weekID))
	defer span.End()

	return s.transition(ctx, weekID, "transfers opened", func(w *week.Week, now time.Time) error {
		return w.OpenTransfers(closesAt, now)
	})
}

func (s *WeekService) CloseTransfers(ctx context.Context, weekID int) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.CloseTransfers", attribute.Int("week_id", weekID))
	defer span.End()

	return s.transition(ctx, weekID, "transfers closed", func(w *week.Week, now time.Time) error {
		return w.CloseTransfers(now)
	})
}

func (s *WeekService) LockStats(ctx context.Context, weekID int) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.LockStats", attribute.Int("week_id", weekID))
	defer span.End()

	return s.transition(ctx, weekID, "week stats locked", func(w *week.Week, now time.Time) error {
		return w.LockStats(now)
	})
}

func (s *WeekService) transition(ctx context.Context, weekID int, message string, apply func(*week.Week, time.Time) error) (week.Week, error) {
	w, err := s.load(ctx, weekID)
	if err != nil {
		return week.Week{}, err
	}

	from := w.Status
	if err := apply(&w, s.clock.Now().UTC()); err != nil {
		if errors.Is(err, week.ErrInvalidTransition) {
			return week.Week{}, fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
		return week.Week{}, err
	}
	if err := s.weekRepo.Update(ctx, w); err != nil {
		return week.Week{}, fmt.Errorf("update week: %w", err)
	}

	s.logger.InfoContext(ctx, message,
		"week_id", w.ID,
		"from", string(from),
		"to", string(w.Status),
	)
	return w, nil
}

func (s *WeekService) load(ctx context.Context, weekID int) (week.Week, error) {
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
