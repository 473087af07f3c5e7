package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultPublishWorkers = 8

// PublishResult summarizes one publish run.
type PublishResult struct {
	Week   week.Week
	Scores []scoring.TeamScore
}

type ScoringService struct {
	weekRepo   week.Repository
	rosterRepo fantasy.Repository
	statsRepo  playerstats.Repository
	scoreRepo  scoring.Repository
	calculator *scoring.Calculator
	events     EventPublisher
	workers    int
	logger     *logging.Logger
	clock      clockwork.Clock

	locksMu sync.Mutex
	locks   map[int]*sync.Mutex
}

func NewScoringService(
	weekRepo week.Repository,
	rosterRepo fantasy.Repository,
	statsRepo playerstats.Repository,
	scoreRepo scoring.Repository,
	rules scoring.Rules,
	events EventPublisher,
	workers int,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultPublishWorkers
	}

	return &ScoringService{
		weekRepo:   weekRepo,
		rosterRepo: rosterRepo,
		statsRepo:  statsRepo,
		scoreRepo:  scoreRepo,
		calculator: scoring.NewCalculator(rules),
		events:     events,
		workers:    workers,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
		locks:      make(map[int]*sync.Mutex),
	}
}

// PublishWeek scores every roster for a stats-locked week and replaces any
// earlier result for that week. Every breakdown is computed before the
// first write, so a failure leaves the previous publish untouched.
func (s *ScoringService) PublishWeek(ctx context.Context, weekID int) (PublishResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.PublishWeek", attribute.Int("week_id", weekID))
	defer span.End()

	if weekID <= 0 {
		return PublishResult{}, fmt.Errorf("%w: week id must be positive", ErrInvalidInput)
	}

	unlock := s.lockWeek(weekID)
	defer unlock()

	w, exists, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return PublishResult{}, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return PublishResult{}, fmt.Errorf("%w: week=%d", ErrNotFound, weekID)
	}
	if !w.CanPublish() {
		return PublishResult{}, fmt.Errorf("%w: week %d stats are not locked (status=%s)", ErrPrecondition, w.ID, w.Status)
	}

	stats, err := s.statsRepo.GetWeekStats(ctx, w.ID)
	if err != nil {
		return PublishResult{}, fmt.Errorf("get week stats: %w", err)
	}

	rosters, err := s.rosterRepo.List(ctx)
	if err != nil {
		return PublishResult{}, fmt.Errorf("list rosters: %w", err)
	}

	now := s.clock.Now().UTC()
	scores, err := s.computeScores(ctx, w.ID, rosters, stats, now)
	if err != nil {
		return PublishResult{}, err
	}

	if err := s.scoreRepo.ReplaceWeekScores(ctx, w.ID, scores); err != nil {
		return PublishResult{}, fmt.Errorf("replace week scores: %w", err)
	}

	if err := w.MarkScoresPublished(now); err != nil {
		return PublishResult{}, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	if err := s.weekRepo.Update(ctx, w); err != nil {
		return PublishResult{}, fmt.Errorf("mark week published: %w", err)
	}

	if s.events != nil {
		event := ScoresPublishedEvent{WeekID: w.ID, TeamsScored: len(scores), PublishedAt: now}
		dedupID := "week-" + strconv.Itoa(w.ID) + "-" + strconv.FormatInt(now.UnixNano(), 10)
		if err := s.events.Publish(ctx, SubjectScoresPublished, event, dedupID); err != nil {
			s.logger.WarnContext(ctx, "publish event failed", "subject", SubjectScoresPublished, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "week scores published",
		"week_id", w.ID,
		"teams_scored", len(scores),
		"player_stats", len(stats),
	)

	return PublishResult{Week: w, Scores: scores}, nil
}

func (s *ScoringService) computeScores(
	ctx context.Context,
	weekID int,
	rosters []fantasy.Roster,
	stats playerstats.WeekStats,
	now time.Time,
) ([]scoring.TeamScore, error) {
	scores := make([]scoring.TeamScore, len(rosters))
	errs := make([]error, len(rosters))

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, roster := range rosters {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			breakdown, err := s.calculator.CalculateTeamScore(roster, stats)
			if err != nil {
				errs[i] = err
				return
			}
			scores[i] = scoring.TeamScore{
				WeekID:      weekID,
				RosterID:    roster.ID,
				UserID:      roster.UserID,
				RosterName:  roster.Name,
				TotalPoints: scoring.TotalPoints(breakdown),
				Breakdown:   breakdown,
				CreatedAt:   now,
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := errors.Join(errs...); err != nil {
		s.logger.ErrorContext(ctx, "week scoring aborted", "week_id", weekID, "error", err)
		if errors.Is(err, fantasy.ErrIncompleteRoster) {
			return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
		return nil, fmt.Errorf("calculate scores: %w", err)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].TotalPoints != scores[j].TotalPoints {
			return scores[i].TotalPoints > scores[j].TotalPoints
		}
		return scores[i].RosterName < scores[j].RosterName
	})
	return scores, nil
}

// ListRosterScores returns the manager's published weekly scores, newest
// first.
func (s *ScoringService) ListRosterScores(ctx context.Context, userID string) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListRosterScores")
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	roster, exists, err := s.rosterRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get roster by user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: roster for user=%s", ErrNotFound, userID)
	}

	scores, err := s.scoreRepo.ListByRoster(ctx, roster.ID)
	if err != nil {
		return nil, fmt.Errorf("list roster scores: %w", err)
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].WeekID > scores[j].WeekID })
	return scores, nil
}

func (s *ScoringService) ListWeekScores(ctx context.Context, weekID int) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListWeekScores", attribute.Int("week_id", weekID))
	defer span.End()

	w, exists, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: week=%d", ErrNotFound, weekID)
	}
	if w.Status != week.StatusScoresPublished {
		return nil, fmt.Errorf("%w: week %d scores are not published", ErrPrecondition, w.ID)
	}

	scores, err := s.scoreRepo.ListByWeek(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list week scores: %w", err)
	}
	return scores, nil
}

func (s *ScoringService) lockWeek(weekID int) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[weekID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[weekID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
