package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const leaderboardLoadConcurrency = 4

// LeaderboardEntry is one roster's season standing.
type LeaderboardEntry struct {
	Rank           int
	RosterID       string
	UserID         string
	RosterName     string
	TotalPoints    int
	WeeksScored    int
	LastWeekPoints int
}

type LeaderboardService struct {
	weekRepo  week.Repository
	scoreRepo scoring.Repository
	logger    *logging.Logger
}

func NewLeaderboardService(weekRepo week.Repository, scoreRepo scoring.Repository, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		weekRepo:  weekRepo,
		scoreRepo: scoreRepo,
		logger:    logger,
	}
}

// Leaderboard sums every published week. Ties share a rank and the next
// rank skips, so two rosters on 300 are both 1st and the next is 3rd.
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	weeks, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}

	published := make([]int, 0, len(weeks))
	lastWeekID := 0
	for _, w := range weeks {
		if w.Status != week.StatusScoresPublished {
			continue
		}
		published = append(published, w.ID)
		if w.ID > lastWeekID {
			lastWeekID = w.ID
		}
	}
	if len(published) == 0 {
		return []LeaderboardEntry{}, nil
	}

	loaders := pool.NewWithResults[[]scoring.TeamScore]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(leaderboardLoadConcurrency)
	for _, weekID := range published {
		loaders.Go(func(ctx context.Context) ([]scoring.TeamScore, error) {
			scores, err := s.scoreRepo.ListByWeek(ctx, weekID)
			if err != nil {
				return nil, fmt.Errorf("list scores week=%d: %w", weekID, err)
			}
			return scores, nil
		})
	}
	perWeek, err := loaders.Wait()
	if err != nil {
		return nil, err
	}

	byRoster := make(map[string]*LeaderboardEntry)
	for _, scores := range perWeek {
		for _, score := range scores {
			entry, ok := byRoster[score.RosterID]
			if !ok {
				entry = &LeaderboardEntry{RosterID: score.RosterID, UserID: score.UserID}
				byRoster[score.RosterID] = entry
			}
			entry.TotalPoints += score.TotalPoints
			entry.WeeksScored++
			if score.WeekID == lastWeekID {
				entry.LastWeekPoints = score.TotalPoints
				entry.RosterName = score.RosterName
			} else if entry.RosterName == "" {
				entry.RosterName = score.RosterName
			}
		}
	}

	entries := make([]LeaderboardEntry, 0, len(byRoster))
	for _, entry := range byRoster {
		entries = append(entries, *entry)
	}
	RankLeaderboard(entries)

	s.logger.DebugContext(ctx, "leaderboard built", "weeks", len(published), "rosters", len(entries))
	return entries, nil
}

// RankLeaderboard sorts by points then name and assigns competition ranks.
func RankLeaderboard(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].RosterName != entries[j].RosterName {
			return entries[i].RosterName < entries[j].RosterName
		}
		return entries[i].RosterID < entries[j].RosterID
	})

	for i := range entries {
		if i > 0 && entries[i].TotalPoints == entries[i-1].TotalPoints {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}
