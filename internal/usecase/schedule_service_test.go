package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/schedule"
	"github.com/riskibarqy/rl-fantasy/internal/platform/cache"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

type stubResultProvider struct {
	calls   atomic.Int32
	results []schedule.Result
	err     error
}

func (p *stubResultProvider) FetchResults(context.Context) ([]schedule.Result, error) {
	p.calls.Add(1)
	return p.results, p.err
}

func TestScheduleService_Rounds(t *testing.T) {
	provider := &stubResultProvider{results: []schedule.Result{
		{Team1: player.SourceTeamDusty, Team2: player.SourceTeamThor, Score1: 2, Score2: 3},
	}}
	service := NewScheduleService(provider, cache.NewStore(time.Minute), logging.NewNop())

	rounds, err := service.Rounds(t.Context())
	if err != nil {
		t.Fatalf("rounds: %v", err)
	}
	opener := rounds[0].Matches[0]
	if !opener.Played() || *opener.Score1 != 2 || *opener.Score2 != 3 {
		t.Fatalf("expected opener scored 2-3, got %+v", opener)
	}

	if _, err := service.Rounds(t.Context()); err != nil {
		t.Fatalf("rounds second call: %v", err)
	}
	if provider.calls.Load() != 1 {
		t.Fatalf("expected cached results, provider called %d times", provider.calls.Load())
	}
}

func TestScheduleService_ProviderFailureServesCalendar(t *testing.T) {
	provider := &stubResultProvider{err: errors.New("liquipedia down")}
	service := NewScheduleService(provider, cache.NewStore(time.Minute), logging.NewNop())

	rounds, err := service.Rounds(t.Context())
	if err != nil {
		t.Fatalf("rounds: %v", err)
	}
	if len(rounds) != len(schedule.SeasonTemplate()) {
		t.Fatalf("expected full calendar, got %d rounds", len(rounds))
	}
	for _, round := range rounds {
		for _, m := range round.Matches {
			if m.Played() {
				t.Fatalf("expected no scores when provider fails")
			}
		}
	}
}
