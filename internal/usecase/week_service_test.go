package usecase

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

func TestWeekService_Lifecycle(t *testing.T) {
	start := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)

	service := NewWeekService(memory.NewWeekRepository(), logging.NewNop())
	service.clock = clock

	created, err := service.Create(t.Context())
	if err != nil {
		t.Fatalf("create week: %v", err)
	}

	deadline := start.Add(24 * time.Hour)
	opened, err := service.OpenTransfers(t.Context(), created.ID, &deadline)
	if err != nil {
		t.Fatalf("open transfers: %v", err)
	}
	if opened.Status != week.StatusTransferOpen {
		t.Fatalf("expected transfer-open, got %s", opened.Status)
	}

	clock.Advance(25 * time.Hour)

	current, err := service.Current(t.Context())
	if err != nil {
		t.Fatalf("current week: %v", err)
	}
	if current.Status != week.StatusTransferClosed {
		t.Fatalf("expected lapsed window to read as transfer-closed, got %s", current.Status)
	}

	locked, err := service.LockStats(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("lock stats: %v", err)
	}
	if locked.StatsLockedAt == nil || !locked.StatsLockedAt.Equal(start.Add(25*time.Hour)) {
		t.Fatalf("unexpected stats locked at: %v", locked.StatsLockedAt)
	}

	if _, err := service.Create(t.Context()); err != nil {
		t.Fatalf("create week after lock: %v", err)
	}
	weeks, err := service.List(t.Context())
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	if len(weeks) != 2 || weeks[1].ID != 2 {
		t.Fatalf("unexpected weeks: %+v", weeks)
	}
}
