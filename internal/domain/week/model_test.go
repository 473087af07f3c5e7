package week

import (
	"errors"
	"testing"
	"time"
)

func TestWeek_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	deadline := now.Add(48 * time.Hour)
	w := Week{ID: 1, Status: StatusDraft, CreatedAt: now, UpdatedAt: now}

	if !w.StatsEditable() || w.CanPublish() {
		t.Fatalf("draft week should accept stats and refuse publish")
	}

	if err := w.OpenTransfers(&deadline, now); err != nil {
		t.Fatalf("open transfers: %v", err)
	}
	if !w.TransfersOpen(now) {
		t.Fatalf("expected transfers open")
	}

	if err := w.LockStats(now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition locking an open window, got %v", err)
	}

	if err := w.CloseTransfers(now.Add(time.Hour)); err != nil {
		t.Fatalf("close transfers: %v", err)
	}
	if w.TransfersOpen(now.Add(time.Hour)) {
		t.Fatalf("expected transfers closed")
	}
	if !w.TransferWindowClosesAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected deadline moved to close time, got %v", w.TransferWindowClosesAt)
	}

	reopenDeadline := now.Add(72 * time.Hour)
	if err := w.OpenTransfers(&reopenDeadline, now.Add(2*time.Hour)); err != nil {
		t.Fatalf("reopen transfers: %v", err)
	}
	if err := w.CloseTransfers(now.Add(3 * time.Hour)); err != nil {
		t.Fatalf("close transfers again: %v", err)
	}

	if err := w.MarkScoresPublished(now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected publish before lock to fail, got %v", err)
	}

	if err := w.LockStats(now.Add(4 * time.Hour)); err != nil {
		t.Fatalf("lock stats: %v", err)
	}
	if w.StatsEditable() {
		t.Fatalf("locked week should refuse stats")
	}
	if !w.CanPublish() {
		t.Fatalf("locked week should allow publish")
	}

	if err := w.MarkScoresPublished(now.Add(5 * time.Hour)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := w.MarkScoresPublished(now.Add(6 * time.Hour)); err != nil {
		t.Fatalf("republish: %v", err)
	}
	if !w.ScoresPublishedAt.Equal(now.Add(6 * time.Hour)) {
		t.Fatalf("expected republish to refresh timestamp, got %v", w.ScoresPublishedAt)
	}

	if err := w.OpenTransfers(nil, now.Add(7*time.Hour)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected published week to refuse transfers, got %v", err)
	}
}

func TestWeek_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	deadline := now.Add(time.Hour)
	w := Week{ID: 2, Status: StatusTransferOpen, TransferWindowClosesAt: &deadline}

	tests := []struct {
		name string
		at   time.Time
		want Status
	}{
		{name: "before deadline", at: now, want: StatusTransferOpen},
		{name: "at deadline", at: deadline, want: StatusTransferClosed},
		{name: "after deadline", at: deadline.Add(time.Minute), want: StatusTransferClosed},
	}

	for _, tc := range tests {
		if got := w.EffectiveStatus(tc.at); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}

	if err := w.LockStats(deadline.Add(time.Minute)); err != nil {
		t.Fatalf("expected lock after lapsed deadline to succeed, got %v", err)
	}
}

func TestWeek_OpenTransfersRejectsPastDeadline(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	w := Week{ID: 1, Status: StatusDraft}

	if err := w.OpenTransfers(&past, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if w.Status != StatusDraft {
		t.Fatalf("status should be unchanged, got %s", w.Status)
	}
}

func TestWeek_LineupEditable(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	for status, want := range map[Status]bool{
		StatusDraft:           true,
		StatusTransferOpen:    true,
		StatusTransferClosed:  false,
		StatusStatsLocked:     false,
		StatusScoresPublished: false,
	} {
		w := Week{Status: status}
		if got := w.LineupEditable(now); got != want {
			t.Fatalf("status %s: expected %v, got %v", status, want, got)
		}
	}
}
