package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
)

func TestRosterRepository_MutateDiscardsFailedEdit(t *testing.T) {
	repo := NewRosterRepository()
	if err := repo.Create(t.Context(), fantasy.Roster{ID: "roster-1", UserID: "user-1", Name: "Ice Breakers", BudgetRemaining: 200_000}); err != nil {
		t.Fatalf("create roster: %v", err)
	}

	boom := errors.New("boom")
	_, err := repo.Mutate(t.Context(), "roster-1", func(_ context.Context, r *fantasy.Roster) error {
		r.Name = "Renamed"
		r.BudgetRemaining = 0
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	stored, _, err := repo.GetByID(t.Context(), "roster-1")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if stored.Name != "Ice Breakers" || stored.BudgetRemaining != 200_000 {
		t.Fatalf("expected roster unchanged, got %+v", stored)
	}

	if _, err := repo.Mutate(t.Context(), "missing", func(context.Context, *fantasy.Roster) error { return nil }); !errors.Is(err, fantasy.ErrRosterNotFound) {
		t.Fatalf("expected ErrRosterNotFound, got %v", err)
	}
}
