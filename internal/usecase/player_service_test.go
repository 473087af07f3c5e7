package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

func TestPlayerService_List(t *testing.T) {
	service := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()), staticIDGenerator{id: "p"}, logging.NewNop())

	all, err := service.List(t.Context(), false)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	active, err := service.List(t.Context(), true)
	if err != nil {
		t.Fatalf("list active players: %v", err)
	}
	if len(all) != 18 || len(active) != 17 {
		t.Fatalf("expected 18 players with 17 active, got %d and %d", len(all), len(active))
	}
}

func TestPlayerService_CreateAndUpdate(t *testing.T) {
	now := time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)
	service := NewPlayerService(memory.NewPlayerRepository(nil), staticIDGenerator{id: "rl-new"}, logging.NewNop())
	service.clock = clockwork.NewFakeClockAt(now)

	created, err := service.Create(t.Context(), CreatePlayerInput{
		Name:       " Jokull ",
		SourceTeam: "Omon",
		Price:      1_250_000,
		Aliases:    []string{"jokull", "Jokull", " ", "jok"},
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.Name != "Jokull" || created.SourceTeam != player.SourceTeamOmon || !created.IsActive {
		t.Fatalf("unexpected player: %+v", created)
	}
	if len(created.Aliases) != 2 {
		t.Fatalf("expected aliases deduplicated to 2, got %v", created.Aliases)
	}

	if _, err := service.Create(t.Context(), CreatePlayerInput{Name: "Dup", SourceTeam: "thor", Price: 1}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate id, got %v", err)
	}

	price := int64(1_400_000)
	inactive := false
	updated, err := service.Update(t.Context(), UpdatePlayerInput{PlayerID: "rl-new", Price: &price, IsActive: &inactive})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if updated.Price != price || updated.IsActive {
		t.Fatalf("unexpected updated player: %+v", updated)
	}
	if len(updated.Aliases) != 2 {
		t.Fatalf("aliases should be untouched, got %v", updated.Aliases)
	}
}

func TestPlayerService_CreateValidation(t *testing.T) {
	service := NewPlayerService(memory.NewPlayerRepository(nil), staticIDGenerator{id: "x"}, logging.NewNop())

	tests := []struct {
		name  string
		input CreatePlayerInput
	}{
		{name: "unknown team", input: CreatePlayerInput{Name: "A", SourceTeam: "reykjavik", Price: 1}},
		{name: "missing name", input: CreatePlayerInput{Name: " ", SourceTeam: "thor", Price: 1}},
		{name: "zero price", input: CreatePlayerInput{Name: "A", SourceTeam: "thor", Price: 0}},
	}
	for _, tc := range tests {
		if _, err := service.Create(t.Context(), tc.input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}
