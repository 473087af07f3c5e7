package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/rl-fantasy/internal/platform/cache"
)

type countingPlayerRepository struct {
	player.Repository
	listCalls int
}

func (r *countingPlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	r.listCalls++
	return r.Repository.List(ctx)
}

func TestPlayerRepository_ListCachedUntilWrite(t *testing.T) {
	next := &countingPlayerRepository{Repository: memory.NewPlayerRepository(memory.SeedPlayers())}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))
	ctx := t.Context()

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list players again: %v", err)
	}
	if next.listCalls != 1 {
		t.Fatalf("expected one backing call, got %d", next.listCalls)
	}
	if second[0].Name == "mutated" {
		t.Fatalf("cached slice must not alias caller copies")
	}

	p := second[0]
	p.Price++
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("update player: %v", err)
	}
	third, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list players after update: %v", err)
	}
	if next.listCalls != 2 {
		t.Fatalf("expected cache invalidated by update, got %d backing calls", next.listCalls)
	}
	if third[0].Price != p.Price {
		t.Fatalf("expected updated price %d, got %d", p.Price, third[0].Price)
	}
}

func TestPlayerStatsRepository_InvalidatesWeekOnUpsert(t *testing.T) {
	repo := NewPlayerStatsRepository(memory.NewPlayerStatsRepository(), basecache.NewStore(time.Minute))
	ctx := t.Context()

	stats, err := repo.GetWeekStats(ctx, 1)
	if err != nil {
		t.Fatalf("get week stats: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected empty stats, got %d", len(stats))
	}

	if err := repo.UpsertWeekStats(ctx, 1, []playerstats.PlayerWeekStats{{PlayerID: "rl-thor-1", GamesPlayed: 2}}); err != nil {
		t.Fatalf("upsert stats: %v", err)
	}
	stats, err = repo.GetWeekStats(ctx, 1)
	if err != nil {
		t.Fatalf("get week stats after upsert: %v", err)
	}
	if stats["rl-thor-1"].GamesPlayed != 2 {
		t.Fatalf("expected fresh stats after upsert, got %+v", stats)
	}
}
