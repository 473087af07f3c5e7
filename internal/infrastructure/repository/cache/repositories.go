package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
	basecache "github.com/riskibarqy/rl-fantasy/internal/platform/cache"
)

const (
	playerPrefix      = "player:"
	playerStatsPrefix = "player-stats:"
	scorePrefix       = "score:"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return clonePlayers(items), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := playerPrefix + "id:" + playerID
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedPlayerByID, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value.Clone(), cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := playerPrefix + "ids:" + strings.Join(ids, ",")
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.GetByIDs(ctx, playerIDs)
	})
	if err != nil {
		return nil, err
	}
	return clonePlayers(items), nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) UpsertWeekStats(ctx context.Context, weekID int, stats []playerstats.PlayerWeekStats) error {
	if err := r.next.UpsertWeekStats(ctx, weekID, stats); err != nil {
		return err
	}
	r.cache.Delete(ctx, weekKey(playerStatsPrefix, weekID))
	return nil
}

func (r *PlayerStatsRepository) GetWeekStats(ctx context.Context, weekID int) (playerstats.WeekStats, error) {
	stats, err := basecache.Load(ctx, r.cache, weekKey(playerStatsPrefix, weekID), func(ctx context.Context) (playerstats.WeekStats, error) {
		return r.next.GetWeekStats(ctx, weekID)
	})
	if err != nil {
		return nil, err
	}
	return copyWeekStats(stats), nil
}

func copyWeekStats(stats playerstats.WeekStats) playerstats.WeekStats {
	out := make(playerstats.WeekStats, len(stats))
	for id, s := range stats {
		out[id] = s
	}
	return out
}

// ScoreRepository caches per-week score lists. Roster histories are read
// through since every publish touches all of them.
type ScoreRepository struct {
	next  scoring.Repository
	cache *basecache.Store
}

func NewScoreRepository(next scoring.Repository, cache *basecache.Store) *ScoreRepository {
	return &ScoreRepository{next: next, cache: cache}
}

func (r *ScoreRepository) ReplaceWeekScores(ctx context.Context, weekID int, scores []scoring.TeamScore) error {
	if err := r.next.ReplaceWeekScores(ctx, weekID, scores); err != nil {
		return err
	}
	r.cache.Delete(ctx, weekKey(scorePrefix, weekID))
	return nil
}

func (r *ScoreRepository) ListByWeek(ctx context.Context, weekID int) ([]scoring.TeamScore, error) {
	items, err := basecache.Load(ctx, r.cache, weekKey(scorePrefix, weekID), func(ctx context.Context) ([]scoring.TeamScore, error) {
		return r.next.ListByWeek(ctx, weekID)
	})
	if err != nil {
		return nil, err
	}
	return cloneScores(items), nil
}

func (r *ScoreRepository) ListByRoster(ctx context.Context, rosterID string) ([]scoring.TeamScore, error) {
	return r.next.ListByRoster(ctx, rosterID)
}

func cloneScores(items []scoring.TeamScore) []scoring.TeamScore {
	out := make([]scoring.TeamScore, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

func weekKey(prefix string, weekID int) string {
	return prefix + "week:" + strconv.Itoa(weekID)
}
