package playerstats

import "context"

type Repository interface {
	// UpsertWeekStats replaces the stored records of the given players.
	UpsertWeekStats(ctx context.Context, weekID int, stats []PlayerWeekStats) error
	GetWeekStats(ctx context.Context, weekID int) (WeekStats, error)
}
