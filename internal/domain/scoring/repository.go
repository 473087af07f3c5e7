package scoring

import "context"

type Repository interface {
	// ReplaceWeekScores atomically swaps every stored score of weekID for
	// scores. Readers never observe a partial replacement.
	ReplaceWeekScores(ctx context.Context, weekID int, scores []TeamScore) error
	ListByWeek(ctx context.Context, weekID int) ([]TeamScore, error)
	ListByRoster(ctx context.Context, rosterID string) ([]TeamScore, error)
}
