package transfer

import "context"

type Repository interface {
	Create(ctx context.Context, t Transfer) error
	// ListByRoster returns newest first.
	ListByRoster(ctx context.Context, rosterID string) ([]Transfer, error)
}
