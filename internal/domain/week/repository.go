package week

import (
	"context"
	"errors"
)

var (
	ErrWeekExists   = errors.New("week already exists")
	ErrWeekNotFound = errors.New("week not found")
)

type Repository interface {
	Create(ctx context.Context, w Week) error
	GetByID(ctx context.Context, id int) (Week, bool, error)
	// Latest returns the week with the highest id.
	Latest(ctx context.Context) (Week, bool, error)
	List(ctx context.Context) ([]Week, error)
	Update(ctx context.Context, w Week) error
	// WithWeek runs fn with the stored week and holds it fixed until fn
	// returns, so no Update of that week lands in between. Writes made with
	// the ctx handed to fn share that boundary. Unknown ids return
	// ErrWeekNotFound.
	WithWeek(ctx context.Context, id int, fn func(ctx context.Context, w Week) error) error
}
