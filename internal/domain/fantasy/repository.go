package fantasy

import (
	"context"
	"errors"
)

var (
	ErrRosterExists   = errors.New("user already has a roster")
	ErrRosterNotFound = errors.New("roster not found")
)

// MutateFunc edits a fresh copy of a roster. Returning an error discards
// the edit. Writes made through other repositories with ctx commit or roll
// back together with the roster.
type MutateFunc func(ctx context.Context, roster *Roster) error

// Repository describes roster persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, rosterID string) (Roster, bool, error)
	GetByUser(ctx context.Context, userID string) (Roster, bool, error)
	List(ctx context.Context) ([]Roster, error)
	Create(ctx context.Context, roster Roster) error
	// Mutate applies fn as one atomic read-modify-write. No concurrent
	// writer can change the roster between the read and the write.
	Mutate(ctx context.Context, rosterID string, fn MutateFunc) (Roster, error)
}
