package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/rl-fantasy/internal/domain/transfer"
)

type TransferRepository struct {
	mu       sync.RWMutex
	byRoster map[string][]transfer.Transfer
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{byRoster: make(map[string][]transfer.Transfer)}
}

func (r *TransferRepository) Create(_ context.Context, t transfer.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byRoster[t.RosterID] = append(r.byRoster[t.RosterID], t)
	return nil
}

func (r *TransferRepository) ListByRoster(_ context.Context, rosterID string) ([]transfer.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byRoster[rosterID]
	out := make([]transfer.Transfer, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return out, nil
}
