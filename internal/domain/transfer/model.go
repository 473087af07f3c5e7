package transfer

import (
	"fmt"
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
)

// Transfer is the audit record of one sold/bought player exchange.
type Transfer struct {
	ID             string
	RosterID       string
	WeekID         int
	Slot           fantasy.Slot
	SoldPlayerID   string
	SoldPrice      int64
	BoughtPlayerID string
	BoughtPrice    int64
	CreatedAt      time.Time
}

func (t Transfer) Validate() error {
	if t.ID == "" || t.RosterID == "" {
		return fmt.Errorf("transfer id and roster id are required")
	}
	if t.SoldPlayerID == "" || t.BoughtPlayerID == "" {
		return fmt.Errorf("sold and bought player ids are required")
	}
	if !t.Slot.Valid() {
		return fmt.Errorf("%w: %q", fantasy.ErrInvalidSlot, t.Slot)
	}
	return nil
}

// NetCost is what the transfer took from the roster budget.
func (t Transfer) NetCost() int64 {
	return t.BoughtPrice - t.SoldPrice
}
