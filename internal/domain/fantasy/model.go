package fantasy

import (
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
)

// SlotKind separates the scoring lineup from the bench.
type SlotKind string

const (
	SlotKindActive     SlotKind = "active"
	SlotKindSubstitute SlotKind = "substitute"
)

func (k SlotKind) Valid() bool {
	return k == SlotKindActive || k == SlotKindSubstitute
}

// Role is the scoring role of an active slot.
type Role string

const (
	RoleStriker    Role = "striker"
	RoleMidfield   Role = "midfield"
	RoleGoalkeeper Role = "goalkeeper"
)

// Slot is one of the six fixed roster positions.
type Slot string

const (
	SlotStriker    Slot = "striker"
	SlotMidfield   Slot = "midfield"
	SlotGoalkeeper Slot = "goalkeeper"
	SlotSub1       Slot = "sub-1"
	SlotSub2       Slot = "sub-2"
	SlotSub3       Slot = "sub-3"
)

// ActiveSlots is ordered striker, midfield, goalkeeper. Scoring walks it in
// this order.
var ActiveSlots = []Slot{SlotStriker, SlotMidfield, SlotGoalkeeper}

// SubstituteSlots is ordered by bench rank.
var SubstituteSlots = []Slot{SlotSub1, SlotSub2, SlotSub3}

var slotOrder = map[Slot]int{
	SlotStriker:    0,
	SlotMidfield:   1,
	SlotGoalkeeper: 2,
	SlotSub1:       3,
	SlotSub2:       4,
	SlotSub3:       5,
}

func AllSlots() []Slot {
	out := make([]Slot, 0, len(ActiveSlots)+len(SubstituteSlots))
	out = append(out, ActiveSlots...)
	out = append(out, SubstituteSlots...)
	return out
}

func ParseSlot(v string) (Slot, bool) {
	slot := Slot(v)
	_, ok := slotOrder[slot]
	return slot, ok
}

func (s Slot) Valid() bool {
	_, ok := slotOrder[s]
	return ok
}

func (s Slot) Kind() SlotKind {
	switch s {
	case SlotStriker, SlotMidfield, SlotGoalkeeper:
		return SlotKindActive
	default:
		return SlotKindSubstitute
	}
}

// Role reports the scoring role of an active slot.
func (s Slot) Role() (Role, bool) {
	switch s {
	case SlotStriker:
		return RoleStriker, true
	case SlotMidfield:
		return RoleMidfield, true
	case SlotGoalkeeper:
		return RoleGoalkeeper, true
	default:
		return "", false
	}
}

// Rank is the 1-based bench rank, 0 for active slots.
func (s Slot) Rank() int {
	switch s {
	case SlotSub1:
		return 1
	case SlotSub2:
		return 2
	case SlotSub3:
		return 3
	default:
		return 0
	}
}

// SlotAssignment binds one player to one slot.
type SlotAssignment struct {
	Slot       Slot
	PlayerID   string
	PlayerName string
	SourceTeam player.SourceTeam
	PricePaid  int64
}

// Roster is a manager's fantasy team.
type Roster struct {
	ID              string
	UserID          string
	Name            string
	BudgetRemaining int64
	CreatedInWeek   int
	Slots           []SlotAssignment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r Roster) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("roster name is required")
	}
	if r.BudgetRemaining < 0 {
		return fmt.Errorf("%w: remaining budget is negative", ErrBudgetExceeded)
	}

	return nil
}

func (r Roster) Assignment(slot Slot) (SlotAssignment, bool) {
	for _, a := range r.Slots {
		if a.Slot == slot {
			return a, true
		}
	}
	return SlotAssignment{}, false
}

func (r Roster) FindPlayer(playerID string) (SlotAssignment, bool) {
	for _, a := range r.Slots {
		if a.PlayerID == playerID {
			return a, true
		}
	}
	return SlotAssignment{}, false
}

// IsComplete reports whether every slot is filled exactly once.
func (r Roster) IsComplete() bool {
	return r.ValidateComplete() == nil
}

// ValidateComplete requires every slot filled exactly once and six distinct
// players across them.
func (r Roster) ValidateComplete() error {
	if err := validateShape(r.Slots); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompleteRoster, err)
	}

	seen := make(map[string]Slot, len(r.Slots))
	for _, a := range r.Slots {
		if first, ok := seen[a.PlayerID]; ok {
			return fmt.Errorf("%w: %w: %s fills %s and %s", ErrIncompleteRoster, ErrDuplicatePlayer, a.PlayerID, first, a.Slot)
		}
		seen[a.PlayerID] = a.Slot
	}
	return nil
}

func (r Roster) SpentTotal() int64 {
	var total int64
	for _, a := range r.Slots {
		total += a.PricePaid
	}
	return total
}

func (r Roster) Clone() Roster {
	copied := r
	copied.Slots = append([]SlotAssignment(nil), r.Slots...)
	return copied
}

// SortSlots orders assignments striker first, sub-3 last.
func SortSlots(slots []SlotAssignment) []SlotAssignment {
	out := append([]SlotAssignment(nil), slots...)
	sort.SliceStable(out, func(i, j int) bool {
		return slotOrder[out[i].Slot] < slotOrder[out[j].Slot]
	})
	return out
}

func validateShape(slots []SlotAssignment) error {
	if len(slots) != len(slotOrder) {
		return fmt.Errorf("expected %d slots, got %d", len(slotOrder), len(slots))
	}

	seenSlots := make(map[Slot]struct{}, len(slots))
	for _, a := range slots {
		if !a.Slot.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidSlot, a.Slot)
		}
		if _, ok := seenSlots[a.Slot]; ok {
			return fmt.Errorf("slot %s assigned more than once", a.Slot)
		}
		seenSlots[a.Slot] = struct{}{}
		if a.PlayerID == "" {
			return fmt.Errorf("slot %s has no player", a.Slot)
		}
	}

	return nil
}
