package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
)

var (
	ErrRosterConstraint      = errors.New("roster constraint violated")
	ErrSourceTeamLimit       = errors.New("max players from same source team exceeded")
	ErrActiveSourceTeamLimit = errors.New("max active players from same source team exceeded")
	ErrPlayerNotOnRoster     = errors.New("player not on roster")
	ErrSelfSwap              = errors.New("cannot swap a player with themselves")
	ErrDuplicatePlayer       = errors.New("duplicate player in roster")
	ErrIncompleteRoster      = errors.New("roster is incomplete")
	ErrInvalidSlot           = errors.New("invalid roster slot")
	ErrBudgetExceeded        = errors.New("budget cap exceeded")
	ErrSameSlot              = errors.New("player already in target slot")
)

// Rules stores roster legality parameters.
type Rules struct {
	MaxPerSourceTeam       int
	MaxActivePerSourceTeam int
	BudgetCap              int64
}

func DefaultRules() Rules {
	return Rules{
		MaxPerSourceTeam:       2,
		MaxActivePerSourceTeam: 1,
		BudgetCap:              10_000_000,
	}
}

func (r Rules) Validate() error {
	if r.MaxPerSourceTeam < 1 {
		return fmt.Errorf("max per source team must be >= 1")
	}
	if r.MaxActivePerSourceTeam < 1 || r.MaxActivePerSourceTeam > r.MaxPerSourceTeam {
		return fmt.Errorf("max active per source team must be between 1 and %d", r.MaxPerSourceTeam)
	}
	if r.BudgetCap <= 0 {
		return fmt.Errorf("budget cap must be greater than zero")
	}
	return nil
}

// Decision is the outcome of a roster legality check. Rejections carry a
// reason that can be shown to the manager as is.
type Decision struct {
	Valid  bool
	Reason string
	Kind   error
}

func accept() Decision {
	return Decision{Valid: true}
}

func reject(kind error, format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...), Kind: kind}
}

// Err converts a rejection into a *Rejection error. Accepted decisions
// return nil.
func (d Decision) Err() error {
	if d.Valid {
		return nil
	}
	return &Rejection{Reason: d.Reason, Kind: d.Kind}
}

// Rejection is a refused roster mutation.
type Rejection struct {
	Reason string
	Kind   error
}

func (r *Rejection) Error() string {
	return r.Reason
}

func (r *Rejection) Unwrap() []error {
	if r.Kind == nil {
		return []error{ErrRosterConstraint}
	}
	return []error{ErrRosterConstraint, r.Kind}
}

// Checker decides whether roster mutations keep a roster within the
// source-team stacking limits. It never mutates its inputs.
type Checker struct {
	rules Rules
}

func NewChecker(rules Rules) *Checker {
	return &Checker{rules: rules}
}

func (c *Checker) Rules() Rules {
	return c.rules
}

type member struct {
	playerID string
	team     player.SourceTeam
	kind     SlotKind
}

func membersOf(slots []SlotAssignment) []member {
	ordered := SortSlots(slots)
	out := make([]member, 0, len(ordered))
	for _, a := range ordered {
		out = append(out, member{playerID: a.PlayerID, team: a.SourceTeam, kind: a.Slot.Kind()})
	}
	return out
}

// CanAddPlayer checks whether candidate may join a slot of the given kind.
// When excludedPlayerID is set, that player is treated as already removed,
// so a replacement is judged in one step.
func (c *Checker) CanAddPlayer(slots []SlotAssignment, candidate player.Player, kind SlotKind, excludedPlayerID string) Decision {
	if !kind.Valid() {
		return reject(ErrInvalidSlot, "Unknown slot type %q", kind)
	}

	var teamTotal, teamActive int
	for _, m := range membersOf(slots) {
		if excludedPlayerID != "" && m.playerID == excludedPlayerID {
			continue
		}
		if m.playerID == candidate.ID {
			return reject(ErrDuplicatePlayer, "%s is already on your roster.", candidate.Name)
		}
		if m.team != candidate.SourceTeam {
			continue
		}
		teamTotal++
		if m.kind == SlotKindActive {
			teamActive++
		}
	}

	teamName := candidate.SourceTeam.DisplayName()
	if teamTotal >= c.rules.MaxPerSourceTeam {
		return reject(ErrSourceTeamLimit,
			"You already have %d players from %s. Maximum %d allowed per RL team.",
			teamTotal, teamName, c.rules.MaxPerSourceTeam)
	}
	if kind == SlotKindActive && teamActive >= c.rules.MaxActivePerSourceTeam {
		if c.rules.MaxActivePerSourceTeam == 1 {
			return reject(ErrActiveSourceTeamLimit,
				"You already have an active player from %s. Only 1 active player per RL team allowed.", teamName)
		}
		return reject(ErrActiveSourceTeamLimit,
			"You already have %d active players from %s. Only %d active players per RL team allowed.",
			teamActive, teamName, c.rules.MaxActivePerSourceTeam)
	}

	return accept()
}

// ValidateRosterConstraints sweeps the whole roster. Groups are reported in
// the order their first member appears, striker first.
func (c *Checker) ValidateRosterConstraints(slots []SlotAssignment) Decision {
	return c.validateMembers(membersOf(slots))
}

func (c *Checker) validateMembers(members []member) Decision {
	type tally struct {
		total  int
		active int
	}

	order := make([]player.SourceTeam, 0, len(members))
	groups := make(map[player.SourceTeam]*tally, len(members))
	for _, m := range members {
		g, ok := groups[m.team]
		if !ok {
			g = &tally{}
			groups[m.team] = g
			order = append(order, m.team)
		}
		g.total++
		if m.kind == SlotKindActive {
			g.active++
		}
	}

	for _, team := range order {
		g := groups[team]
		if g.total > c.rules.MaxPerSourceTeam {
			return reject(ErrSourceTeamLimit, "Too many players from %s: %d (max %d)",
				team.DisplayName(), g.total, c.rules.MaxPerSourceTeam)
		}
		if g.active > c.rules.MaxActivePerSourceTeam {
			return reject(ErrActiveSourceTeamLimit, "Too many active players from %s: %d (max %d)",
				team.DisplayName(), g.active, c.rules.MaxActivePerSourceTeam)
		}
	}

	return accept()
}

// CanSwapPlayers checks exchanging the slots of two roster players.
func (c *Checker) CanSwapPlayers(slots []SlotAssignment, playerIDA, playerIDB string) Decision {
	if playerIDA == playerIDB {
		return reject(ErrSelfSwap, "Cannot swap a player with themselves")
	}

	members := membersOf(slots)
	idxA, idxB := -1, -1
	for i, m := range members {
		switch m.playerID {
		case playerIDA:
			idxA = i
		case playerIDB:
			idxB = i
		}
	}
	if idxA < 0 || idxB < 0 {
		return reject(ErrPlayerNotOnRoster, "Players not found")
	}

	if members[idxA].kind == members[idxB].kind {
		return accept()
	}

	members[idxA].kind, members[idxB].kind = members[idxB].kind, members[idxA].kind
	return c.validateMembers(members)
}

// CanMoveToEmptySlot checks moving a roster player into a vacant slot of
// the target kind.
func (c *Checker) CanMoveToEmptySlot(slots []SlotAssignment, playerID string, targetKind SlotKind) Decision {
	if !targetKind.Valid() {
		return reject(ErrInvalidSlot, "Unknown slot type %q", targetKind)
	}

	members := membersOf(slots)
	idx := -1
	for i, m := range members {
		if m.playerID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return reject(ErrPlayerNotOnRoster, "Player not found")
	}

	if members[idx].kind == targetKind {
		return accept()
	}

	members[idx].kind = targetKind
	return c.validateMembers(members)
}

// ValidateLockIn checks a full six-player lineup before a roster is created.
func (c *Checker) ValidateLockIn(slots []SlotAssignment) error {
	if err := validateShape(slots); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompleteRoster, err)
	}

	seenPlayers := make(map[string]struct{}, len(slots))
	var spent int64
	for _, a := range slots {
		if _, ok := seenPlayers[a.PlayerID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, a.PlayerID)
		}
		seenPlayers[a.PlayerID] = struct{}{}
		if a.PricePaid <= 0 {
			return fmt.Errorf("player price must be greater than zero: %s", a.PlayerID)
		}
		spent += a.PricePaid
	}

	if spent > c.rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrBudgetExceeded, c.rules.BudgetCap, spent)
	}

	return c.ValidateRosterConstraints(slots).Err()
}

// CanAfford checks a transfer against the remaining budget. The sold
// player's refund is the price originally paid.
func (c *Checker) CanAfford(budgetRemaining, refund, price int64) Decision {
	available := budgetRemaining + refund
	if price > available {
		return reject(ErrBudgetExceeded, "Not enough budget. %d available, %d required.", available, price)
	}
	return accept()
}
