package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/transfer"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	idgen "github.com/riskibarqy/rl-fantasy/internal/platform/id"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

const maxRosterNameLength = 40

// SlotPick is one slot choice of a lock-in request.
type SlotPick struct {
	Slot     string
	PlayerID string
}

type LockInInput struct {
	UserID string
	Name   string
	Picks  []SlotPick
}

type TransferInput struct {
	UserID         string
	SoldPlayerID   string
	BoughtPlayerID string
}

type RosterService struct {
	rosterRepo   fantasy.Repository
	playerRepo   player.Repository
	weekRepo     week.Repository
	transferRepo transfer.Repository
	checker      *fantasy.Checker
	events       EventPublisher
	idGen        idgen.Generator
	logger       *logging.Logger
	clock        clockwork.Clock
}

func NewRosterService(
	rosterRepo fantasy.Repository,
	playerRepo player.Repository,
	weekRepo week.Repository,
	transferRepo transfer.Repository,
	rules fantasy.Rules,
	events EventPublisher,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		rosterRepo:   rosterRepo,
		playerRepo:   playerRepo,
		weekRepo:     weekRepo,
		transferRepo: transferRepo,
		checker:      fantasy.NewChecker(rules),
		events:       events,
		idGen:        idGen,
		logger:       logger,
		clock:        clockwork.NewRealClock(),
	}
}

// LockIn creates the manager's roster. A manager locks in exactly once;
// afterwards the lineup only changes through transfers, swaps and moves.
func (s *RosterService) LockIn(ctx context.Context, input LockInInput) (fantasy.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.LockIn")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	name, err := cleanRosterName(input.Name)
	if err != nil {
		return fantasy.Roster{}, err
	}
	if input.UserID == "" {
		return fantasy.Roster{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if len(input.Picks) != len(fantasy.AllSlots()) {
		return fantasy.Roster{}, fmt.Errorf("%w: expected %d picks, got %d", ErrInvalidInput, len(fantasy.AllSlots()), len(input.Picks))
	}

	currentWeek, err := s.ensureLineupEditable(ctx)
	if err != nil {
		return fantasy.Roster{}, err
	}

	_, exists, err := s.rosterRepo.GetByUser(ctx, input.UserID)
	if err != nil {
		return fantasy.Roster{}, fmt.Errorf("get roster by user: %w", err)
	}
	if exists {
		return fantasy.Roster{}, fmt.Errorf("%w: user=%s already has a roster", ErrConflict, input.UserID)
	}

	slots, err := s.resolvePicks(ctx, input.Picks)
	if err != nil {
		return fantasy.Roster{}, err
	}

	if err := s.checker.ValidateLockIn(slots); err != nil {
		return fantasy.Roster{}, lineupError("validate lock in", err)
	}

	rosterID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Roster{}, fmt.Errorf("generate roster id: %w", err)
	}

	now := s.clock.Now().UTC()
	roster := fantasy.Roster{
		ID:              rosterID,
		UserID:          input.UserID,
		Name:            name,
		BudgetRemaining: s.checker.Rules().BudgetCap,
		CreatedInWeek:   currentWeek.ID,
		Slots:           fantasy.SortSlots(slots),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	roster.BudgetRemaining -= roster.SpentTotal()

	if err := roster.ValidateBasic(); err != nil {
		return fantasy.Roster{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Create(ctx, roster); err != nil {
		if errors.Is(err, fantasy.ErrRosterExists) {
			return fantasy.Roster{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return fantasy.Roster{}, fmt.Errorf("create roster: %w", err)
	}

	s.logger.InfoContext(ctx, "roster locked in",
		"user_id", roster.UserID,
		"roster_id", roster.ID,
		"budget_remaining", roster.BudgetRemaining,
		"created_in_week", roster.CreatedInWeek,
	)

	return roster, nil
}

func (s *RosterService) GetMyRoster(ctx context.Context, userID string) (fantasy.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetMyRoster")
	defer span.End()

	return s.rosterForUser(ctx, userID)
}

func (s *RosterService) Rename(ctx context.Context, userID, name string) (fantasy.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Rename")
	defer span.End()

	name, err := cleanRosterName(name)
	if err != nil {
		return fantasy.Roster{}, err
	}

	current, err := s.rosterForUser(ctx, userID)
	if err != nil {
		return fantasy.Roster{}, err
	}

	updated, err := s.rosterRepo.Mutate(ctx, current.ID, func(ctx context.Context, r *fantasy.Roster) error {
		r.Name = name
		r.UpdatedAt = s.clock.Now().UTC()
		return nil
	})
	if err != nil {
		return fantasy.Roster{}, fmt.Errorf("rename roster: %w", err)
	}

	s.logger.InfoContext(ctx, "roster renamed", "roster_id", updated.ID, "name", updated.Name)
	return updated, nil
}

// Transfer sells one roster player and buys another into the same slot.
// Only allowed while the current week's transfer window is open.
func (s *RosterService) Transfer(ctx context.Context, input TransferInput) (fantasy.Roster, transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Transfer")
	defer span.End()

	input.SoldPlayerID = strings.TrimSpace(input.SoldPlayerID)
	input.BoughtPlayerID = strings.TrimSpace(input.BoughtPlayerID)
	if input.SoldPlayerID == "" || input.BoughtPlayerID == "" {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("%w: sold and bought player ids are required", ErrInvalidInput)
	}
	if input.SoldPlayerID == input.BoughtPlayerID {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("%w: cannot transfer a player for themselves", ErrInvalidInput)
	}

	current, err := s.rosterForUser(ctx, input.UserID)
	if err != nil {
		return fantasy.Roster{}, transfer.Transfer{}, err
	}

	currentWeek, exists, err := s.weekRepo.Latest(ctx)
	if err != nil {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("get current week: %w", err)
	}
	now := s.clock.Now().UTC()
	if !exists || !currentWeek.TransfersOpen(now) {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("%w: transfer window is closed", ErrPrecondition)
	}

	bought, exists, err := s.playerRepo.GetByID(ctx, input.BoughtPlayerID)
	if err != nil {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("get bought player: %w", err)
	}
	if !exists {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.BoughtPlayerID)
	}
	if !bought.IsActive {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("%w: player=%s is not available", ErrInvalidInput, bought.ID)
	}

	transferID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Roster{}, transfer.Transfer{}, fmt.Errorf("generate transfer id: %w", err)
	}

	var record transfer.Transfer
	updated, err := s.rosterRepo.Mutate(ctx, current.ID, func(ctx context.Context, r *fantasy.Roster) error {
		sold, ok := r.FindPlayer(input.SoldPlayerID)
		if !ok {
			return fmt.Errorf("%w: %w: player=%s", ErrInvalidInput, fantasy.ErrPlayerNotOnRoster, input.SoldPlayerID)
		}

		if decision := s.checker.CanAddPlayer(r.Slots, bought, sold.Slot.Kind(), sold.PlayerID); !decision.Valid {
			return decision.Err()
		}
		if decision := s.checker.CanAfford(r.BudgetRemaining, sold.PricePaid, bought.Price); !decision.Valid {
			return decision.Err()
		}

		for i := range r.Slots {
			if r.Slots[i].Slot != sold.Slot {
				continue
			}
			r.Slots[i] = fantasy.SlotAssignment{
				Slot:       sold.Slot,
				PlayerID:   bought.ID,
				PlayerName: bought.Name,
				SourceTeam: bought.SourceTeam,
				PricePaid:  bought.Price,
			}
		}
		r.BudgetRemaining += sold.PricePaid - bought.Price
		r.UpdatedAt = now

		record = transfer.Transfer{
			ID:             transferID,
			RosterID:       r.ID,
			WeekID:         currentWeek.ID,
			Slot:           sold.Slot,
			SoldPlayerID:   sold.PlayerID,
			SoldPrice:      sold.PricePaid,
			BoughtPlayerID: bought.ID,
			BoughtPrice:    bought.Price,
			CreatedAt:      now,
		}
		if err := s.transferRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("record transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return fantasy.Roster{}, transfer.Transfer{}, lineupError("apply transfer", err)
	}

	s.publish(ctx, SubjectTransferExecuted, TransferExecutedEvent{
		TransferID:     record.ID,
		RosterID:       record.RosterID,
		WeekID:         record.WeekID,
		Slot:           record.Slot,
		SoldPlayerID:   record.SoldPlayerID,
		BoughtPlayerID: record.BoughtPlayerID,
		ExecutedAt:     record.CreatedAt,
	}, record.ID)

	s.logger.InfoContext(ctx, "transfer executed",
		"roster_id", updated.ID,
		"week_id", record.WeekID,
		"slot", string(record.Slot),
		"sold_player_id", record.SoldPlayerID,
		"bought_player_id", record.BoughtPlayerID,
		"budget_remaining", updated.BudgetRemaining,
	)

	return updated, record, nil
}

func (s *RosterService) ListTransfers(ctx context.Context, userID string) ([]transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTransfers")
	defer span.End()

	roster, err := s.rosterForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.transferRepo.ListByRoster(ctx, roster.ID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return items, nil
}

// Swap exchanges the slots of two roster players.
func (s *RosterService) Swap(ctx context.Context, userID, playerIDA, playerIDB string) (fantasy.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Swap")
	defer span.End()

	playerIDA = strings.TrimSpace(playerIDA)
	playerIDB = strings.TrimSpace(playerIDB)
	if playerIDA == "" || playerIDB == "" {
		return fantasy.Roster{}, fmt.Errorf("%w: both player ids are required", ErrInvalidInput)
	}

	current, err := s.rosterForUser(ctx, userID)
	if err != nil {
		return fantasy.Roster{}, err
	}
	if _, err := s.ensureLineupEditable(ctx); err != nil {
		return fantasy.Roster{}, err
	}

	updated, err := s.rosterRepo.Mutate(ctx, current.ID, func(ctx context.Context, r *fantasy.Roster) error {
		if decision := s.checker.CanSwapPlayers(r.Slots, playerIDA, playerIDB); !decision.Valid {
			return decision.Err()
		}
		exchangeSlots(r, playerIDA, playerIDB)
		r.UpdatedAt = s.clock.Now().UTC()
		return nil
	})
	if err != nil {
		return fantasy.Roster{}, lineupError("swap players", err)
	}

	s.logger.InfoContext(ctx, "roster players swapped",
		"roster_id", updated.ID,
		"player_a", playerIDA,
		"player_b", playerIDB,
	)
	return updated, nil
}

// Move sends a roster player to targetSlot. An occupied target is treated
// as a swap with its occupant.
func (s *RosterService) Move(ctx context.Context, userID, playerID, targetSlot string) (fantasy.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Move")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fantasy.Roster{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	target, ok := fantasy.ParseSlot(strings.TrimSpace(targetSlot))
	if !ok {
		return fantasy.Roster{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, fantasy.ErrInvalidSlot, targetSlot)
	}

	current, err := s.rosterForUser(ctx, userID)
	if err != nil {
		return fantasy.Roster{}, err
	}
	if _, err := s.ensureLineupEditable(ctx); err != nil {
		return fantasy.Roster{}, err
	}

	updated, err := s.rosterRepo.Mutate(ctx, current.ID, func(ctx context.Context, r *fantasy.Roster) error {
		moving, ok := r.FindPlayer(playerID)
		if !ok {
			return fmt.Errorf("%w: %w: player=%s", ErrInvalidInput, fantasy.ErrPlayerNotOnRoster, playerID)
		}
		if moving.Slot == target {
			return fmt.Errorf("%w: %w: %s", ErrInvalidInput, fantasy.ErrSameSlot, target)
		}

		occupant, occupied := r.Assignment(target)
		if occupied {
			if decision := s.checker.CanSwapPlayers(r.Slots, moving.PlayerID, occupant.PlayerID); !decision.Valid {
				return decision.Err()
			}
			exchangeSlots(r, moving.PlayerID, occupant.PlayerID)
		} else {
			if decision := s.checker.CanMoveToEmptySlot(r.Slots, moving.PlayerID, target.Kind()); !decision.Valid {
				return decision.Err()
			}
			for i := range r.Slots {
				if r.Slots[i].PlayerID == moving.PlayerID {
					r.Slots[i].Slot = target
				}
			}
		}

		r.Slots = fantasy.SortSlots(r.Slots)
		r.UpdatedAt = s.clock.Now().UTC()
		return nil
	})
	if err != nil {
		return fantasy.Roster{}, lineupError("move player", err)
	}

	s.logger.InfoContext(ctx, "roster player moved",
		"roster_id", updated.ID,
		"player_id", playerID,
		"target_slot", string(target),
	)
	return updated, nil
}

func (s *RosterService) rosterForUser(ctx context.Context, userID string) (fantasy.Roster, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Roster{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	roster, exists, err := s.rosterRepo.GetByUser(ctx, userID)
	if err != nil {
		return fantasy.Roster{}, fmt.Errorf("get roster by user: %w", err)
	}
	if !exists {
		return fantasy.Roster{}, fmt.Errorf("%w: roster for user=%s", ErrNotFound, userID)
	}
	return roster, nil
}

// ensureLineupEditable returns the current week, or a zero week before
// the season starts.
func (s *RosterService) ensureLineupEditable(ctx context.Context) (week.Week, error) {
	current, exists, err := s.weekRepo.Latest(ctx)
	if err != nil {
		return week.Week{}, fmt.Errorf("get current week: %w", err)
	}
	if !exists {
		return week.Week{}, nil
	}
	if !current.LineupEditable(s.clock.Now().UTC()) {
		return week.Week{}, fmt.Errorf("%w: lineup is locked for week %d", ErrPrecondition, current.ID)
	}
	return current, nil
}

func (s *RosterService) resolvePicks(ctx context.Context, picks []SlotPick) ([]fantasy.SlotAssignment, error) {
	playerIDs := make([]string, 0, len(picks))
	for i := range picks {
		picks[i].PlayerID = strings.TrimSpace(picks[i].PlayerID)
		if picks[i].PlayerID == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		playerIDs = append(playerIDs, picks[i].PlayerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]fantasy.SlotAssignment, 0, len(picks))
	for _, pick := range picks {
		slot, ok := fantasy.ParseSlot(strings.TrimSpace(pick.Slot))
		if !ok {
			return nil, fmt.Errorf("%w: %w: %q", ErrInvalidInput, fantasy.ErrInvalidSlot, pick.Slot)
		}
		p, ok := byID[pick.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: player=%s not found", ErrInvalidInput, pick.PlayerID)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: player=%s is not available", ErrInvalidInput, p.ID)
		}
		out = append(out, fantasy.SlotAssignment{
			Slot:       slot,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			SourceTeam: p.SourceTeam,
			PricePaid:  p.Price,
		})
	}
	return out, nil
}

func (s *RosterService) publish(ctx context.Context, subject string, payload any, dedupID string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload, dedupID); err != nil {
		s.logger.WarnContext(ctx, "publish event failed", "subject", subject, "error", err)
	}
}

func exchangeSlots(r *fantasy.Roster, playerIDA, playerIDB string) {
	idxA, idxB := -1, -1
	for i, a := range r.Slots {
		switch a.PlayerID {
		case playerIDA:
			idxA = i
		case playerIDB:
			idxB = i
		}
	}
	if idxA < 0 || idxB < 0 {
		return
	}
	r.Slots[idxA].Slot, r.Slots[idxB].Slot = r.Slots[idxB].Slot, r.Slots[idxA].Slot
	r.Slots = fantasy.SortSlots(r.Slots)
}

func cleanRosterName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: roster name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxRosterNameLength {
		return "", fmt.Errorf("%w: roster name must be at most %d characters", ErrInvalidInput, maxRosterNameLength)
	}
	return name, nil
}

// lineupError keeps constraint rejections as they are and files the other
// roster legality failures under ErrInvalidInput.
func lineupError(op string, err error) error {
	var rejection *fantasy.Rejection
	switch {
	case errors.As(err, &rejection):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, fantasy.ErrIncompleteRoster),
		errors.Is(err, fantasy.ErrDuplicatePlayer),
		errors.Is(err, fantasy.ErrBudgetExceeded),
		errors.Is(err, fantasy.ErrInvalidSlot):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, fantasy.ErrRosterNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
