package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	idgen "github.com/riskibarqy/rl-fantasy/internal/platform/id"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

type CreatePlayerInput struct {
	Name       string
	SourceTeam string
	Price      int64
	Aliases    []string
}

// UpdatePlayerInput changes only the fields that are set.
type UpdatePlayerInput struct {
	PlayerID string
	Price    *int64
	IsActive *bool
	Aliases  []string
}

type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	clock      clockwork.Clock
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
	}
}

func (s *PlayerService) List(ctx context.Context, activeOnly bool) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	if !activeOnly {
		return players, nil
	}

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	team, ok := player.ParseSourceTeam(input.SourceTeam)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: unknown source team %q", ErrInvalidInput, input.SourceTeam)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.clock.Now().UTC()
	p := player.Player{
		ID:         id,
		Name:       strings.TrimSpace(input.Name),
		SourceTeam: team,
		Price:      input.Price,
		IsActive:   true,
		Aliases:    cleanAliases(input.Aliases),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		if errors.Is(err, player.ErrPlayerExists) {
			return player.Player{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", p.ID,
		"source_team", string(p.SourceTeam),
		"price", p.Price,
	)
	return p, nil
}

// Update changes price, availability or aliases. Prices already paid by
// rosters are not touched.
func (s *PlayerService) Update(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	p, err := s.Get(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.Aliases != nil {
		p.Aliases = cleanAliases(input.Aliases)
	}
	p.UpdatedAt = s.clock.Now().UTC()

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Update(ctx, p); err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			return player.Player{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated",
		"player_id", p.ID,
		"price", p.Price,
		"is_active", p.IsActive,
	)
	return p, nil
}

func cleanAliases(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	seen := make(map[string]struct{}, len(aliases))
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		key := strings.ToLower(alias)
		if alias == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, alias)
	}
	return out
}
