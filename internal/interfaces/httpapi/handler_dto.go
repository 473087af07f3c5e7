package httpapi

import (
	"sort"
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/rl-fantasy/internal/domain/schedule"
	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/rl-fantasy/internal/domain/transfer"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	"github.com/riskibarqy/rl-fantasy/internal/usecase"
)

type slotPickRequest struct {
	Slot     string `json:"slot" validate:"required,oneof=striker midfield goalkeeper sub-1 sub-2 sub-3"`
	PlayerID string `json:"player_id" validate:"required"`
}

type lockInRosterRequest struct {
	Name  string            `json:"name" validate:"required,max=40"`
	Picks []slotPickRequest `json:"picks" validate:"required,len=6,dive"`
}

type renameRosterRequest struct {
	Name string `json:"name" validate:"required,max=40"`
}

type transferRequest struct {
	SoldPlayerID   string `json:"sold_player_id" validate:"required"`
	BoughtPlayerID string `json:"bought_player_id" validate:"required"`
}

type swapRequest struct {
	PlayerIDA string `json:"player_id_a" validate:"required"`
	PlayerIDB string `json:"player_id_b" validate:"required"`
}

type moveRequest struct {
	PlayerID   string `json:"player_id" validate:"required"`
	TargetSlot string `json:"target_slot" validate:"required,oneof=striker midfield goalkeeper sub-1 sub-2 sub-3"`
}

type createPlayerRequest struct {
	Name       string   `json:"name" validate:"required,max=60"`
	SourceTeam string   `json:"source_team" validate:"required"`
	Price      int64    `json:"price" validate:"required,gt=0"`
	Aliases    []string `json:"aliases" validate:"omitempty,dive,required,max=60"`
}

type updatePlayerRequest struct {
	Price    *int64   `json:"price" validate:"omitempty,gt=0"`
	IsActive *bool    `json:"is_active"`
	Aliases  []string `json:"aliases" validate:"omitempty,dive,required,max=60"`
}

type openTransfersRequest struct {
	ClosesAt *time.Time `json:"closes_at"`
}

type playerWeekStatsRequest struct {
	PlayerID      string `json:"player_id" validate:"required"`
	GamesPlayed   int    `json:"games_played" validate:"gte=0"`
	Goals         int    `json:"goals" validate:"gte=0"`
	Assists       int    `json:"assists" validate:"gte=0"`
	Saves         int    `json:"saves" validate:"gte=0"`
	Shots         int    `json:"shots" validate:"gte=0"`
	DemosReceived int    `json:"demos_received" validate:"gte=0"`
}

type upsertWeekStatsRequest struct {
	Stats []playerWeekStatsRequest `json:"stats" validate:"required,min=1,dive"`
}

type playerDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	SourceTeam   string   `json:"source_team"`
	TeamName     string   `json:"team_name"`
	Price        int64    `json:"price"`
	IsActive     bool     `json:"is_active"`
	Aliases      []string `json:"aliases"`
	UpdatedAtUTC string   `json:"updated_at_utc"`
}

type rosterSlotDTO struct {
	Slot       string `json:"slot"`
	Kind       string `json:"kind"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	SourceTeam string `json:"source_team"`
	PricePaid  int64  `json:"price_paid"`
}

type rosterDTO struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	BudgetRemaining int64           `json:"budget_remaining"`
	TotalSpent      int64           `json:"total_spent"`
	CreatedInWeek   int             `json:"created_in_week"`
	Slots           []rosterSlotDTO `json:"slots"`
	CreatedAtUTC    string          `json:"created_at_utc"`
	UpdatedAtUTC    string          `json:"updated_at_utc"`
}

type transferDTO struct {
	ID             string `json:"id"`
	WeekID         int    `json:"week_id"`
	Slot           string `json:"slot"`
	SoldPlayerID   string `json:"sold_player_id"`
	SoldPrice      int64  `json:"sold_price"`
	BoughtPlayerID string `json:"bought_player_id"`
	BoughtPrice    int64  `json:"bought_price"`
	CreatedAtUTC   string `json:"created_at_utc"`
}

type transferResponseDTO struct {
	Roster   rosterDTO   `json:"roster"`
	Transfer transferDTO `json:"transfer"`
}

type weekDTO struct {
	ID                     int    `json:"id"`
	Status                 string `json:"status"`
	EffectiveStatus        string `json:"effective_status"`
	TransferWindowClosesAt string `json:"transfer_window_closes_at,omitempty"`
	StatsLockedAt          string `json:"stats_locked_at,omitempty"`
	ScoresPublishedAt      string `json:"scores_published_at,omitempty"`
	CreatedAtUTC           string `json:"created_at_utc"`
	UpdatedAtUTC           string `json:"updated_at_utc"`
}

type statLineDTO struct {
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	Saves         int `json:"saves"`
	Shots         int `json:"shots"`
	DemosReceived int `json:"demos_received"`
}

type playerWeekStatsDTO struct {
	PlayerID    string `json:"player_id"`
	GamesPlayed int    `json:"games_played"`
	statLineDTO
}

type substitutionDTO struct {
	Slot        string `json:"slot"`
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	GamesFilled int    `json:"games_filled"`
}

type breakdownDTO struct {
	Slot         string           `json:"slot"`
	Role         string           `json:"role"`
	PlayerID     string           `json:"player_id"`
	PlayerName   string           `json:"player_name"`
	GamesUsed    int              `json:"games_used"`
	BasePoints   int              `json:"base_points"`
	RoleBonus    int              `json:"role_bonus"`
	PeriodPoints int              `json:"period_points"`
	Points       int              `json:"points"`
	Stats        statLineDTO      `json:"stats"`
	Substitution *substitutionDTO `json:"substitution,omitempty"`
}

type teamScoreDTO struct {
	WeekID       int            `json:"week_id"`
	RosterID     string         `json:"roster_id"`
	UserID       string         `json:"user_id"`
	RosterName   string         `json:"roster_name"`
	TotalPoints  int            `json:"total_points"`
	Breakdown    []breakdownDTO `json:"breakdown"`
	CreatedAtUTC string         `json:"created_at_utc"`
}

type publishResponseDTO struct {
	Week   weekDTO        `json:"week"`
	Scores []teamScoreDTO `json:"scores"`
}

type leaderboardEntryDTO struct {
	Rank           int    `json:"rank"`
	RosterID       string `json:"roster_id"`
	UserID         string `json:"user_id"`
	RosterName     string `json:"roster_name"`
	TotalPoints    int    `json:"total_points"`
	WeeksScored    int    `json:"weeks_scored"`
	LastWeekPoints int    `json:"last_week_points"`
}

type matchDTO struct {
	Time   string `json:"time"`
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Score1 *int   `json:"score1"`
	Score2 *int   `json:"score2"`
	Played bool   `json:"played"`
}

type roundDTO struct {
	Number  int        `json:"number"`
	Date    string     `json:"date"`
	Matches []matchDTO `json:"matches"`
}

func playerToDTO(v player.Player) playerDTO {
	aliases := make([]string, len(v.Aliases))
	copy(aliases, v.Aliases)

	return playerDTO{
		ID:           v.ID,
		Name:         v.Name,
		SourceTeam:   string(v.SourceTeam),
		TeamName:     v.SourceTeam.DisplayName(),
		Price:        v.Price,
		IsActive:     v.IsActive,
		Aliases:      aliases,
		UpdatedAtUTC: formatTime(v.UpdatedAt),
	}
}

func rosterToDTO(v fantasy.Roster) rosterDTO {
	slots := make([]rosterSlotDTO, 0, len(v.Slots))
	for _, a := range fantasy.SortSlots(v.Slots) {
		slots = append(slots, rosterSlotDTO{
			Slot:       string(a.Slot),
			Kind:       string(a.Slot.Kind()),
			PlayerID:   a.PlayerID,
			PlayerName: a.PlayerName,
			SourceTeam: string(a.SourceTeam),
			PricePaid:  a.PricePaid,
		})
	}

	return rosterDTO{
		ID:              v.ID,
		UserID:          v.UserID,
		Name:            v.Name,
		BudgetRemaining: v.BudgetRemaining,
		TotalSpent:      v.SpentTotal(),
		CreatedInWeek:   v.CreatedInWeek,
		Slots:           slots,
		CreatedAtUTC:    formatTime(v.CreatedAt),
		UpdatedAtUTC:    formatTime(v.UpdatedAt),
	}
}

func transferToDTO(v transfer.Transfer) transferDTO {
	return transferDTO{
		ID:             v.ID,
		WeekID:         v.WeekID,
		Slot:           string(v.Slot),
		SoldPlayerID:   v.SoldPlayerID,
		SoldPrice:      v.SoldPrice,
		BoughtPlayerID: v.BoughtPlayerID,
		BoughtPrice:    v.BoughtPrice,
		CreatedAtUTC:   formatTime(v.CreatedAt),
	}
}

func weekToDTO(v week.Week, now time.Time) weekDTO {
	return weekDTO{
		ID:                     v.ID,
		Status:                 string(v.Status),
		EffectiveStatus:        string(v.EffectiveStatus(now)),
		TransferWindowClosesAt: formatOptionalTime(v.TransferWindowClosesAt),
		StatsLockedAt:          formatOptionalTime(v.StatsLockedAt),
		ScoresPublishedAt:      formatOptionalTime(v.ScoresPublishedAt),
		CreatedAtUTC:           formatTime(v.CreatedAt),
		UpdatedAtUTC:           formatTime(v.UpdatedAt),
	}
}

func statLineToDTO(v playerstats.StatLine) statLineDTO {
	return statLineDTO{
		Goals:         v.Goals,
		Assists:       v.Assists,
		Saves:         v.Saves,
		Shots:         v.Shots,
		DemosReceived: v.DemosReceived,
	}
}

func weekStatsToDTO(stats playerstats.WeekStats) []playerWeekStatsDTO {
	out := make([]playerWeekStatsDTO, 0, len(stats))
	for _, item := range stats {
		out = append(out, playerWeekStatsDTO{
			PlayerID:    item.PlayerID,
			GamesPlayed: item.GamesPlayed,
			statLineDTO: statLineToDTO(item.StatLine),
		})
	}
	sortByPlayerID(out)
	return out
}

func sortByPlayerID(items []playerWeekStatsDTO) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].PlayerID < items[j].PlayerID
	})
}

func statsRequestToDomain(items []playerWeekStatsRequest) []playerstats.PlayerWeekStats {
	out := make([]playerstats.PlayerWeekStats, 0, len(items))
	for _, item := range items {
		out = append(out, playerstats.PlayerWeekStats{
			PlayerID:    item.PlayerID,
			GamesPlayed: item.GamesPlayed,
			StatLine: playerstats.StatLine{
				Goals:         item.Goals,
				Assists:       item.Assists,
				Saves:         item.Saves,
				Shots:         item.Shots,
				DemosReceived: item.DemosReceived,
			},
		})
	}
	return out
}

func teamScoreToDTO(v scoring.TeamScore) teamScoreDTO {
	breakdown := make([]breakdownDTO, 0, len(v.Breakdown))
	for _, b := range v.Breakdown {
		item := breakdownDTO{
			Slot:         string(b.Slot),
			Role:         string(b.Role),
			PlayerID:     b.PlayerID,
			PlayerName:   b.PlayerName,
			GamesUsed:    b.GamesUsed,
			BasePoints:   b.BasePoints,
			RoleBonus:    b.RoleBonus,
			PeriodPoints: b.PeriodPoints,
			Points:       b.Points,
			Stats:        statLineToDTO(b.Stats),
		}
		if b.Substitution != nil {
			item.Substitution = &substitutionDTO{
				Slot:        string(b.Substitution.Slot),
				PlayerID:    b.Substitution.PlayerID,
				PlayerName:  b.Substitution.PlayerName,
				GamesFilled: b.Substitution.GamesFilled,
			}
		}
		breakdown = append(breakdown, item)
	}

	return teamScoreDTO{
		WeekID:       v.WeekID,
		RosterID:     v.RosterID,
		UserID:       v.UserID,
		RosterName:   v.RosterName,
		TotalPoints:  v.TotalPoints,
		Breakdown:    breakdown,
		CreatedAtUTC: formatTime(v.CreatedAt),
	}
}

func teamScoresToDTO(items []scoring.TeamScore) []teamScoreDTO {
	out := make([]teamScoreDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamScoreToDTO(item))
	}
	return out
}

func leaderboardToDTO(items []usecase.LeaderboardEntry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leaderboardEntryDTO{
			Rank:           item.Rank,
			RosterID:       item.RosterID,
			UserID:         item.UserID,
			RosterName:     item.RosterName,
			TotalPoints:    item.TotalPoints,
			WeeksScored:    item.WeeksScored,
			LastWeekPoints: item.LastWeekPoints,
		})
	}
	return out
}

func roundsToDTO(rounds []schedule.Round) []roundDTO {
	out := make([]roundDTO, 0, len(rounds))
	for _, round := range rounds {
		matches := make([]matchDTO, 0, len(round.Matches))
		for _, m := range round.Matches {
			matches = append(matches, matchDTO{
				Time:   m.Time,
				Team1:  m.Team1.DisplayName(),
				Team2:  m.Team2.DisplayName(),
				Score1: m.Score1,
				Score2: m.Score2,
				Played: m.Played(),
			})
		}
		out = append(out, roundDTO{Number: round.Number, Date: round.Date, Matches: matches})
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
