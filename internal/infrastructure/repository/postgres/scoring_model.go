package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
)

type weekScoreTableModel struct {
	WeekID      int       `db:"week_id"`
	RosterID    string    `db:"roster_public_id"`
	UserID      string    `db:"user_id"`
	RosterName  string    `db:"roster_name"`
	TotalPoints int       `db:"total_points"`
	Breakdown   string    `db:"breakdown"`
	CreatedAt   time.Time `db:"created_at"`
}

var weekScoreColumns = []string{
	"week_id",
	"roster_public_id",
	"user_id",
	"roster_name",
	"total_points",
	"breakdown",
	"created_at",
}

// breakdownDocument is the jsonb shape of one scored slot.
type breakdownDocument struct {
	Slot          string                `json:"slot"`
	Role          string                `json:"role"`
	PlayerID      string                `json:"player_id"`
	PlayerName    string                `json:"player_name"`
	GamesUsed     int                   `json:"games_used"`
	BasePoints    int                   `json:"base_points"`
	RoleBonus     int                   `json:"role_bonus"`
	PeriodPoints  int                   `json:"period_points"`
	Points        int                   `json:"points"`
	Goals         int                   `json:"goals"`
	Assists       int                   `json:"assists"`
	Saves         int                   `json:"saves"`
	Shots         int                   `json:"shots"`
	DemosReceived int                   `json:"demos_received"`
	Substitution  *substitutionDocument `json:"substitution,omitempty"`
}

type substitutionDocument struct {
	Slot        string `json:"slot"`
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	GamesFilled int    `json:"games_filled"`
}

func encodeBreakdown(items []scoring.Breakdown) (string, error) {
	docs := make([]breakdownDocument, 0, len(items))
	for _, b := range items {
		doc := breakdownDocument{
			Slot:          string(b.Slot),
			Role:          string(b.Role),
			PlayerID:      b.PlayerID,
			PlayerName:    b.PlayerName,
			GamesUsed:     b.GamesUsed,
			BasePoints:    b.BasePoints,
			RoleBonus:     b.RoleBonus,
			PeriodPoints:  b.PeriodPoints,
			Points:        b.Points,
			Goals:         b.Stats.Goals,
			Assists:       b.Stats.Assists,
			Saves:         b.Stats.Saves,
			Shots:         b.Stats.Shots,
			DemosReceived: b.Stats.DemosReceived,
		}
		if b.Substitution != nil {
			doc.Substitution = &substitutionDocument{
				Slot:        string(b.Substitution.Slot),
				PlayerID:    b.Substitution.PlayerID,
				PlayerName:  b.Substitution.PlayerName,
				GamesFilled: b.Substitution.GamesFilled,
			}
		}
		docs = append(docs, doc)
	}

	raw, err := sonic.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("encode score breakdown: %w", err)
	}
	return string(raw), nil
}

func decodeBreakdown(raw string) ([]scoring.Breakdown, error) {
	if raw == "" {
		return []scoring.Breakdown{}, nil
	}

	var docs []breakdownDocument
	if err := sonic.UnmarshalString(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode score breakdown: %w", err)
	}

	out := make([]scoring.Breakdown, 0, len(docs))
	for _, doc := range docs {
		b := scoring.Breakdown{
			Slot:         fantasy.Slot(doc.Slot),
			Role:         fantasy.Role(doc.Role),
			PlayerID:     doc.PlayerID,
			PlayerName:   doc.PlayerName,
			GamesUsed:    doc.GamesUsed,
			BasePoints:   doc.BasePoints,
			RoleBonus:    doc.RoleBonus,
			PeriodPoints: doc.PeriodPoints,
			Points:       doc.Points,
			Stats: playerstats.StatLine{
				Goals:         doc.Goals,
				Assists:       doc.Assists,
				Saves:         doc.Saves,
				Shots:         doc.Shots,
				DemosReceived: doc.DemosReceived,
			},
		}
		if doc.Substitution != nil {
			b.Substitution = &scoring.Substitution{
				Slot:        fantasy.Slot(doc.Substitution.Slot),
				PlayerID:    doc.Substitution.PlayerID,
				PlayerName:  doc.Substitution.PlayerName,
				GamesFilled: doc.Substitution.GamesFilled,
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func (m weekScoreTableModel) toDomain() (scoring.TeamScore, error) {
	breakdown, err := decodeBreakdown(m.Breakdown)
	if err != nil {
		return scoring.TeamScore{}, fmt.Errorf("week=%d roster=%s: %w", m.WeekID, m.RosterID, err)
	}
	return scoring.TeamScore{
		WeekID:      m.WeekID,
		RosterID:    m.RosterID,
		UserID:      m.UserID,
		RosterName:  m.RosterName,
		TotalPoints: m.TotalPoints,
		Breakdown:   breakdown,
		CreatedAt:   m.CreatedAt,
	}, nil
}
