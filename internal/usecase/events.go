package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
)

const (
	SubjectScoresPublished  = "week.scores_published"
	SubjectTransferExecuted = "roster.transfer_executed"
)

// EventPublisher fans domain events out to other services. dedupID lets the
// broker drop redelivered publishes.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any, dedupID string) error
}

type ScoresPublishedEvent struct {
	WeekID      int       `json:"week_id"`
	TeamsScored int       `json:"teams_scored"`
	PublishedAt time.Time `json:"published_at"`
}

type TransferExecutedEvent struct {
	TransferID     string       `json:"transfer_id"`
	RosterID       string       `json:"roster_id"`
	WeekID         int          `json:"week_id"`
	Slot           fantasy.Slot `json:"slot"`
	SoldPlayerID   string       `json:"sold_player_id"`
	BoughtPlayerID string       `json:"bought_player_id"`
	ExecutedAt     time.Time    `json:"executed_at"`
}
