package playerstats

import (
	"errors"
	"fmt"
)

var ErrInvalidStats = errors.New("invalid player week stats")

// StatLine holds per-statistic totals for one player in one week.
type StatLine struct {
	Goals         int
	Assists       int
	Saves         int
	Shots         int
	DemosReceived int
}

// PlayerWeekStats is the resolved stat record for one player in one week.
// A missing record means the player did not appear.
type PlayerWeekStats struct {
	PlayerID    string
	GamesPlayed int
	StatLine
}

func (s PlayerWeekStats) Validate(seriesLength int) error {
	if s.PlayerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidStats)
	}
	if s.GamesPlayed < 0 || s.GamesPlayed > seriesLength {
		return fmt.Errorf("%w: player=%s games played must be between 0 and %d", ErrInvalidStats, s.PlayerID, seriesLength)
	}
	if s.Goals < 0 || s.Assists < 0 || s.Saves < 0 || s.Shots < 0 || s.DemosReceived < 0 {
		return fmt.Errorf("%w: player=%s stat totals must be non-negative", ErrInvalidStats, s.PlayerID)
	}
	return nil
}

// WeekStats maps player id to that player's stats for a week.
type WeekStats map[string]PlayerWeekStats
