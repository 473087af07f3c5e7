package scoring

import (
	"fmt"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
)

// Substitution records a bench player filling an active slot.
type Substitution struct {
	Slot        fantasy.Slot
	PlayerID    string
	PlayerName  string
	GamesFilled int
}

// Breakdown is the score of one active slot for one week.
type Breakdown struct {
	Slot         fantasy.Slot
	Role         fantasy.Role
	PlayerID     string
	PlayerName   string
	GamesUsed    int
	BasePoints   int
	RoleBonus    int
	PeriodPoints int
	Points       int
	Stats        playerstats.StatLine
	Substitution *Substitution
}

// Calculator turns a roster and a week of stats into per-slot points.
// It holds no state between calls.
type Calculator struct {
	rules Rules
}

func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules.clone()}
}

func (c *Calculator) Rules() Rules {
	return c.rules.clone()
}

// CalculateTeamScore scores the three active slots in striker, midfield,
// goalkeeper order. An active player without games is replaced by the first
// bench player, by rank, who played and has not already covered an earlier
// slot in this call.
func (c *Calculator) CalculateTeamScore(roster fantasy.Roster, stats playerstats.WeekStats) ([]Breakdown, error) {
	if err := roster.ValidateComplete(); err != nil {
		return nil, fmt.Errorf("score roster=%s: %w", roster.ID, err)
	}

	consumed := make(map[fantasy.Slot]struct{}, len(fantasy.SubstituteSlots))
	out := make([]Breakdown, 0, len(fantasy.ActiveSlots))

	for _, slot := range fantasy.ActiveSlots {
		role, _ := slot.Role()
		active, _ := roster.Assignment(slot)

		entry := Breakdown{
			Slot:       slot,
			Role:       role,
			PlayerID:   active.PlayerID,
			PlayerName: active.PlayerName,
		}

		used, ok := played(stats, active.PlayerID)
		if !ok {
			for _, subSlot := range fantasy.SubstituteSlots {
				if _, taken := consumed[subSlot]; taken {
					continue
				}
				sub, _ := roster.Assignment(subSlot)
				subStats, subPlayed := played(stats, sub.PlayerID)
				if !subPlayed {
					continue
				}

				consumed[subSlot] = struct{}{}
				used, ok = subStats, true
				entry.Substitution = &Substitution{
					Slot:        subSlot,
					PlayerID:    sub.PlayerID,
					PlayerName:  sub.PlayerName,
					GamesFilled: subStats.GamesPlayed,
				}
				break
			}
		}

		if ok {
			entry.GamesUsed = used.GamesPlayed
			entry.Stats = used.StatLine
			entry.BasePoints, entry.PeriodPoints = c.points(used.StatLine, role)
			entry.RoleBonus = entry.PeriodPoints - entry.BasePoints
			entry.Points = RoundedAverage(entry.PeriodPoints, entry.GamesUsed)
		}

		out = append(out, entry)
	}

	return out, nil
}

func (c *Calculator) points(line playerstats.StatLine, role fantasy.Role) (base, period int) {
	for _, stat := range AllStats {
		value := statValue(line, stat) * c.rules.BasePoints[stat]
		base += value
		period += value * c.rules.Multiplier(role, stat)
	}
	return base, period
}

func played(stats playerstats.WeekStats, playerID string) (playerstats.PlayerWeekStats, bool) {
	s, ok := stats[playerID]
	if !ok || s.GamesPlayed <= 0 {
		return playerstats.PlayerWeekStats{}, false
	}
	return s, true
}

// TotalPoints sums the per-slot averages.
func TotalPoints(breakdown []Breakdown) int {
	total := 0
	for _, b := range breakdown {
		total += b.Points
	}
	return total
}

// RoundedAverage divides total by games and rounds half away from zero,
// so 101/2 is 51 and -7/2 is -4. Zero games averages to zero.
func RoundedAverage(total, games int) int {
	if games <= 0 {
		return 0
	}

	q, r := total/games, total%games
	if r < 0 {
		r = -r
	}
	if 2*r >= games {
		if total < 0 {
			q--
		} else {
			q++
		}
	}
	return q
}
