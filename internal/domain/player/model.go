package player

import (
	"fmt"
	"strings"
	"time"
)

// SourceTeam is the real-world franchise a player competes for.
type SourceTeam string

const (
	SourceTeam354Esports SourceTeam = "354esports"
	SourceTeamDusty      SourceTeam = "dusty"
	SourceTeamHamar      SourceTeam = "hamar"
	SourceTeamOmon       SourceTeam = "omon"
	SourceTeamThor       SourceTeam = "thor"
	SourceTeamStjarnan   SourceTeam = "stjarnan"
)

var sourceTeamNames = map[SourceTeam]string{
	SourceTeam354Esports: "354 Esports",
	SourceTeamDusty:      "Dusty",
	SourceTeamHamar:      "Hamar",
	SourceTeamOmon:       "Ómon",
	SourceTeamThor:       "Thor",
	SourceTeamStjarnan:   "Stjarnan",
}

// AllSourceTeams lists the league franchises in display order.
var AllSourceTeams = []SourceTeam{
	SourceTeam354Esports,
	SourceTeamDusty,
	SourceTeamHamar,
	SourceTeamOmon,
	SourceTeamThor,
	SourceTeamStjarnan,
}

func ParseSourceTeam(v string) (SourceTeam, bool) {
	team := SourceTeam(strings.ToLower(strings.TrimSpace(v)))
	_, ok := sourceTeamNames[team]
	return team, ok
}

func (t SourceTeam) Valid() bool {
	_, ok := sourceTeamNames[t]
	return ok
}

// DisplayName returns the franchise name shown to managers. Unknown values
// fall back to the raw identifier.
func (t SourceTeam) DisplayName() string {
	if name, ok := sourceTeamNames[t]; ok {
		return name
	}
	return string(t)
}

// Player is a selectable competitor in the fantasy pool.
type Player struct {
	ID         string
	Name       string
	SourceTeam SourceTeam
	Price      int64
	IsActive   bool
	Aliases    []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.SourceTeam.Valid() {
		return fmt.Errorf("invalid player source team: %s", p.SourceTeam)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}
	for _, alias := range p.Aliases {
		if strings.TrimSpace(alias) == "" {
			return fmt.Errorf("player alias cannot be empty")
		}
	}

	return nil
}

func (p Player) Clone() Player {
	copied := p
	copied.Aliases = append([]string(nil), p.Aliases...)
	return copied
}
