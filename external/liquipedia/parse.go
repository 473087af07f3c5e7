package liquipedia

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/schedule"
)

// matchBlockRegex captures a finished match: both opponents with a score.
var matchBlockRegex = regexp.MustCompile(
	`\|opponent1=\{\{TeamOpponent\|([^|}]+)\|score=(\d+)\}\}\s*\|opponent2=\{\{TeamOpponent\|([^|}]+)\|score=(\d+)\}\}`,
)

var teamNames = map[string]player.SourceTeam{
	"thorakureyri": player.SourceTeamThor,
	"thor":         player.SourceTeamThor,
	"dusty":        player.SourceTeamDusty,
	"omon":         player.SourceTeamOmon,
	"ómon":         player.SourceTeamOmon,
	"354 esports":  player.SourceTeam354Esports,
	"stjarnan":     player.SourceTeamStjarnan,
	"hamar":        player.SourceTeamHamar,
}

// ParseResults extracts finished matches from league-play wikitext.
// Matches naming a team outside the league are skipped.
func ParseResults(wikitext string) []schedule.Result {
	matches := matchBlockRegex.FindAllStringSubmatch(wikitext, -1)
	out := make([]schedule.Result, 0, len(matches))
	for _, m := range matches {
		team1, ok1 := MapTeamName(m[1])
		team2, ok2 := MapTeamName(m[3])
		if !ok1 || !ok2 {
			continue
		}
		score1, err1 := strconv.Atoi(m[2])
		score2, err2 := strconv.Atoi(m[4])
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, schedule.Result{Team1: team1, Team2: team2, Score1: score1, Score2: score2})
	}
	return out
}

// MapTeamName resolves a Liquipedia team name, case-insensitively.
func MapTeamName(name string) (player.SourceTeam, bool) {
	team, ok := teamNames[strings.ToLower(strings.TrimSpace(name))]
	return team, ok
}
