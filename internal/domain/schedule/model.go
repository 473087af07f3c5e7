package schedule

import "github.com/riskibarqy/rl-fantasy/internal/domain/player"

// Match is one fixture of a round. Scores stay nil until it is played.
type Match struct {
	Time   string
	Team1  player.SourceTeam
	Team2  player.SourceTeam
	Score1 *int
	Score2 *int
}

func (m Match) Played() bool {
	return m.Score1 != nil && m.Score2 != nil
}

type Round struct {
	Number  int
	Date    string
	Matches []Match
}

// Result is a finished match as reported by the results provider.
type Result struct {
	Team1  player.SourceTeam
	Team2  player.SourceTeam
	Score1 int
	Score2 int
}

// Merge copies rounds and fills in scores for every fixture with a result.
// A result only matches a fixture with the same home and away order.
func Merge(rounds []Round, results []Result) []Round {
	type pairing struct {
		home, away player.SourceTeam
	}
	byPairing := make(map[pairing]Result, len(results))
	for _, r := range results {
		byPairing[pairing{home: r.Team1, away: r.Team2}] = r
	}

	out := make([]Round, len(rounds))
	for i, round := range rounds {
		matches := make([]Match, len(round.Matches))
		for j, m := range round.Matches {
			if r, ok := byPairing[pairing{home: m.Team1, away: m.Team2}]; ok {
				s1, s2 := r.Score1, r.Score2
				m.Score1, m.Score2 = &s1, &s2
			}
			matches[j] = m
		}
		round.Matches = matches
		out[i] = round
	}
	return out
}
