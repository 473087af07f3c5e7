package schedule

import "github.com/riskibarqy/rl-fantasy/internal/domain/player"

const (
	team354      = player.SourceTeam354Esports
	teamDusty    = player.SourceTeamDusty
	teamHamar    = player.SourceTeamHamar
	teamOmon     = player.SourceTeamOmon
	teamThor     = player.SourceTeamThor
	teamStjarnan = player.SourceTeamStjarnan
)

func fixture(time string, home, away player.SourceTeam) Match {
	return Match{Time: time, Team1: home, Team2: away}
}

// SeasonTemplate is the league-play calendar. Dates, times and pairings
// are fixed; scores come from the results provider.
func SeasonTemplate() []Round {
	return []Round{
		{Number: 1, Date: "2026-02-01", Matches: []Match{
			fixture("14:00", teamDusty, teamThor),
			fixture("14:45", teamOmon, team354),
			fixture("15:30", teamHamar, teamStjarnan),
		}},
		{Number: 2, Date: "2026-02-08", Matches: []Match{
			fixture("14:00", teamOmon, teamThor),
			fixture("14:45", teamHamar, teamDusty),
			fixture("15:30", teamStjarnan, team354),
		}},
		{Number: 3, Date: "2026-02-15", Matches: []Match{
			fixture("14:00", teamHamar, teamThor),
			fixture("14:45", teamStjarnan, teamOmon),
			fixture("15:30", team354, teamDusty),
		}},
		{Number: 4, Date: "2026-02-22", Matches: []Match{
			fixture("14:00", teamStjarnan, teamThor),
			fixture("14:45", team354, teamHamar),
			fixture("15:30", teamDusty, teamOmon),
		}},
		{Number: 5, Date: "2026-03-01", Matches: []Match{
			fixture("14:00", team354, teamThor),
			fixture("14:45", teamDusty, teamStjarnan),
			fixture("15:30", teamOmon, teamHamar),
		}},
		{Number: 6, Date: "2026-03-08", Matches: []Match{
			fixture("14:00", teamThor, teamDusty),
			fixture("14:45", team354, teamOmon),
			fixture("15:30", teamStjarnan, teamHamar),
		}},
		{Number: 7, Date: "2026-03-15", Matches: []Match{
			fixture("14:00", teamThor, teamOmon),
			fixture("14:45", teamDusty, teamHamar),
			fixture("15:30", team354, teamStjarnan),
		}},
		{Number: 8, Date: "2026-03-22", Matches: []Match{
			fixture("14:00", teamThor, teamHamar),
			fixture("14:45", teamOmon, teamStjarnan),
			fixture("15:30", teamDusty, team354),
		}},
		{Number: 9, Date: "2026-03-29", Matches: []Match{
			fixture("14:00", teamThor, teamStjarnan),
			fixture("14:45", teamHamar, team354),
			fixture("15:30", teamOmon, teamDusty),
		}},
		{Number: 10, Date: "2026-04-19", Matches: []Match{
			fixture("14:00", teamThor, team354),
			fixture("14:45", teamStjarnan, teamDusty),
			fixture("15:30", teamHamar, teamOmon),
		}},
	}
}
