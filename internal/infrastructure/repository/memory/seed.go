package memory

import "github.com/riskibarqy/rl-fantasy/internal/domain/player"

// SeedPlayers is the league pool used by the memory storage driver and by
// tests: three players per source team.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "rl-354-1", Name: "Kristall", SourceTeam: player.SourceTeam354Esports, Price: 1_900_000, IsActive: true},
		{ID: "rl-354-2", Name: "Bjarmi", SourceTeam: player.SourceTeam354Esports, Price: 1_500_000, IsActive: true},
		{ID: "rl-354-3", Name: "Salt", SourceTeam: player.SourceTeam354Esports, Price: 1_100_000, IsActive: true},
		{ID: "rl-dusty-1", Name: "Kaldi", SourceTeam: player.SourceTeamDusty, Price: 2_400_000, IsActive: true, Aliases: []string{"kaldi_rl"}},
		{ID: "rl-dusty-2", Name: "Moli", SourceTeam: player.SourceTeamDusty, Price: 2_000_000, IsActive: true},
		{ID: "rl-dusty-3", Name: "Ryk", SourceTeam: player.SourceTeamDusty, Price: 1_400_000, IsActive: true},
		{ID: "rl-hamar-1", Name: "Brim", SourceTeam: player.SourceTeamHamar, Price: 1_700_000, IsActive: true},
		{ID: "rl-hamar-2", Name: "Klettur", SourceTeam: player.SourceTeamHamar, Price: 1_300_000, IsActive: true},
		{ID: "rl-hamar-3", Name: "Sker", SourceTeam: player.SourceTeamHamar, Price: 1_000_000, IsActive: true},
		{ID: "rl-omon-1", Name: "Eldur", SourceTeam: player.SourceTeamOmon, Price: 1_800_000, IsActive: true},
		{ID: "rl-omon-2", Name: "Glod", SourceTeam: player.SourceTeamOmon, Price: 1_200_000, IsActive: true},
		{ID: "rl-omon-3", Name: "Aska", SourceTeam: player.SourceTeamOmon, Price: 1_000_000, IsActive: true},
		{ID: "rl-thor-1", Name: "Vatn", SourceTeam: player.SourceTeamThor, Price: 2_200_000, IsActive: true},
		{ID: "rl-thor-2", Name: "Frost", SourceTeam: player.SourceTeamThor, Price: 1_600_000, IsActive: true},
		{ID: "rl-thor-3", Name: "Stormur", SourceTeam: player.SourceTeamThor, Price: 1_000_000, IsActive: true},
		{ID: "rl-stjarnan-1", Name: "Hraun", SourceTeam: player.SourceTeamStjarnan, Price: 1_600_000, IsActive: true},
		{ID: "rl-stjarnan-2", Name: "Norn", SourceTeam: player.SourceTeamStjarnan, Price: 1_100_000, IsActive: true},
		{ID: "rl-stjarnan-3", Name: "Dögg", SourceTeam: player.SourceTeamStjarnan, Price: 900_000, IsActive: false},
	}
}
