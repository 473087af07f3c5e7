package schedule

import (
	"testing"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
)

func TestMerge(t *testing.T) {
	template := SeasonTemplate()
	results := []Result{
		{Team1: player.SourceTeamDusty, Team2: player.SourceTeamThor, Score1: 3, Score2: 1},
		{Team1: player.SourceTeam354Esports, Team2: player.SourceTeamOmon, Score1: 3, Score2: 2},
	}

	merged := Merge(template, results)

	first := merged[0].Matches[0]
	if !first.Played() || *first.Score1 != 3 || *first.Score2 != 1 {
		t.Fatalf("expected round 1 opener scored 3-1, got %+v", first)
	}

	reversed := merged[0].Matches[1]
	if reversed.Played() {
		t.Fatalf("result with swapped home/away must not match, got %+v", reversed)
	}

	roundSix := merged[5].Matches[1]
	if !roundSix.Played() || *roundSix.Score1 != 3 || *roundSix.Score2 != 2 {
		t.Fatalf("expected round 6 354-Omon scored 3-2, got %+v", roundSix)
	}

	if template[0].Matches[0].Played() {
		t.Fatalf("merge must not modify the template")
	}
}

func TestSeasonTemplate_EveryPairOncePerHalf(t *testing.T) {
	rounds := SeasonTemplate()
	if len(rounds) != 10 {
		t.Fatalf("expected 10 rounds, got %d", len(rounds))
	}

	seen := make(map[[2]player.SourceTeam]int)
	for _, round := range rounds {
		if len(round.Matches) != 3 {
			t.Fatalf("round %d: expected 3 matches, got %d", round.Number, len(round.Matches))
		}
		for _, m := range round.Matches {
			a, b := m.Team1, m.Team2
			if b < a {
				a, b = b, a
			}
			seen[[2]player.SourceTeam{a, b}]++
		}
	}
	if len(seen) != 15 {
		t.Fatalf("expected 15 distinct pairings, got %d", len(seen))
	}
	for pair, n := range seen {
		if n != 2 {
			t.Fatalf("pair %v played %d times, want 2", pair, n)
		}
	}
}
