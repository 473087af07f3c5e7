package liquipedia

import (
	"testing"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/schedule"
)

const sampleWikitext = `
{{Match
|opponent1={{TeamOpponent|Dusty|score=2}}
|opponent2={{TeamOpponent|ThorAkureyri|score=3}}
|date=February 1, 2026 - 14:00
}}
{{Match
|opponent1={{TeamOpponent|Omon|score=3}}   |opponent2={{TeamOpponent|354 Esports|score=0}}
}}
{{Match
|opponent1={{TeamOpponent|Hamar|score=}}
|opponent2={{TeamOpponent|Stjarnan|score=}}
}}
{{Match
|opponent1={{TeamOpponent|Reykjavik Rockets|score=3}}
|opponent2={{TeamOpponent|Hamar|score=1}}
}}`

func TestParseResults(t *testing.T) {
	got := ParseResults(sampleWikitext)

	want := []schedule.Result{
		{Team1: player.SourceTeamDusty, Team2: player.SourceTeamThor, Score1: 2, Score2: 3},
		{Team1: player.SourceTeamOmon, Team2: player.SourceTeam354Esports, Score1: 3, Score2: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestMapTeamName(t *testing.T) {
	tests := []struct {
		name   string
		want   player.SourceTeam
		wantOK bool
	}{
		{name: " ThorAkureyri ", want: player.SourceTeamThor, wantOK: true},
		{name: "354 ESPORTS", want: player.SourceTeam354Esports, wantOK: true},
		{name: "Ómon", want: player.SourceTeamOmon, wantOK: true},
		{name: "354esports", wantOK: false},
	}

	for _, tc := range tests {
		got, ok := MapTeamName(tc.name)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("MapTeamName(%q) = %q, %v; want %q, %v", tc.name, got, ok, tc.want, tc.wantOK)
		}
	}
}
