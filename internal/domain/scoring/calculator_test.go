package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
)

func testRoster() fantasy.Roster {
	return fantasy.Roster{
		ID:     "roster-1",
		UserID: "user-1",
		Name:   "Ice Breakers",
		Slots: []fantasy.SlotAssignment{
			{Slot: fantasy.SlotStriker, PlayerID: "s", PlayerName: "Vatn", SourceTeam: player.SourceTeamThor, PricePaid: 2_000_000},
			{Slot: fantasy.SlotMidfield, PlayerID: "m", PlayerName: "Kaldi", SourceTeam: player.SourceTeamDusty, PricePaid: 1_800_000},
			{Slot: fantasy.SlotGoalkeeper, PlayerID: "g", PlayerName: "Brim", SourceTeam: player.SourceTeamHamar, PricePaid: 1_500_000},
			{Slot: fantasy.SlotSub1, PlayerID: "b1", PlayerName: "Frost", SourceTeam: player.SourceTeamThor, PricePaid: 1_200_000},
			{Slot: fantasy.SlotSub2, PlayerID: "b2", PlayerName: "Eldur", SourceTeam: player.SourceTeamOmon, PricePaid: 1_000_000},
			{Slot: fantasy.SlotSub3, PlayerID: "b3", PlayerName: "Hraun", SourceTeam: player.SourceTeamStjarnan, PricePaid: 900_000},
		},
	}
}

func statsOf(records ...playerstats.PlayerWeekStats) playerstats.WeekStats {
	out := make(playerstats.WeekStats, len(records))
	for _, r := range records {
		out[r.PlayerID] = r
	}
	return out
}

func TestCalculator_CalculateTeamScore(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	stats := statsOf(
		playerstats.PlayerWeekStats{PlayerID: "s", GamesPlayed: 1, StatLine: playerstats.StatLine{Goals: 1}},
		playerstats.PlayerWeekStats{PlayerID: "m", GamesPlayed: 2, StatLine: playerstats.StatLine{Assists: 2}},
		playerstats.PlayerWeekStats{PlayerID: "g", GamesPlayed: 0},
		playerstats.PlayerWeekStats{PlayerID: "b1", GamesPlayed: 0},
		playerstats.PlayerWeekStats{PlayerID: "b2", GamesPlayed: 2, StatLine: playerstats.StatLine{Saves: 4}},
	)

	got, err := calc.CalculateTeamScore(testRoster(), stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 breakdown entries, got %d", len(got))
	}

	tests := []struct {
		slot                        fantasy.Slot
		base, bonus, period, points int
		games                       int
	}{
		{slot: fantasy.SlotStriker, base: 50, bonus: 50, period: 100, points: 100, games: 1},
		{slot: fantasy.SlotMidfield, base: 70, bonus: 70, period: 140, points: 70, games: 2},
		{slot: fantasy.SlotGoalkeeper, base: 100, bonus: 100, period: 200, points: 100, games: 2},
	}
	for i, tc := range tests {
		entry := got[i]
		if entry.Slot != tc.slot {
			t.Fatalf("entry %d: expected slot %s, got %s", i, tc.slot, entry.Slot)
		}
		if entry.BasePoints != tc.base || entry.RoleBonus != tc.bonus || entry.PeriodPoints != tc.period || entry.Points != tc.points {
			t.Fatalf("slot %s: got base=%d bonus=%d period=%d points=%d", tc.slot, entry.BasePoints, entry.RoleBonus, entry.PeriodPoints, entry.Points)
		}
		if entry.GamesUsed != tc.games {
			t.Fatalf("slot %s: expected games %d, got %d", tc.slot, tc.games, entry.GamesUsed)
		}
	}

	if got[0].Substitution != nil || got[1].Substitution != nil {
		t.Fatalf("expected no substitution for striker and midfield")
	}
	sub := got[2].Substitution
	if sub == nil {
		t.Fatalf("expected goalkeeper substitution")
	}
	if sub.Slot != fantasy.SlotSub2 || sub.PlayerID != "b2" || sub.GamesFilled != 2 {
		t.Fatalf("unexpected substitution: %+v", *sub)
	}
	if got[2].PlayerID != "g" {
		t.Fatalf("breakdown should keep the active player id, got %s", got[2].PlayerID)
	}
	if total := TotalPoints(got); total != 270 {
		t.Fatalf("expected total 270, got %d", total)
	}
}

func TestCalculator_SubstituteConsumedOnce(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	stats := statsOf(
		playerstats.PlayerWeekStats{PlayerID: "b1", GamesPlayed: 0},
		playerstats.PlayerWeekStats{PlayerID: "b2", GamesPlayed: 3, StatLine: playerstats.StatLine{Goals: 3}},
		playerstats.PlayerWeekStats{PlayerID: "b3", GamesPlayed: 2, StatLine: playerstats.StatLine{Assists: 1}},
	)

	got, err := calc.CalculateTeamScore(testRoster(), stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	striker := got[0]
	if striker.Substitution == nil || striker.Substitution.Slot != fantasy.SlotSub2 {
		t.Fatalf("expected sub-2 to cover striker, got %+v", striker.Substitution)
	}
	if striker.GamesUsed != 3 || striker.PeriodPoints != 300 || striker.Points != 100 {
		t.Fatalf("unexpected striker entry: %+v", striker)
	}

	midfield := got[1]
	if midfield.Substitution == nil || midfield.Substitution.Slot != fantasy.SlotSub3 {
		t.Fatalf("expected sub-3 to cover midfield, got %+v", midfield.Substitution)
	}
	if midfield.PeriodPoints != 70 || midfield.Points != 35 {
		t.Fatalf("unexpected midfield entry: %+v", midfield)
	}

	goalkeeper := got[2]
	if goalkeeper.Substitution != nil {
		t.Fatalf("expected no substitute left for goalkeeper, got %+v", goalkeeper.Substitution)
	}
	if goalkeeper.Points != 0 || goalkeeper.GamesUsed != 0 {
		t.Fatalf("expected zero goalkeeper entry, got %+v", goalkeeper)
	}
}

func TestCalculator_MissingRecordCountsAsNoGames(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	got, err := calc.CalculateTeamScore(testRoster(), playerstats.WeekStats{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entry := range got {
		if entry.Points != 0 || entry.Substitution != nil {
			t.Fatalf("expected empty entry for %s, got %+v", entry.Slot, entry)
		}
	}
}

func TestCalculator_NegativeAverageRoundsAwayFromZero(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	stats := statsOf(
		playerstats.PlayerWeekStats{PlayerID: "g", GamesPlayed: 2, StatLine: playerstats.StatLine{DemosReceived: 1}},
	)
	got, err := calc.CalculateTeamScore(testRoster(), stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[2].PeriodPoints != -15 || got[2].Points != -8 {
		t.Fatalf("expected period=-15 points=-8, got %+v", got[2])
	}
}

func TestCalculator_Idempotent(t *testing.T) {
	calc := NewCalculator(DefaultRules())
	stats := statsOf(
		playerstats.PlayerWeekStats{PlayerID: "s", GamesPlayed: 0},
		playerstats.PlayerWeekStats{PlayerID: "b1", GamesPlayed: 4, StatLine: playerstats.StatLine{Goals: 2, Shots: 5}},
		playerstats.PlayerWeekStats{PlayerID: "m", GamesPlayed: 3, StatLine: playerstats.StatLine{Assists: 1, Saves: 2}},
	)

	first, err := calc.CalculateTeamScore(testRoster(), stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := calc.CalculateTeamScore(testRoster(), stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestCalculator_IncompleteRoster(t *testing.T) {
	calc := NewCalculator(DefaultRules())
	roster := testRoster()
	roster.Slots = roster.Slots[:5]

	_, err := calc.CalculateTeamScore(roster, playerstats.WeekStats{})
	if !errors.Is(err, fantasy.ErrIncompleteRoster) {
		t.Fatalf("expected ErrIncompleteRoster, got %v", err)
	}
}

func TestCalculator_PlayerInTwoSlots(t *testing.T) {
	calc := NewCalculator(DefaultRules())
	roster := testRoster()
	roster.Slots[4].PlayerID = "s"

	stats := statsOf(playerstats.PlayerWeekStats{PlayerID: "s", GamesPlayed: 2, StatLine: playerstats.StatLine{Goals: 3}})
	_, err := calc.CalculateTeamScore(roster, stats)
	if !errors.Is(err, fantasy.ErrIncompleteRoster) || !errors.Is(err, fantasy.ErrDuplicatePlayer) {
		t.Fatalf("expected duplicate player rejection, got %v", err)
	}
}

func TestRoundedAverage(t *testing.T) {
	tests := []struct {
		total, games, want int
	}{
		{total: 101, games: 2, want: 51},
		{total: -7, games: 2, want: -4},
		{total: 140, games: 2, want: 70},
		{total: 100, games: 3, want: 33},
		{total: 200, games: 3, want: 67},
		{total: -100, games: 3, want: -33},
		{total: 0, games: 4, want: 0},
		{total: 50, games: 0, want: 0},
	}

	for _, tc := range tests {
		if got := RoundedAverage(tc.total, tc.games); got != tc.want {
			t.Fatalf("RoundedAverage(%d, %d): expected %d, got %d", tc.total, tc.games, tc.want, got)
		}
	}
}
