package fantasy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
)

func baseSlots() []SlotAssignment {
	return []SlotAssignment{
		{Slot: SlotStriker, PlayerID: "p1", PlayerName: "Vatn", SourceTeam: player.SourceTeamThor, PricePaid: 2_000_000},
		{Slot: SlotMidfield, PlayerID: "p2", PlayerName: "Kaldi", SourceTeam: player.SourceTeamDusty, PricePaid: 1_800_000},
		{Slot: SlotGoalkeeper, PlayerID: "p3", PlayerName: "Brim", SourceTeam: player.SourceTeamHamar, PricePaid: 1_500_000},
		{Slot: SlotSub1, PlayerID: "p4", PlayerName: "Frost", SourceTeam: player.SourceTeamThor, PricePaid: 1_200_000},
		{Slot: SlotSub2, PlayerID: "p5", PlayerName: "Eldur", SourceTeam: player.SourceTeamOmon, PricePaid: 1_000_000},
		{Slot: SlotSub3, PlayerID: "p6", PlayerName: "Hraun", SourceTeam: player.SourceTeamStjarnan, PricePaid: 900_000},
	}
}

func withoutSlot(slots []SlotAssignment, slot Slot) []SlotAssignment {
	out := make([]SlotAssignment, 0, len(slots))
	for _, a := range slots {
		if a.Slot != slot {
			out = append(out, a)
		}
	}
	return out
}

func TestChecker_CanAddPlayer(t *testing.T) {
	checker := NewChecker(DefaultRules())
	thirdThor := player.Player{ID: "p7", Name: "Stormur", SourceTeam: player.SourceTeamThor, Price: 1_000_000}

	oneActiveThor := baseSlots()
	oneActiveThor[3].SourceTeam = player.SourceTeamDusty

	tests := []struct {
		name       string
		slots      []SlotAssignment
		candidate  player.Player
		kind       SlotKind
		excluded   string
		wantValid  bool
		wantKind   error
		wantReason string
	}{
		{
			name:       "third player from team as active",
			slots:      baseSlots(),
			candidate:  thirdThor,
			kind:       SlotKindActive,
			wantKind:   ErrSourceTeamLimit,
			wantReason: "You already have 2 players from Thor. Maximum 2 allowed per RL team.",
		},
		{
			name:       "third player from team as substitute",
			slots:      baseSlots(),
			candidate:  thirdThor,
			kind:       SlotKindSubstitute,
			wantKind:   ErrSourceTeamLimit,
			wantReason: "You already have 2 players from Thor. Maximum 2 allowed per RL team.",
		},
		{
			name:       "second active player from team",
			slots:      oneActiveThor,
			candidate:  thirdThor,
			kind:       SlotKindActive,
			wantKind:   ErrActiveSourceTeamLimit,
			wantReason: "You already have an active player from Thor. Only 1 active player per RL team allowed.",
		},
		{
			name:      "second player from team on bench",
			slots:     oneActiveThor,
			candidate: thirdThor,
			kind:      SlotKindSubstitute,
			wantValid: true,
		},
		{
			name:      "replacing a team member frees its place",
			slots:     baseSlots(),
			candidate: thirdThor,
			kind:      SlotKindActive,
			excluded:  "p1",
			wantValid: true,
		},
		{
			name:      "adding back the excluded active player",
			slots:     baseSlots(),
			candidate: player.Player{ID: "p1", Name: "Vatn", SourceTeam: player.SourceTeamThor},
			kind:      SlotKindActive,
			excluded:  "p1",
			wantValid: true,
		},
		{
			name:      "adding back the excluded substitute",
			slots:     baseSlots(),
			candidate: player.Player{ID: "p4", Name: "Frost", SourceTeam: player.SourceTeamThor},
			kind:      SlotKindSubstitute,
			excluded:  "p4",
			wantValid: true,
		},
		{
			name:       "player already on roster",
			slots:      baseSlots(),
			candidate:  player.Player{ID: "p2", Name: "Kaldi", SourceTeam: player.SourceTeamDusty},
			kind:       SlotKindSubstitute,
			excluded:   "p6",
			wantKind:   ErrDuplicatePlayer,
			wantReason: "Kaldi is already on your roster.",
		},
		{
			name:      "empty roster",
			slots:     nil,
			candidate: thirdThor,
			kind:      SlotKindActive,
			wantValid: true,
		},
		{
			name:      "unknown slot kind",
			slots:     baseSlots(),
			candidate: thirdThor,
			kind:      SlotKind("bench"),
			wantKind:  ErrInvalidSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.CanAddPlayer(tt.slots, tt.candidate, tt.kind, tt.excluded)
			if got.Valid != tt.wantValid {
				t.Fatalf("valid=%v want=%v reason=%q", got.Valid, tt.wantValid, got.Reason)
			}
			if tt.wantValid {
				return
			}
			if !errors.Is(got.Kind, tt.wantKind) {
				t.Fatalf("kind=%v want=%v", got.Kind, tt.wantKind)
			}
			if tt.wantReason != "" && got.Reason != tt.wantReason {
				t.Fatalf("reason=%q want=%q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestChecker_ValidateRosterConstraints(t *testing.T) {
	checker := NewChecker(DefaultRules())

	t.Run("valid roster", func(t *testing.T) {
		if got := checker.ValidateRosterConstraints(baseSlots()); !got.Valid {
			t.Fatalf("expected valid roster, got %q", got.Reason)
		}
	})

	t.Run("too many from one team", func(t *testing.T) {
		slots := baseSlots()
		slots[4].SourceTeam = player.SourceTeamThor
		got := checker.ValidateRosterConstraints(slots)
		if got.Valid || !errors.Is(got.Kind, ErrSourceTeamLimit) {
			t.Fatalf("expected source team limit, got %+v", got)
		}
		if got.Reason != "Too many players from Thor: 3 (max 2)" {
			t.Fatalf("unexpected reason: %q", got.Reason)
		}
	})

	t.Run("too many active from one team", func(t *testing.T) {
		slots := baseSlots()
		slots[3].SourceTeam = player.SourceTeamDusty
		slots[2].SourceTeam = player.SourceTeamThor
		got := checker.ValidateRosterConstraints(slots)
		if got.Valid || !errors.Is(got.Kind, ErrActiveSourceTeamLimit) {
			t.Fatalf("expected active source team limit, got %+v", got)
		}
		if got.Reason != "Too many active players from Thor: 2 (max 1)" {
			t.Fatalf("unexpected reason: %q", got.Reason)
		}
	})

	t.Run("first group in slot order is reported", func(t *testing.T) {
		slots := baseSlots()
		// Hamar now has three players, Thor keeps two active.
		slots[1].SourceTeam = player.SourceTeamThor
		slots[4].SourceTeam = player.SourceTeamHamar
		slots[5].SourceTeam = player.SourceTeamHamar
		slots[3].SourceTeam = player.SourceTeamDusty
		got := checker.ValidateRosterConstraints(slots)
		if got.Reason != "Too many active players from Thor: 2 (max 1)" {
			t.Fatalf("unexpected reason: %q", got.Reason)
		}

		reversed := make([]SlotAssignment, len(slots))
		for i := range slots {
			reversed[len(slots)-1-i] = slots[i]
		}
		if again := checker.ValidateRosterConstraints(reversed); again.Reason != got.Reason {
			t.Fatalf("reason depends on input order: %q vs %q", again.Reason, got.Reason)
		}
	})
}

func TestChecker_ValidateRosterConstraints_MatchesLimits(t *testing.T) {
	checker := NewChecker(DefaultRules())
	rng := rand.New(rand.NewSource(42))
	teams := []player.SourceTeam{player.SourceTeamThor, player.SourceTeamDusty, player.SourceTeamHamar}

	for i := 0; i < 500; i++ {
		slots := baseSlots()
		total := make(map[player.SourceTeam]int)
		active := make(map[player.SourceTeam]int)
		for j := range slots {
			team := teams[rng.Intn(len(teams))]
			slots[j].SourceTeam = team
			total[team]++
			if slots[j].Slot.Kind() == SlotKindActive {
				active[team]++
			}
		}

		want := true
		for _, team := range teams {
			if total[team] > 2 || active[team] > 1 {
				want = false
			}
		}

		if got := checker.ValidateRosterConstraints(slots); got.Valid != want {
			t.Fatalf("iteration %d: valid=%v want=%v slots=%+v", i, got.Valid, want, slots)
		}
	}
}

func TestChecker_CanSwapPlayers(t *testing.T) {
	checker := NewChecker(DefaultRules())

	tests := []struct {
		name      string
		a, b      string
		wantValid bool
		wantKind  error
		reason    string
	}{
		{name: "active with active at team limit", a: "p1", b: "p2", wantValid: true},
		{name: "substitute with substitute", a: "p4", b: "p6", wantValid: true},
		{name: "team members trade places", a: "p1", b: "p4", wantValid: true},
		{
			name:     "bench player would double team actives",
			a:        "p2",
			b:        "p4",
			wantKind: ErrActiveSourceTeamLimit,
			reason:   "Too many active players from Thor: 2 (max 1)",
		},
		{name: "cross kind without conflict", a: "p3", b: "p5", wantValid: true},
		{name: "same player on both sides", a: "p2", b: "p2", wantKind: ErrSelfSwap},
		{name: "unknown player", a: "p1", b: "p99", wantKind: ErrPlayerNotOnRoster, reason: "Players not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := baseSlots()
			got := checker.CanSwapPlayers(slots, tt.a, tt.b)
			if got.Valid != tt.wantValid {
				t.Fatalf("valid=%v want=%v reason=%q", got.Valid, tt.wantValid, got.Reason)
			}
			if !tt.wantValid && !errors.Is(got.Kind, tt.wantKind) {
				t.Fatalf("kind=%v want=%v", got.Kind, tt.wantKind)
			}
			if tt.reason != "" && got.Reason != tt.reason {
				t.Fatalf("reason=%q want=%q", got.Reason, tt.reason)
			}
			if slots[1].Slot != SlotMidfield || slots[3].Slot != SlotSub1 {
				t.Fatalf("input roster was mutated: %+v", slots)
			}
		})
	}
}

func TestChecker_CanSwapPlayers_SameKindIgnoresViolations(t *testing.T) {
	checker := NewChecker(DefaultRules())
	slots := baseSlots()
	for i := range slots {
		slots[i].SourceTeam = player.SourceTeamThor
	}

	if got := checker.CanSwapPlayers(slots, "p1", "p3"); !got.Valid {
		t.Fatalf("expected same-kind swap to pass, got %q", got.Reason)
	}
	if got := checker.CanSwapPlayers(slots, "p5", "p6"); !got.Valid {
		t.Fatalf("expected same-kind swap to pass, got %q", got.Reason)
	}
}

func TestChecker_CanMoveToEmptySlot(t *testing.T) {
	checker := NewChecker(DefaultRules())
	slots := withoutSlot(baseSlots(), SlotMidfield)

	tests := []struct {
		name      string
		playerID  string
		kind      SlotKind
		wantValid bool
		wantKind  error
		reason    string
	}{
		{name: "same kind move", playerID: "p1", kind: SlotKindActive, wantValid: true},
		{name: "bench to active without conflict", playerID: "p5", kind: SlotKindActive, wantValid: true},
		{
			name:     "bench to active over team limit",
			playerID: "p4",
			kind:     SlotKindActive,
			wantKind: ErrActiveSourceTeamLimit,
			reason:   "Too many active players from Thor: 2 (max 1)",
		},
		{name: "active to bench", playerID: "p1", kind: SlotKindSubstitute, wantValid: true},
		{name: "unknown player", playerID: "p99", kind: SlotKindActive, wantKind: ErrPlayerNotOnRoster, reason: "Player not found"},
		{name: "unknown kind", playerID: "p1", kind: SlotKind("x"), wantKind: ErrInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.CanMoveToEmptySlot(slots, tt.playerID, tt.kind)
			if got.Valid != tt.wantValid {
				t.Fatalf("valid=%v want=%v reason=%q", got.Valid, tt.wantValid, got.Reason)
			}
			if !tt.wantValid && !errors.Is(got.Kind, tt.wantKind) {
				t.Fatalf("kind=%v want=%v", got.Kind, tt.wantKind)
			}
			if tt.reason != "" && got.Reason != tt.reason {
				t.Fatalf("reason=%q want=%q", got.Reason, tt.reason)
			}
		})
	}
}

func TestChecker_CanMoveToEmptySlot_SameKindIgnoresViolations(t *testing.T) {
	checker := NewChecker(DefaultRules())
	slots := withoutSlot(baseSlots(), SlotSub3)
	for i := range slots {
		slots[i].SourceTeam = player.SourceTeamHamar
	}

	if got := checker.CanMoveToEmptySlot(slots, "p4", SlotKindSubstitute); !got.Valid {
		t.Fatalf("expected same-kind move to pass, got %q", got.Reason)
	}
}

func TestDecisionErr(t *testing.T) {
	if err := accept().Err(); err != nil {
		t.Fatalf("expected nil error for accepted decision, got %v", err)
	}

	d := reject(ErrSourceTeamLimit, "Too many players from %s: %d (max %d)", "Thor", 3, 2)
	err := d.Err()
	if err == nil {
		t.Fatalf("expected error for rejected decision")
	}
	if err.Error() != "Too many players from Thor: 3 (max 2)" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrRosterConstraint) || !errors.Is(err, ErrSourceTeamLimit) {
		t.Fatalf("expected rejection to match both sentinels, got %v", err)
	}

	var rejection *Rejection
	if !errors.As(err, &rejection) || rejection.Reason != d.Reason {
		t.Fatalf("expected *Rejection, got %T", err)
	}
}

func TestChecker_ValidateLockIn(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func([]SlotAssignment) []SlotAssignment
		rules     func(*Rules)
		targetErr error
	}{
		{
			name:   "valid lineup",
			mutate: func(s []SlotAssignment) []SlotAssignment { return s },
		},
		{
			name:      "missing slot",
			mutate:    func(s []SlotAssignment) []SlotAssignment { return withoutSlot(s, SlotSub2) },
			targetErr: ErrIncompleteRoster,
		},
		{
			name: "slot used twice",
			mutate: func(s []SlotAssignment) []SlotAssignment {
				s[5].Slot = SlotSub1
				return s
			},
			targetErr: ErrIncompleteRoster,
		},
		{
			name: "unknown slot",
			mutate: func(s []SlotAssignment) []SlotAssignment {
				s[5].Slot = Slot("sub-4")
				return s
			},
			targetErr: ErrInvalidSlot,
		},
		{
			name: "duplicate player",
			mutate: func(s []SlotAssignment) []SlotAssignment {
				s[5].PlayerID = "p1"
				return s
			},
			targetErr: ErrDuplicatePlayer,
		},
		{
			name:      "over budget",
			mutate:    func(s []SlotAssignment) []SlotAssignment { return s },
			rules:     func(r *Rules) { r.BudgetCap = 5_000_000 },
			targetErr: ErrBudgetExceeded,
		},
		{
			name: "stacking limit",
			mutate: func(s []SlotAssignment) []SlotAssignment {
				s[5].SourceTeam = player.SourceTeamThor
				return s
			},
			targetErr: ErrSourceTeamLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			if tt.rules != nil {
				tt.rules(&rules)
			}
			err := NewChecker(rules).ValidateLockIn(tt.mutate(baseSlots()))
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules should be valid: %v", err)
	}
	bad := DefaultRules()
	bad.MaxActivePerSourceTeam = 3
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error when active limit exceeds total limit")
	}
}

func TestChecker_CanAfford(t *testing.T) {
	checker := NewChecker(DefaultRules())

	tests := []struct {
		name                  string
		budget, refund, price int64
		wantValid             bool
	}{
		{name: "exact budget", budget: 500_000, refund: 1_000_000, price: 1_500_000, wantValid: true},
		{name: "cheaper player", budget: 0, refund: 2_000_000, price: 1_000_000, wantValid: true},
		{name: "short by one", budget: 500_000, refund: 1_000_000, price: 1_500_001},
	}

	for _, tc := range tests {
		got := checker.CanAfford(tc.budget, tc.refund, tc.price)
		if got.Valid != tc.wantValid {
			t.Fatalf("%s: expected valid=%v, got %+v", tc.name, tc.wantValid, got)
		}
		if !tc.wantValid && !errors.Is(got.Err(), ErrBudgetExceeded) {
			t.Fatalf("%s: expected ErrBudgetExceeded, got %v", tc.name, got.Err())
		}
	}
}
