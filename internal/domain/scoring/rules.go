package scoring

import (
	"fmt"
	"os"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"gopkg.in/yaml.v3"
)

// Stat identifies one scored statistic.
type Stat string

const (
	StatGoal         Stat = "goal"
	StatAssist       Stat = "assist"
	StatSave         Stat = "save"
	StatShot         Stat = "shot"
	StatDemoReceived Stat = "demo_received"
)

const defaultSeriesLength = 5

var AllStats = []Stat{StatGoal, StatAssist, StatSave, StatShot, StatDemoReceived}

// Rules is the full game ruleset: base values, the role multiplier matrix,
// the series length and the roster limits the constraint checker enforces.
// Treat it as read-only once built.
type Rules struct {
	BasePoints      map[Stat]int
	RoleMultipliers map[fantasy.Role]map[Stat]int
	SeriesLength    int
	Roster          fantasy.Rules
}

func DefaultRules() Rules {
	return Rules{
		BasePoints: map[Stat]int{
			StatGoal:         50,
			StatAssist:       35,
			StatSave:         25,
			StatShot:         15,
			StatDemoReceived: -15,
		},
		RoleMultipliers: map[fantasy.Role]map[Stat]int{
			fantasy.RoleStriker:    {StatGoal: 2, StatAssist: 1, StatSave: 1, StatShot: 1, StatDemoReceived: 1},
			fantasy.RoleMidfield:   {StatGoal: 1, StatAssist: 2, StatSave: 1, StatShot: 1, StatDemoReceived: 1},
			fantasy.RoleGoalkeeper: {StatGoal: 1, StatAssist: 1, StatSave: 2, StatShot: 1, StatDemoReceived: 1},
		},
		SeriesLength: defaultSeriesLength,
		Roster:       fantasy.DefaultRules(),
	}
}

func (r Rules) Validate() error {
	if r.SeriesLength < 1 {
		return fmt.Errorf("series length must be >= 1")
	}
	if err := r.Roster.Validate(); err != nil {
		return fmt.Errorf("roster rules: %w", err)
	}
	for _, stat := range AllStats {
		if _, ok := r.BasePoints[stat]; !ok {
			return fmt.Errorf("base points for %s are required", stat)
		}
	}
	for role, multipliers := range r.RoleMultipliers {
		for stat, m := range multipliers {
			if m < 1 {
				return fmt.Errorf("multiplier role=%s stat=%s must be >= 1", role, stat)
			}
		}
	}
	return nil
}

// Multiplier returns the role multiplier for stat, 1 when unset.
func (r Rules) Multiplier(role fantasy.Role, stat Stat) int {
	if m, ok := r.RoleMultipliers[role][stat]; ok {
		return m
	}
	return 1
}

func (r Rules) clone() Rules {
	out := Rules{
		BasePoints:      make(map[Stat]int, len(r.BasePoints)),
		RoleMultipliers: make(map[fantasy.Role]map[Stat]int, len(r.RoleMultipliers)),
		SeriesLength:    r.SeriesLength,
		Roster:          r.Roster,
	}
	for stat, v := range r.BasePoints {
		out.BasePoints[stat] = v
	}
	for role, multipliers := range r.RoleMultipliers {
		copied := make(map[Stat]int, len(multipliers))
		for stat, v := range multipliers {
			copied[stat] = v
		}
		out.RoleMultipliers[role] = copied
	}
	return out
}

type rulesFile struct {
	SeriesLength    *int                          `yaml:"series_length"`
	BasePoints      map[Stat]int                  `yaml:"base_points"`
	RoleMultipliers map[fantasy.Role]map[Stat]int `yaml:"role_multipliers"`
	Roster          rosterRulesFile               `yaml:"roster"`
}

type rosterRulesFile struct {
	MaxPerSourceTeam       *int   `yaml:"max_per_source_team"`
	MaxActivePerSourceTeam *int   `yaml:"max_active_per_source_team"`
	BudgetCap              *int64 `yaml:"budget_cap"`
}

// LoadRulesFile overlays a YAML ruleset on top of DefaultRules.
func LoadRulesFile(path string) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read scoring rules file: %w", err)
	}
	return ParseRules(raw)
}

func ParseRules(raw []byte) (Rules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Rules{}, fmt.Errorf("decode scoring rules: %w", err)
	}

	rules := DefaultRules()
	if file.SeriesLength != nil {
		rules.SeriesLength = *file.SeriesLength
	}
	for stat, v := range file.BasePoints {
		rules.BasePoints[stat] = v
	}
	if file.Roster.MaxPerSourceTeam != nil {
		rules.Roster.MaxPerSourceTeam = *file.Roster.MaxPerSourceTeam
	}
	if file.Roster.MaxActivePerSourceTeam != nil {
		rules.Roster.MaxActivePerSourceTeam = *file.Roster.MaxActivePerSourceTeam
	}
	if file.Roster.BudgetCap != nil {
		rules.Roster.BudgetCap = *file.Roster.BudgetCap
	}
	for role, multipliers := range file.RoleMultipliers {
		if _, ok := rules.RoleMultipliers[role]; !ok {
			rules.RoleMultipliers[role] = make(map[Stat]int, len(multipliers))
		}
		for stat, v := range multipliers {
			rules.RoleMultipliers[role][stat] = v
		}
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("validate scoring rules: %w", err)
	}
	return rules, nil
}

func statValue(line playerstats.StatLine, stat Stat) int {
	switch stat {
	case StatGoal:
		return line.Goals
	case StatAssist:
		return line.Assists
	case StatSave:
		return line.Saves
	case StatShot:
		return line.Shots
	case StatDemoReceived:
		return line.DemosReceived
	default:
		return 0
	}
}
