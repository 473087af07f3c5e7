package scoring

import "time"

// TeamScore is the published result of one roster for one week.
type TeamScore struct {
	WeekID      int
	RosterID    string
	UserID      string
	RosterName  string
	TotalPoints int
	Breakdown   []Breakdown
	CreatedAt   time.Time
}

func (s TeamScore) Clone() TeamScore {
	copied := s
	copied.Breakdown = make([]Breakdown, len(s.Breakdown))
	for i, b := range s.Breakdown {
		if b.Substitution != nil {
			sub := *b.Substitution
			b.Substitution = &sub
		}
		copied.Breakdown[i] = b
	}
	return copied
}
