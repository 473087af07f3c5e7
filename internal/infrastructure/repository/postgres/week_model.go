package postgres

import (
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
)

type weekTableModel struct {
	ID                     int        `db:"id"`
	Status                 string     `db:"status"`
	TransferWindowClosesAt *time.Time `db:"transfer_window_closes_at"`
	StatsLockedAt          *time.Time `db:"stats_locked_at"`
	ScoresPublishedAt      *time.Time `db:"scores_published_at"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
}

func (m weekTableModel) toDomain() week.Week {
	return week.Week{
		ID:                     m.ID,
		Status:                 week.Status(m.Status),
		TransferWindowClosesAt: m.TransferWindowClosesAt,
		StatsLockedAt:          m.StatsLockedAt,
		ScoresPublishedAt:      m.ScoresPublishedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func newWeekTableModel(w week.Week) weekTableModel {
	return weekTableModel{
		ID:                     w.ID,
		Status:                 string(w.Status),
		TransferWindowClosesAt: w.TransferWindowClosesAt,
		StatsLockedAt:          w.StatsLockedAt,
		ScoresPublishedAt:      w.ScoresPublishedAt,
		CreatedAt:              w.CreatedAt,
		UpdatedAt:              w.UpdatedAt,
	}
}
