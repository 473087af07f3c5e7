package week

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTransition = errors.New("invalid week status transition")

// Status is the lifecycle position of a competition week.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusTransferOpen    Status = "transfer-open"
	StatusTransferClosed  Status = "transfer-closed"
	StatusStatsLocked     Status = "stats-locked"
	StatusScoresPublished Status = "scores-published"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusTransferOpen, StatusTransferClosed, StatusStatsLocked, StatusScoresPublished:
		return true
	default:
		return false
	}
}

// Week is one sequential competition week.
type Week struct {
	ID                     int
	Status                 Status
	TransferWindowClosesAt *time.Time
	StatsLockedAt          *time.Time
	ScoresPublishedAt      *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// EffectiveStatus reports an open transfer window whose deadline has
// passed as closed.
func (w Week) EffectiveStatus(now time.Time) Status {
	if w.Status == StatusTransferOpen && w.TransferWindowClosesAt != nil && !now.Before(*w.TransferWindowClosesAt) {
		return StatusTransferClosed
	}
	return w.Status
}

func (w Week) TransfersOpen(now time.Time) bool {
	return w.EffectiveStatus(now) == StatusTransferOpen
}

// LineupEditable reports whether swaps and moves are allowed.
func (w Week) LineupEditable(now time.Time) bool {
	switch w.EffectiveStatus(now) {
	case StatusDraft, StatusTransferOpen:
		return true
	default:
		return false
	}
}

func (w Week) StatsEditable() bool {
	switch w.Status {
	case StatusDraft, StatusTransferOpen, StatusTransferClosed:
		return true
	default:
		return false
	}
}

// CanPublish is true once stats are locked. Published weeks may be
// recomputed.
func (w Week) CanPublish() bool {
	return w.Status == StatusStatsLocked || w.Status == StatusScoresPublished
}

// OpenTransfers opens the window from draft or closed. A nil closesAt keeps
// the window open until CloseTransfers.
func (w *Week) OpenTransfers(closesAt *time.Time, now time.Time) error {
	switch w.EffectiveStatus(now) {
	case StatusDraft, StatusTransferClosed:
	default:
		return fmt.Errorf("%w: cannot open transfers from %s", ErrInvalidTransition, w.EffectiveStatus(now))
	}
	if closesAt != nil && !closesAt.After(now) {
		return fmt.Errorf("%w: transfer deadline must be in the future", ErrInvalidTransition)
	}

	w.Status = StatusTransferOpen
	w.TransferWindowClosesAt = copyTime(closesAt)
	w.UpdatedAt = now
	return nil
}

func (w *Week) CloseTransfers(now time.Time) error {
	if w.Status != StatusTransferOpen {
		return fmt.Errorf("%w: cannot close transfers from %s", ErrInvalidTransition, w.Status)
	}

	w.Status = StatusTransferClosed
	if w.TransferWindowClosesAt == nil || w.TransferWindowClosesAt.After(now) {
		w.TransferWindowClosesAt = copyTime(&now)
	}
	w.UpdatedAt = now
	return nil
}

func (w *Week) LockStats(now time.Time) error {
	if status := w.EffectiveStatus(now); status != StatusTransferClosed {
		return fmt.Errorf("%w: cannot lock stats from %s", ErrInvalidTransition, status)
	}

	w.Status = StatusStatsLocked
	w.StatsLockedAt = copyTime(&now)
	w.UpdatedAt = now
	return nil
}

// MarkScoresPublished may be repeated; each publish refreshes the timestamp.
func (w *Week) MarkScoresPublished(now time.Time) error {
	if !w.CanPublish() {
		return fmt.Errorf("%w: cannot publish scores from %s", ErrInvalidTransition, w.Status)
	}

	w.Status = StatusScoresPublished
	w.ScoresPublishedAt = copyTime(&now)
	w.UpdatedAt = now
	return nil
}

func (w Week) Clone() Week {
	copied := w
	copied.TransferWindowClosesAt = copyTime(w.TransferWindowClosesAt)
	copied.StatsLockedAt = copyTime(w.StatsLockedAt)
	copied.ScoresPublishedAt = copyTime(w.ScoresPublishedAt)
	return copied
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
