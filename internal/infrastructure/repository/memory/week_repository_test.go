package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
)

func TestWeekRepository_WithWeek(t *testing.T) {
	repo := NewWeekRepository()
	if err := repo.Create(t.Context(), week.Week{ID: 1, Status: week.StatusTransferClosed}); err != nil {
		t.Fatalf("create week: %v", err)
	}

	t.Run("unknown week", func(t *testing.T) {
		err := repo.WithWeek(t.Context(), 9, func(context.Context, week.Week) error {
			t.Fatalf("fn must not run for an unknown week")
			return nil
		})
		if !errors.Is(err, week.ErrWeekNotFound) {
			t.Fatalf("expected ErrWeekNotFound, got %v", err)
		}
	})

	t.Run("update waits for fn", func(t *testing.T) {
		var (
			mu    sync.Mutex
			order []string
			wg    sync.WaitGroup
		)
		record := func(step string) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, step)
		}

		err := repo.WithWeek(t.Context(), 1, func(_ context.Context, w week.Week) error {
			if w.Status != week.StatusTransferClosed {
				t.Errorf("unexpected status inside guard: %s", w.Status)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				locked := w
				locked.Status = week.StatusStatsLocked
				if err := repo.Update(context.Background(), locked); err != nil {
					t.Errorf("update week: %v", err)
				}
				record("update")
			}()
			time.Sleep(20 * time.Millisecond)
			record("guard")
			return nil
		})
		if err != nil {
			t.Fatalf("with week: %v", err)
		}
		wg.Wait()

		if len(order) != 2 || order[0] != "guard" || order[1] != "update" {
			t.Fatalf("expected update after guard, got %v", order)
		}
		w, _, _ := repo.GetByID(t.Context(), 1)
		if w.Status != week.StatusStatsLocked {
			t.Fatalf("expected stats-locked after update, got %s", w.Status)
		}
	})
}
