package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
)

func (h *Handler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentWeek")
	defer span.End()

	current, err := h.weekService.Current(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(current, h.clock.Now()))
}

func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeeks")
	defer span.End()

	var filter week.Status
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, ok := weekStatusFilter(raw)
		if !ok {
			writeError(ctx, w, invalidQueryParam("status", raw))
			return
		}
		filter = status
	}

	items, err := h.weekService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	now := h.clock.Now()
	out := make([]weekDTO, 0, len(items))
	for _, item := range items {
		if filter != "" && item.EffectiveStatus(now) != filter {
			continue
		}
		out = append(out, weekToDTO(item, now))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWeek")
	defer span.End()

	created, err := h.weekService.Create(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, weekToDTO(created, h.clock.Now()))
}

func (h *Handler) OpenWeekTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenWeekTransfers")
	defer span.End()

	weekID, err := pathWeekID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req openTransfersRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	updated, err := h.weekService.OpenTransfers(ctx, weekID, req.ClosesAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(updated, h.clock.Now()))
}

func (h *Handler) CloseWeekTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseWeekTransfers")
	defer span.End()

	weekID, err := pathWeekID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.weekService.CloseTransfers(ctx, weekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(updated, h.clock.Now()))
}

func (h *Handler) LockWeekStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockWeekStats")
	defer span.End()

	weekID, err := pathWeekID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.weekService.LockStats(ctx, weekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(updated, h.clock.Now()))
}

func (h *Handler) PutWeekStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutWeekStats")
	defer span.End()

	weekID, err := pathWeekID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertWeekStatsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.statsService.UpsertWeekStats(ctx, weekID, statsRequestToDomain(req.Stats)); err != nil {
		h.logger.WarnContext(ctx, "upsert week stats failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.GetWeekStats(ctx, weekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekStatsToDTO(stats))
}

func (h *Handler) GetWeekStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekStats")
	defer span.End()

	weekID, err := pathWeekID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.GetWeekStats(ctx, weekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekStatsToDTO(stats))
}

func (h *Handler) PublishWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishWeekScores")
	defer span.End()

	weekID, err := pathWeekID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.PublishWeek(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "publish week scores failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, publishResponseDTO{
		Week:   weekToDTO(result.Week, h.clock.Now()),
		Scores: teamScoresToDTO(result.Scores),
	})
}

func (h *Handler) ListWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekScores")
	defer span.End()

	weekID, err := pathWeekID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.ListWeekScores(ctx, weekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoresToDTO(scores))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.leaderboardService.Leaderboard(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) ListScheduleResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScheduleResults")
	defer span.End()

	rounds, err := h.scheduleService.Rounds(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundsToDTO(rounds))
}

func weekStatusFilter(raw string) (week.Status, bool) {
	status := week.Status(strings.TrimSpace(raw))
	return status, status.Valid()
}
