package httpapi

import (
	"net/http"

	"github.com/riskibarqy/rl-fantasy/internal/usecase"
)

func (h *Handler) GetMyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRoster")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.GetMyRoster(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) LockInRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockInRoster")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req lockInRosterRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]usecase.SlotPick, 0, len(req.Picks))
	for _, pick := range req.Picks {
		picks = append(picks, usecase.SlotPick{Slot: pick.Slot, PlayerID: pick.PlayerID})
	}

	roster, err := h.rosterService.LockIn(ctx, usecase.LockInInput{
		UserID: userID,
		Name:   req.Name,
		Picks:  picks,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "lock in roster failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterToDTO(roster))
}

func (h *Handler) RenameRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameRoster")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req renameRosterRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.Rename(ctx, userID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "rename roster failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) TransferPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransferPlayer")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req transferRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, record, err := h.rosterService.Transfer(ctx, usecase.TransferInput{
		UserID:         userID,
		SoldPlayerID:   req.SoldPlayerID,
		BoughtPlayerID: req.BoughtPlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "transfer rejected",
			"user_id", userID,
			"sold_player_id", req.SoldPlayerID,
			"bought_player_id", req.BoughtPlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferResponseDTO{
		Roster:   rosterToDTO(roster),
		Transfer: transferToDTO(record),
	})
}

func (h *Handler) ListMyTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTransfers")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.rosterService.ListTransfers(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]transferDTO, 0, len(items))
	for _, item := range items {
		out = append(out, transferToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SwapPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapPlayers")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req swapRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.Swap(ctx, userID, req.PlayerIDA, req.PlayerIDB)
	if err != nil {
		h.logger.WarnContext(ctx, "swap rejected", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) MovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MovePlayer")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req moveRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.Move(ctx, userID, req.PlayerID, req.TargetSlot)
	if err != nil {
		h.logger.WarnContext(ctx, "move rejected",
			"user_id", userID,
			"player_id", req.PlayerID,
			"target_slot", req.TargetSlot,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) ListMyScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyScores")
	defer span.End()

	userID, err := managerFromRequest(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.ListRosterScores(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoresToDTO(scores))
}
