package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/rl-fantasy/internal/usecase"
)

type Handler struct {
	rosterService      *usecase.RosterService
	playerService      *usecase.PlayerService
	weekService        *usecase.WeekService
	statsService       *usecase.StatsService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	scheduleService    *usecase.ScheduleService
	logger             *logging.Logger
	validator          *validator.Validate
	clock              clockwork.Clock
}

func NewHandler(
	rosterService *usecase.RosterService,
	playerService *usecase.PlayerService,
	weekService *usecase.WeekService,
	statsService *usecase.StatsService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	scheduleService *usecase.ScheduleService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:      rosterService,
		playerService:      playerService,
		weekService:        weekService,
		statsService:       statsService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		scheduleService:    scheduleService,
		logger:             logger,
		validator:          validator.New(),
		clock:              clockwork.NewRealClock(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it. Unknown fields
// are rejected.
func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func pathWeekID(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("weekID"))
	weekID, err := strconv.Atoi(raw)
	if err != nil || weekID <= 0 {
		return 0, fmt.Errorf("%w: week id must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return weekID, nil
}

func managerFromRequest(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: manager identity is missing from request context", usecase.ErrUnauthorized)
	}
	return userID, nil
}

func invalidQueryParam(name, value string) error {
	return fmt.Errorf("%w: invalid %s query parameter %q", usecase.ErrInvalidInput, name, value)
}
