package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/schedule"
	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rl-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/rl-fantasy/internal/platform/id"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/rl-fantasy/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "admin-secret"

type fixedResults []schedule.Result

func (r fixedResults) FetchResults(context.Context) ([]schedule.Result, error) {
	return r, nil
}

type apiResponse struct {
	APIVersion string           `json:"apiVersion"`
	Data       json.RawMessage  `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	players := memory.NewPlayerRepository(memory.SeedPlayers())
	weeks := memory.NewWeekRepository()
	rosters := memory.NewRosterRepository()
	stats := memory.NewPlayerStatsRepository()
	scores := memory.NewScoreRepository()
	transfers := memory.NewTransferRepository()
	ids := idgen.NewUUIDGenerator()
	logger := logging.NewNop()
	scoringRules := scoring.DefaultRules()

	handler := NewHandler(
		usecase.NewRosterService(rosters, players, weeks, transfers, fantasy.DefaultRules(), nil, ids, logger),
		usecase.NewPlayerService(players, ids, logger),
		usecase.NewWeekService(weeks, logger),
		usecase.NewStatsService(weeks, players, stats, scoringRules.SeriesLength, logger),
		usecase.NewScoringService(weeks, rosters, stats, scores, scoringRules, nil, 2, logger),
		usecase.NewLeaderboardService(weeks, scores, logger),
		usecase.NewScheduleService(fixedResults{
			{Team1: player.SourceTeamDusty, Team2: player.SourceTeamThor, Score1: 2, Score2: 3},
		}, cache.NewStore(time.Minute), logger),
		logger,
	)

	return NewRouter(handler, logger, RouterConfig{CORSAllowedOrigins: []string{"*"}, AdminToken: testAdminToken})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) (int, apiResponse) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out apiResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), "body=%s", rec.Body.String())
	return rec.Code, out
}

func decodeData(t *testing.T, resp apiResponse, dst any) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal([]byte(resp.Data), dst))
}

var (
	managerHeaders = map[string]string{"X-User-ID": "user-1"}
	adminHeaders   = map[string]string{"X-Admin-Token": testAdminToken}
)

const lockInBody = `{"name":"Ice Breakers","picks":[
	{"slot":"striker","player_id":"rl-thor-1"},
	{"slot":"midfield","player_id":"rl-dusty-1"},
	{"slot":"goalkeeper","player_id":"rl-hamar-2"},
	{"slot":"sub-1","player_id":"rl-thor-2"},
	{"slot":"sub-2","player_id":"rl-omon-2"},
	{"slot":"sub-3","player_id":"rl-stjarnan-2"}]}`

func TestRouter_LockInAndRejectMove(t *testing.T) {
	router := newTestRouter(t)

	code, resp := doRequest(t, router, http.MethodPost, "/v1/fantasy/roster", lockInBody, nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "UNAUTHENTICATED", resp.Error.Status)

	code, resp = doRequest(t, router, http.MethodPost, "/v1/fantasy/roster", lockInBody, managerHeaders)
	require.Equal(t, http.StatusCreated, code)
	var roster rosterDTO
	decodeData(t, resp, &roster)
	require.Equal(t, int64(200_000), roster.BudgetRemaining)
	require.Len(t, roster.Slots, 6)
	require.Equal(t, "striker", roster.Slots[0].Slot)

	code, resp = doRequest(t, router, http.MethodPost, "/v1/fantasy/roster", lockInBody, managerHeaders)
	require.Equal(t, http.StatusConflict, code)

	code, resp = doRequest(t, router, http.MethodPut, "/v1/fantasy/roster/me/move",
		`{"player_id":"rl-thor-2","target_slot":"midfield"}`, managerHeaders)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Equal(t, "Too many active players from Thor: 2 (max 1)", resp.Error.Message)
	require.Equal(t, "rosterConstraint", resp.Error.Errors[0].Reason)

	code, resp = doRequest(t, router, http.MethodPut, "/v1/fantasy/roster/me/swap",
		`{"player_id_a":"rl-thor-1","player_id_b":"rl-thor-2"}`, managerHeaders)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, resp, &roster)
	require.Equal(t, "rl-thor-2", roster.Slots[0].PlayerID)
}

func TestRouter_RequestValidation(t *testing.T) {
	router := newTestRouter(t)

	code, resp := doRequest(t, router, http.MethodPost, "/v1/fantasy/roster",
		`{"name":"Team","picks":[{"slot":"keeper","player_id":"rl-thor-1"}]}`, managerHeaders)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalidInput", resp.Error.Errors[0].Reason)

	code, _ = doRequest(t, router, http.MethodPost, "/v1/fantasy/roster", `{"name":"Team","extra":true}`, managerHeaders)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = doRequest(t, router, http.MethodGet, "/v1/players?active=maybe", "", nil)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = doRequest(t, router, http.MethodPost, "/v1/admin/weeks/abc/lock", "", adminHeaders)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_AdminToken(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodPost, "/v1/admin/weeks", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = doRequest(t, router, http.MethodPost, "/v1/admin/weeks", "", map[string]string{"X-Admin-Token": "nope"})
	require.Equal(t, http.StatusForbidden, code)

	code, resp := doRequest(t, router, http.MethodPost, "/v1/admin/weeks", "", adminHeaders)
	require.Equal(t, http.StatusCreated, code)
	var created weekDTO
	decodeData(t, resp, &created)
	require.Equal(t, 1, created.ID)
	require.Equal(t, "draft", created.Status)

	code, resp = doRequest(t, router, http.MethodGet, "/v1/weeks/current", "", nil)
	require.Equal(t, http.StatusOK, code)
	var current weekDTO
	decodeData(t, resp, &current)
	require.Equal(t, 1, current.ID)
}

func TestRouter_AdminTokenNotConfigured(t *testing.T) {
	handler := NewHandler(nil, nil, nil, nil, nil, nil, nil, logging.NewNop())
	router := NewRouter(handler, logging.NewNop(), RouterConfig{})

	code, resp := doRequest(t, router, http.MethodPost, "/v1/admin/weeks", "", adminHeaders)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "UNAVAILABLE", resp.Error.Status)
}

func TestRouter_WeekLifecycleAndLeaderboard(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodPost, "/v1/fantasy/roster", lockInBody, managerHeaders)
	require.Equal(t, http.StatusCreated, code)

	code, _ = doRequest(t, router, http.MethodPost, "/v1/admin/weeks", "", adminHeaders)
	require.Equal(t, http.StatusCreated, code)

	code, _ = doRequest(t, router, http.MethodPost, "/v1/admin/weeks/1/publish", "", adminHeaders)
	require.Equal(t, http.StatusConflict, code, "publish before stats lock")

	code, resp := doRequest(t, router, http.MethodPut, "/v1/admin/weeks/1/stats",
		`{"stats":[{"player_id":"rl-thor-1","games_played":2,"goals":3}]}`, adminHeaders)
	require.Equal(t, http.StatusOK, code)
	var stats []playerWeekStatsDTO
	decodeData(t, resp, &stats)
	require.Len(t, stats, 1)
	require.Equal(t, 3, stats[0].Goals)

	for _, step := range []string{"open", "close", "lock"} {
		code, _ = doRequest(t, router, http.MethodPost, "/v1/admin/weeks/1/"+step, "", adminHeaders)
		require.Equal(t, http.StatusOK, code, step)
	}

	code, resp = doRequest(t, router, http.MethodPost, "/v1/admin/weeks/1/publish", "", adminHeaders)
	require.Equal(t, http.StatusOK, code)
	var published publishResponseDTO
	decodeData(t, resp, &published)
	require.Equal(t, "scores-published", published.Week.Status)
	require.Len(t, published.Scores, 1)
	require.Equal(t, 150, published.Scores[0].TotalPoints)
	require.Equal(t, 300, published.Scores[0].Breakdown[0].PeriodPoints)

	code, resp = doRequest(t, router, http.MethodGet, "/v1/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, code)
	var board []leaderboardEntryDTO
	decodeData(t, resp, &board)
	require.Len(t, board, 1)
	require.Equal(t, 1, board[0].Rank)
	require.Equal(t, "Ice Breakers", board[0].RosterName)

	code, resp = doRequest(t, router, http.MethodGet, "/v1/fantasy/roster/me/scores", "", managerHeaders)
	require.Equal(t, http.StatusOK, code)
	var mine []teamScoreDTO
	decodeData(t, resp, &mine)
	require.Len(t, mine, 1)
	require.Equal(t, 1, mine[0].WeekID)
}

func TestRouter_ScheduleResults(t *testing.T) {
	router := newTestRouter(t)

	code, resp := doRequest(t, router, http.MethodGet, "/v1/schedule/results", "", nil)
	require.Equal(t, http.StatusOK, code)

	var rounds []roundDTO
	decodeData(t, resp, &rounds)
	require.NotEmpty(t, rounds)
	opener := rounds[0].Matches[0]
	require.True(t, opener.Played)
	require.Equal(t, "Dusty", opener.Team1)
	require.Equal(t, 3, *opener.Score2)
}
