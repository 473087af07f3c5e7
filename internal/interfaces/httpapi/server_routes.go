package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /openapi.json", handler.OpenAPIJSON)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/weeks", handler.ListWeeks)
	mux.HandleFunc("GET /v1/weeks/current", handler.CurrentWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}/scores", handler.ListWeekScores)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/schedule/results", handler.ListScheduleResults)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/fantasy/roster", RequireManager(http.HandlerFunc(handler.LockInRoster)))
	mux.Handle("GET /v1/fantasy/roster/me", RequireManager(http.HandlerFunc(handler.GetMyRoster)))
	mux.Handle("PATCH /v1/fantasy/roster/me", RequireManager(http.HandlerFunc(handler.RenameRoster)))
	mux.Handle("GET /v1/fantasy/roster/me/transfers", RequireManager(http.HandlerFunc(handler.ListMyTransfers)))
	mux.Handle("POST /v1/fantasy/roster/me/transfers", RequireManager(http.HandlerFunc(handler.TransferPlayer)))
	mux.Handle("PUT /v1/fantasy/roster/me/swap", RequireManager(http.HandlerFunc(handler.SwapPlayers)))
	mux.Handle("PUT /v1/fantasy/roster/me/move", RequireManager(http.HandlerFunc(handler.MovePlayer)))
	mux.Handle("GET /v1/fantasy/roster/me/scores", RequireManager(http.HandlerFunc(handler.ListMyScores)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	mux.Handle("POST /v1/admin/players", admin(handler.CreatePlayer))
	mux.Handle("PATCH /v1/admin/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("POST /v1/admin/weeks", admin(handler.CreateWeek))
	mux.Handle("POST /v1/admin/weeks/{weekID}/open", admin(handler.OpenWeekTransfers))
	mux.Handle("POST /v1/admin/weeks/{weekID}/close", admin(handler.CloseWeekTransfers))
	mux.Handle("POST /v1/admin/weeks/{weekID}/lock", admin(handler.LockWeekStats))
	mux.Handle("PUT /v1/admin/weeks/{weekID}/stats", admin(handler.PutWeekStats))
	mux.Handle("GET /v1/admin/weeks/{weekID}/stats", admin(handler.GetWeekStats))
	mux.Handle("POST /v1/admin/weeks/{weekID}/publish", admin(handler.PublishWeekScores))
}
