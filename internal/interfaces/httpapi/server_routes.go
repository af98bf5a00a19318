package httpapi

import (
	"net/http"

	"github.com/riskibarqy/booze-baton/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, recorder *metrics.Recorder) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if recorder != nil {
		mux.Handle("GET /metrics", recorder.Handler())
	}
}

func registerBatonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/baton/holder", handler.GetBatonHolder)
	mux.HandleFunc("PUT /v1/baton/holder", handler.SetBatonHolder)
	mux.HandleFunc("POST /v1/baton/update", handler.UpdateBaton)
	mux.HandleFunc("GET /v1/baton/history", handler.ListBatonHistory)
	mux.HandleFunc("DELETE /v1/baton/history/{entryID}", handler.DeleteBatonHistoryEntry)
	mux.HandleFunc("GET /v1/teams/search", handler.SearchTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}/latest-match", handler.GetLatestCompetitiveMatch)
}

func registerLedgerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fines", handler.ListFines)
	mux.HandleFunc("POST /v1/fines", handler.AddFine)
	mux.HandleFunc("DELETE /v1/fines", handler.ClearFines)
	mux.HandleFunc("GET /v1/fines/export", handler.ExportFines)
	mux.HandleFunc("POST /v1/fines/import", handler.ImportFines)
	mux.HandleFunc("POST /v1/fines/mark-all-paid", handler.MarkAllFinesPaid)
	mux.HandleFunc("DELETE /v1/fines/{fineID}", handler.DeleteFine)
	mux.HandleFunc("POST /v1/fines/{fineID}/paid", handler.MarkFinePaid)
	mux.HandleFunc("DELETE /v1/fines/{fineID}/paid", handler.MarkFineUnpaid)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.AddPlayer)
	mux.HandleFunc("PATCH /v1/players/{name}/games", handler.UpdatePlayerGames)
	mux.HandleFunc("DELETE /v1/players/{name}", handler.DeletePlayer)

	mux.HandleFunc("GET /v1/fine-reasons", handler.ListFineReasons)
	mux.HandleFunc("POST /v1/fine-reasons", handler.AddFineReason)
	mux.HandleFunc("PATCH /v1/fine-reasons/{reasonID}", handler.UpdateFineReasonAmount)
	mux.HandleFunc("DELETE /v1/fine-reasons/{reasonID}", handler.DeleteFineReason)

	mux.HandleFunc("GET /v1/stats", handler.GetLedgerStats)
	mux.HandleFunc("GET /v1/stats/players/{name}", handler.GetPlayerStats)
}
