package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetLedgerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLedgerStats")
	defer span.End()

	overview, err := h.statsService.Overview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "ledger stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ledgerOverviewToDTO(overview))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	stats, err := h.statsService.PlayerStats(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "player stats failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerStatsToDTO(stats))
}
