package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/booze-baton/internal/usecase"
)

func (h *Handler) GetBatonHolder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBatonHolder")
	defer span.End()

	holder, err := h.batonService.CurrentHolder(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get baton holder failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, holderToDTO(holder))
}

func (h *Handler) SetBatonHolder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetBatonHolder")
	defer span.End()

	var req setHolderRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	holder, err := h.batonService.SetHolder(ctx, adminPIN(r), usecase.SetHolderInput{
		TeamID:   req.TeamID,
		TeamName: req.TeamName,
		Country:  req.Country,
		City:     req.City,
		Logo:     req.Logo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set baton holder failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, holderToDTO(holder))
}

func (h *Handler) UpdateBaton(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBaton")
	defer span.End()

	result, err := h.batonService.UpdateBaton(ctx, adminPIN(r))
	if err != nil {
		h.logger.WarnContext(ctx, "update baton failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, updateResultToDTO(result))
}

func (h *Handler) ListBatonHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBatonHistory")
	defer span.End()

	limit, err := parseOptionalInt(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.batonService.ListHistory(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list baton history failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteBatonHistoryEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteBatonHistoryEntry")
	defer span.End()

	entryID := strings.TrimSpace(r.PathValue("entryID"))
	if err := h.batonService.DeleteHistoryEntry(ctx, adminPIN(r), entryID); err != nil {
		h.logger.WarnContext(ctx, "delete baton history entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeams")
	defer span.End()

	query := r.URL.Query().Get("q")
	teams, err := h.batonService.SearchTeams(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "search teams failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamSearchDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamSearchDTO{
			TeamID:   t.TeamID,
			TeamName: t.TeamName,
			Country:  t.Country,
			City:     t.City,
			Logo:     t.Logo,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLatestCompetitiveMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestCompetitiveMatch")
	defer span.End()

	teamID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("teamID")), 10, 64)
	if err != nil || teamID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: teamID must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	match, err := h.batonService.LatestCompetitiveMatch(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "latest competitive match failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if match == nil {
		writeNullSuccess(ctx, w)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(*match))
}
