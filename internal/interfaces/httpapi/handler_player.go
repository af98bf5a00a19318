package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/booze-baton/internal/domain/player"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.ListPlayers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req addPlayerRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.AddPlayer(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayerGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerGames")
	defer span.End()

	var req updateGamesRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	item, err := h.playerService.UpdateGames(ctx, name, player.GamesField(req.Field), *req.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "update player games failed", "name", name, "field", req.Field, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	removed, err := h.playerService.DeletePlayer(ctx, adminPIN(r), name)
	if err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deletePlayerDTO{Name: name, FinesRemoved: removed})
}
