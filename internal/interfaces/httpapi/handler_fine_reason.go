package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/booze-baton/internal/usecase"
)

func (h *Handler) ListFineReasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFineReasons")
	defer span.End()

	reasons, err := h.reasonService.ListReasons(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list fine reasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]reasonDTO, 0, len(reasons))
	for _, item := range reasons {
		items = append(items, reasonToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddFineReason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFineReason")
	defer span.End()

	var req addReasonRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.reasonService.AddReason(ctx, adminPIN(r), usecase.AddReasonInput{
		Text:   req.Reason,
		Amount: req.Amount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add fine reason failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, reasonToDTO(item))
}

func (h *Handler) UpdateFineReasonAmount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFineReasonAmount")
	defer span.End()

	var req updateReasonAmountRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	reasonID := strings.TrimSpace(r.PathValue("reasonID"))
	item, err := h.reasonService.UpdateReasonAmount(ctx, adminPIN(r), reasonID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "update fine reason failed", "reason_id", reasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reasonToDTO(item))
}

func (h *Handler) DeleteFineReason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFineReason")
	defer span.End()

	reasonID := strings.TrimSpace(r.PathValue("reasonID"))
	if err := h.reasonService.DeleteReason(ctx, adminPIN(r), reasonID); err != nil {
		h.logger.WarnContext(ctx, "delete fine reason failed", "reason_id", reasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
