package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/booze-baton/internal/usecase"
)

const maxCSVUploadBytes = 5 << 20

func (h *Handler) ListFines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFines")
	defer span.End()

	query := r.URL.Query()
	paid, err := parseOptionalBool(query.Get("paid"), "paid")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := parseOptionalInt(query.Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fines, err := h.fineService.ListFines(ctx, usecase.ListFinesInput{
		PlayerName: query.Get("player"),
		Reason:     query.Get("reason"),
		Paid:       paid,
		From:       query.Get("from"),
		To:         query.Get("to"),
		Limit:      limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list fines failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fineDTO, 0, len(fines))
	for _, f := range fines {
		items = append(items, fineToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddFine(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFine")
	defer span.End()

	var req addFineRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fineService.AddFine(ctx, usecase.AddFineInput{
		PlayerName: req.PlayerName,
		Reason:     req.Reason,
		Amount:     req.Amount,
		Date:       req.Date,
		PaidDate:   req.PaidDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add fine failed", "player", req.PlayerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fineToDTO(item))
}

func (h *Handler) MarkFinePaid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkFinePaid")
	defer span.End()

	var req paidDateRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	fineID := strings.TrimSpace(r.PathValue("fineID"))
	item, err := h.fineService.MarkPaid(ctx, fineID, req.PaidDate)
	if err != nil {
		h.logger.WarnContext(ctx, "mark fine paid failed", "fine_id", fineID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fineToDTO(item))
}

func (h *Handler) MarkFineUnpaid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkFineUnpaid")
	defer span.End()

	fineID := strings.TrimSpace(r.PathValue("fineID"))
	item, err := h.fineService.MarkUnpaid(ctx, fineID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark fine unpaid failed", "fine_id", fineID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fineToDTO(item))
}

func (h *Handler) MarkAllFinesPaid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkAllFinesPaid")
	defer span.End()

	var req paidDateRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	count, err := h.fineService.MarkAllPaid(ctx, req.PaidDate)
	if err != nil {
		h.logger.WarnContext(ctx, "mark all fines paid failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, countDTO{Count: count})
}

func (h *Handler) DeleteFine(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFine")
	defer span.End()

	fineID := strings.TrimSpace(r.PathValue("fineID"))
	if err := h.fineService.DeleteFine(ctx, fineID); err != nil {
		h.logger.WarnContext(ctx, "delete fine failed", "fine_id", fineID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearFines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearFines")
	defer span.End()

	count, err := h.fineService.ClearAll(ctx, adminPIN(r))
	if err != nil {
		h.logger.WarnContext(ctx, "clear fines failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fines cleared", "count", count)
	writeSuccess(ctx, w, http.StatusOK, countDTO{Count: count})
}

func (h *Handler) ExportFines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportFines")
	defer span.End()

	body, err := h.csvService.Export(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export fines failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("fines-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ImportFines accepts either a multipart upload in the "file" field or a raw CSV body.
func (h *Handler) ImportFines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportFines")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxCSVUploadBytes)

	var source io.Reader = r.Body
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: multipart field \"file\" is required: %v", usecase.ErrInvalidInput, err))
			return
		}
		defer file.Close()
		source = file
	}

	result, err := h.csvService.Import(ctx, source)
	if err != nil {
		h.logger.WarnContext(ctx, "import fines failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fines imported", "imported", result.Imported, "skipped", result.Skipped)
	writeSuccess(ctx, w, http.StatusOK, importResultDTO{Imported: result.Imported, Skipped: result.Skipped})
}
