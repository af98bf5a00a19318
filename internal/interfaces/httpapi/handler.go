package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
	"github.com/riskibarqy/booze-baton/internal/usecase"
)

const maxJSONBodyBytes = 1 << 20

type Handler struct {
	batonService  *usecase.BatonService
	fineService   *usecase.FineService
	csvService    *usecase.FineCSVService
	playerService *usecase.PlayerService
	reasonService *usecase.FineReasonService
	statsService  *usecase.LedgerStatsService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	batonService *usecase.BatonService,
	fineService *usecase.FineService,
	csvService *usecase.FineCSVService,
	playerService *usecase.PlayerService,
	reasonService *usecase.FineReasonService,
	statsService *usecase.LedgerStatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		batonService:  batonService,
		fineService:   fineService,
		csvService:    csvService,
		playerService: playerService,
		reasonService: reasonService,
		statsService:  statsService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeJSON reads a JSON body into dst and validates it. An empty body is accepted only when optional is set.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any, optional bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxJSONBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func adminPIN(r *http.Request) string {
	return r.Header.Get(adminPINHeader)
}

func parseOptionalInt(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func parseOptionalBool(raw, name string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", usecase.ErrInvalidInput, name)
	}
	return &value, nil
}
