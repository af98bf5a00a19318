package httpapi

import (
	"net/http"

	"github.com/riskibarqy/booze-baton/internal/platform/logging"
	"github.com/riskibarqy/booze-baton/internal/platform/metrics"
)

func NewRouter(
	handler *Handler,
	recorder *metrics.Recorder,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, recorder)
	registerBatonRoutes(mux, handler)
	registerLedgerRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, recorder, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}
