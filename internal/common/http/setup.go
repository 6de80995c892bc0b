package http

import (
	"net/http"

	"github.com/inkwellhq/inkwell/internal/common/constants"
	"github.com/inkwellhq/inkwell/internal/common/httpmetrics"
	"github.com/inkwellhq/inkwell/internal/common/logger"
)

// BuildBaseHandler wraps the application handler with the shared middleware
// chain: security headers, panic recovery, trace IDs, request size cap and
// request metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metricsCollector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metricsCollector.Wrap(handler)))))
}
