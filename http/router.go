package http

import (
	"net/http"

	"go.uber.org/zap"

	"novated-lease/service"
)

type Handlers struct {
	Lease  *LeaseHandler
	BYO    *BYOHandler
	OnRoad *OnRoadHandler
	Quote  *QuoteHandler
	Lead   *LeadHandler
}

// NewRouter registers every route behind the rate limiter. The health check
// is not rate limited.
func NewRouter(h Handlers, limiter *RateLimiter, logger *zap.Logger) *http.ServeMux {
	limited := func(f http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, logger.Named("ratelimit"), f)
	}

	mux := http.NewServeMux()
	mux.Handle("/lease/calculate", limited(h.Lease.CalculateLease))
	mux.Handle("/byo/calculate", limited(h.BYO.CalculateBYO))
	mux.Handle("/byo/compare", limited(h.BYO.Compare))
	mux.Handle("/onroad/estimate", limited(h.OnRoad.Estimate))
	mux.Handle("/quote/analyze", limited(h.Quote.AnalyzeQuote))
	mux.Handle("/leads", limited(h.Lead.CaptureLead))
	mux.HandleFunc("/healthz", Health)
	return mux
}

type healthResponse struct {
	Status        string `json:"status"`
	TablesVersion string `json:"tablesVersion"`
}

func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", TablesVersion: service.TablesVersion})
}
