package http

import (
	"net/http"

	"go.uber.org/zap"

	"novated-lease/domain"
	"novated-lease/service"
)

type QuoteHandler struct {
	service *service.QuoteService
	logger  *zap.Logger
}

func NewQuoteHandler(service *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, logger: logger.Named("quote")}
}

func (h *QuoteHandler) AnalyzeQuote(w http.ResponseWriter, r *http.Request) {
	var input domain.QuoteAnalysisInput
	if !decode(w, r, &input) {
		return
	}

	analysis, err := h.service.AnalyzeQuote(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}
