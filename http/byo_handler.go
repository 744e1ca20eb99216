package http

import (
	"net/http"

	"go.uber.org/zap"

	"novated-lease/domain"
	"novated-lease/service"
)

type BYOHandler struct {
	service *service.BYOService
	logger  *zap.Logger
}

func NewBYOHandler(service *service.BYOService, logger *zap.Logger) *BYOHandler {
	return &BYOHandler{service: service, logger: logger.Named("byo")}
}

func (h *BYOHandler) CalculateBYO(w http.ResponseWriter, r *http.Request) {
	var input domain.BYOInput
	if !decode(w, r, &input) {
		return
	}

	result, err := h.service.CalculateBYO(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *BYOHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.ComparisonInput
	if !decode(w, r, &input) {
		return
	}

	report, err := h.service.Compare(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
