package http

import (
	"net/http"

	"go.uber.org/zap"

	"novated-lease/domain"
	"novated-lease/service"
)

type LeaseHandler struct {
	service *service.LeaseService
	logger  *zap.Logger
}

func NewLeaseHandler(service *service.LeaseService, logger *zap.Logger) *LeaseHandler {
	return &LeaseHandler{service: service, logger: logger.Named("lease")}
}

func (h *LeaseHandler) CalculateLease(w http.ResponseWriter, r *http.Request) {
	var input domain.LeaseInput
	if !decode(w, r, &input) {
		return
	}

	result, err := h.service.CalculateLease(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
