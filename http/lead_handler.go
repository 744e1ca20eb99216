package http

import (
	"net/http"

	"go.uber.org/zap"

	"novated-lease/domain"
	"novated-lease/service"
)

type LeadHandler struct {
	service *service.LeadService
	logger  *zap.Logger
}

func NewLeadHandler(service *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{service: service, logger: logger.Named("lead")}
}

// CaptureLead answers 201 for every valid lead, saved or not.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	var input domain.LeadInput
	if !decode(w, r, &input) {
		return
	}

	result, err := h.service.Capture(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
