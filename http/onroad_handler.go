package http

import (
	"net/http"

	"go.uber.org/zap"

	"novated-lease/domain"
	"novated-lease/service"
)

type OnRoadHandler struct {
	estimator *service.OnRoadEstimator
	logger    *zap.Logger
}

func NewOnRoadHandler(estimator *service.OnRoadEstimator, logger *zap.Logger) *OnRoadHandler {
	return &OnRoadHandler{estimator: estimator, logger: logger.Named("onroad")}
}

func (h *OnRoadHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var input domain.OnRoadEstimateInput
	if !decode(w, r, &input) {
		return
	}

	costs, err := h.estimator.Estimate(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, costs)
}
