package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var workflowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vendor_product_workflows_total",
	Help: "Количество выполненных сценариев по результату",
}, []string{"workflow", "outcome"})

// outcome метка результата сценария с низкой кардинальностью
func outcome(err error) string {
	var (
		badRequest *BadRequestError
		partial    *PartialCompletionError
		upstream   *UpstreamError
	)

	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFoundOrForbidden):
		return "not_found_or_forbidden"
	case errors.As(err, &badRequest):
		return "bad_request"
	case errors.As(err, &partial):
		return "partial_completion"
	case errors.As(err, &upstream):
		return "upstream_error"
	default:
		return "error"
	}
}
