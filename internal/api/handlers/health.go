package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/go-chi/render"
)

const healthTimeout = 2 * time.Second

// HealthHandler отвечает на проверки живости и готовности
type HealthHandler struct {
	storage interfaces.StoragePort
	logger  interfaces.LoggerPort
}

func NewHealthHandler(storage interfaces.StoragePort, logger interfaces.LoggerPort) *HealthHandler {
	return &HealthHandler{storage: storage, logger: logger}
}

// Health возвращает 503, если хранилище не отвечает
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	state := "ok"

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := h.storage.Ping(ctx); err != nil {
			h.logger.ErrorWithContext(r.Context(), "Хранилище недоступно",
				interfaces.LogField{Key: "error", Value: err.Error()})
			status = http.StatusServiceUnavailable
			state = "storage unavailable"
		}
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"status": state})
}
