package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wosamar/rakuten-tools/internal/observability"
)

func Router(h *CampaignHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.Measure)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// apply walks the whole payload map against RMS, so the window is wide
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Post("/v1/campaigns/generate", h.Generate)
	r.Post("/v1/campaigns/apply", h.Apply)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", observability.MetricsHandler())
	return r
}
