package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wosamar/rakuten-tools/internal/engine"
	"github.com/wosamar/rakuten-tools/internal/observability"
	"github.com/wosamar/rakuten-tools/internal/rms"
)

// CatalogSource yields the product snapshot a generation run reads.
type CatalogSource interface {
	Items() []engine.ProductSnapshot
}

// Patcher pushes generated payloads to the marketplace.
type Patcher interface {
	ApplyPayloads(ctx context.Context, payloads map[string]engine.Payload) rms.ApplyResult
}

type CampaignHandler struct {
	Catalog CatalogSource
	Flow    engine.Flow
	Patcher Patcher
}

func NewCampaignHandler(catalog CatalogSource, flow engine.Flow, patcher Patcher) *CampaignHandler {
	return &CampaignHandler{Catalog: catalog, Flow: flow, Patcher: patcher}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// GenerateResponse is the body of a successful generation call.
type GenerateResponse struct {
	Payloads map[string]engine.Payload `json:"payloads"`
	Stats    engine.Stats              `json:"stats"`
}

// Generate runs the payload generation flow over the cached catalog with the
// posted campaign definitions.
func (h *CampaignHandler) Generate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	defs, err := engine.ParseDefinitions(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := h.Catalog.Items()
	if items == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog snapshot not loaded yet")
		return
	}

	start := time.Now()
	payloads, stats, err := h.Flow.Execute(items, defs)
	if err != nil {
		// only raised on malformed campaign input, not product content
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	observability.RecordRun(stats.Generated, stats.Skipped, time.Since(start))

	log.Info().
		Int("total", stats.Total).
		Int("generated", stats.Generated).
		Int("skipped", stats.Skipped).
		Msg("generation run finished")

	writeJSON(w, http.StatusOK, GenerateResponse{Payloads: payloads, Stats: stats})
}

// Apply patches the marketplace with a previously generated payload map.
func (h *CampaignHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var payloads map[string]engine.Payload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		writeError(w, http.StatusBadRequest, "decode payloads: "+err.Error())
		return
	}
	if len(payloads) == 0 {
		writeError(w, http.StatusBadRequest, "no payloads to apply")
		return
	}

	res := h.Patcher.ApplyPayloads(r.Context(), payloads)
	writeJSON(w, http.StatusOK, res)
}
