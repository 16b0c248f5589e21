package handlers

import (
	"encoding/json"
	"net/http"

	api "zbxstats/internal/api/application"
	historyapp "zbxstats/internal/history/application"
)

// maxIngestBody bounds the ingest payload
const maxIngestBody = 8 << 20

// HistoryHandler accepts pushed history values
type HistoryHandler struct {
	recorder *historyapp.Recorder
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(recorder *historyapp.Recorder) *HistoryHandler {
	return &HistoryHandler{
		recorder: recorder,
	}
}

// Ingest handles POST /api/v1/history
// @Summary      Push history values
// @Description  Store values for existing numeric items. The batch is validated as a whole;
// @Description  a zero clock is stamped with the receive time.
// @Tags         history
// @Accept       json
// @Produce      json
// @Param        request  body      application.IngestRequest  true  "Samples"
// @Success      201      {object}  application.IngestResponse
// @Failure      400      {object}  application.ErrorResponse
// @Failure      404      {object}  application.ErrorResponse
// @Failure      500      {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /history [post]
func (h *HistoryHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	var req api.IngestRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logger.Warn("Invalid ingest payload", "err", err)
		respondJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	batch, err := h.recorder.Record(r.Context(), req.ToIngestSamples())
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger.Info("Accepted history batch", "batch", batch.ID, "samples", batch.Accepted)
	respondJSON(w, http.StatusCreated, api.ToIngestResponse(batch))
}
