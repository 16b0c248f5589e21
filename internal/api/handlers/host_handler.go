package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	api "zbxstats/internal/api/application"
)

// HostHandler handles host queries
type HostHandler struct {
	service *api.HostService
}

// NewHostHandler creates a new host handler
func NewHostHandler(service *api.HostService) *HostHandler {
	return &HostHandler{
		service: service,
	}
}

// ListHosts handles GET /api/v1/hosts
// @Summary      List monitored hosts
// @Description  Get monitored hosts, optionally restricted to the given names
// @Tags         hosts
// @Accept       json
// @Produce      json
// @Param        host  query     []string  false  "Host technical name"  collectionFormat(multi)
// @Success      200   {array}   application.HostResponse
// @Failure      500   {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /hosts [get]
func (h *HostHandler) ListHosts(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	hosts, err := h.service.ListHosts(r.Context(), r.URL.Query()["host"])
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger.Debug("Listed hosts", "count", len(hosts))
	respondJSON(w, http.StatusOK, hosts)
}

// GetHost handles GET /api/v1/hosts/{name}
// @Summary      Get host by name
// @Description  Get a specific host by its technical name
// @Tags         hosts
// @Accept       json
// @Produce      json
// @Param        name  path      string  true  "Host technical name"
// @Success      200   {object}  application.HostResponse
// @Failure      404   {object}  application.ErrorResponse
// @Failure      500   {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /hosts/{name} [get]
func (h *HostHandler) GetHost(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	name := chi.URLParam(r, "name")
	if name == "" {
		logger.Warn("Missing host name in request")
		respondJSONError(w, http.StatusBadRequest, "Missing host name")
		return
	}

	host, err := h.service.GetHost(r.Context(), name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger.Debug("Retrieved host", "name", name)
	respondJSON(w, http.StatusOK, host)
}
