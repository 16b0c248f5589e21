package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	api "zbxstats/internal/api/application"
	historydomain "zbxstats/internal/history/domain"
	statsapp "zbxstats/internal/stats/application"
)

// StatsHandler serves resampled and aggregated item statistics
type StatsHandler struct {
	stats *statsapp.Service
	hosts *api.HostService
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(stats *statsapp.Service, hosts *api.HostService) *StatsHandler {
	return &StatsHandler{
		stats: stats,
		hosts: hosts,
	}
}

// HostItemsHistory handles GET /api/v1/hosts/{name}/items_history
// @Summary      Item history of one host
// @Description  Resample items of a monitored host onto the requested points. Give either repeated point
// @Description  parameters or start, end and points_count. Byte values are reported in megabytes.
// @Tags         statistics
// @Produce      json
// @Param        name          path      string    true   "Host technical name"
// @Param        item          query     []string  true   "Item key"  collectionFormat(multi)
// @Param        point         query     []int     false  "Sample point timestamp"  collectionFormat(multi)
// @Param        start         query     int       false  "Oldest timestamp"
// @Param        end           query     int       false  "Newest timestamp"
// @Param        points_count  query     int       false  "Number of points from start to end"
// @Success      200           {array}   application.ItemPointResponse
// @Failure      400           {object}  application.ErrorResponse
// @Failure      404           {object}  application.ErrorResponse
// @Failure      502           {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /hosts/{name}/items_history [get]
func (h *StatsHandler) HostItemsHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	host, err := h.hosts.GetHost(r.Context(), name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !host.Monitored {
		respondJSONError(w, http.StatusConflict, "Host has to be monitored to get items history")
		return
	}

	h.itemsHistory(w, r, []string{name})
}

// ItemsHistory handles GET /api/v1/items_history
// @Summary      Item history summed over hosts
// @Description  Resample items on every matching monitored host and sum the series point by point.
// @Description  Without host parameters all monitored hosts are used.
// @Tags         statistics
// @Produce      json
// @Param        host          query     []string  false  "Host technical name"  collectionFormat(multi)
// @Param        item          query     []string  true   "Item key"  collectionFormat(multi)
// @Param        point         query     []int     false  "Sample point timestamp"  collectionFormat(multi)
// @Param        start         query     int       false  "Oldest timestamp"
// @Param        end           query     int       false  "Newest timestamp"
// @Param        points_count  query     int       false  "Number of points from start to end"
// @Success      200           {array}   application.ItemPointResponse
// @Failure      400           {object}  application.ErrorResponse
// @Failure      404           {object}  application.ErrorResponse
// @Failure      502           {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /items_history [get]
func (h *StatsHandler) ItemsHistory(w http.ResponseWriter, r *http.Request) {
	h.itemsHistory(w, r, r.URL.Query()["host"])
}

func (h *StatsHandler) itemsHistory(w http.ResponseWriter, r *http.Request, hosts []string) {
	logger := getLogger(r)
	q := r.URL.Query()

	grid, err := gridRequest(q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	points, err := h.stats.ItemsHistory(r.Context(), statsapp.HistoryQuery{
		ItemKeys: q["item"],
		Hosts:    hosts,
		Grid:     grid,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger.Debug("Served items history", "items", len(q["item"]), "points", len(points))
	respondJSON(w, http.StatusOK, api.ToItemPointResponses(points))
}

// ItemsAggregatedValues handles GET /api/v1/items_aggregated_values
// @Summary      Aggregated item values
// @Description  MIN or MAX of each item over a period per host, summed over hosts.
// @Description  Hosts without data contribute 0. The period defaults to the last hour.
// @Tags         statistics
// @Produce      json
// @Param        host    query     []string  false  "Host technical name"  collectionFormat(multi)
// @Param        item    query     []string  true   "Item key"  collectionFormat(multi)
// @Param        start   query     int       false  "Start of the period"
// @Param        end     query     int       false  "End of the period"
// @Param        method  query     string    false  "Aggregation method"  Enums(MIN, MAX)  default(MAX)
// @Success      200     {object}  map[string]number
// @Failure      400     {object}  application.ErrorResponse
// @Failure      502     {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /items_aggregated_values [get]
func (h *StatsHandler) ItemsAggregatedValues(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)
	q := r.URL.Query()

	method, err := historydomain.ParseMethod(q.Get("method"))
	if err != nil {
		respondError(w, r, &paramError{Name: "method", Value: q.Get("method")})
		return
	}
	start, err := optionalInt64(q, "start")
	if err != nil {
		respondError(w, r, err)
		return
	}
	end, err := optionalInt64(q, "end")
	if err != nil {
		respondError(w, r, err)
		return
	}

	values, err := h.stats.AggregatedValues(r.Context(), statsapp.AggregatedValuesQuery{
		ItemKeys: q["item"],
		Hosts:    q["host"],
		Start:    start,
		End:      end,
		Method:   method,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger.Debug("Served aggregated values", "items", len(values), "method", method)
	respondJSON(w, http.StatusOK, values)
}
