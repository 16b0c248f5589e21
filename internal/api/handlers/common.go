package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	api "zbxstats/internal/api/application"
	historydomain "zbxstats/internal/history/domain"
	entitydomain "zbxstats/internal/shared/entity/domain"
	"zbxstats/internal/shared/validation"
	statsapp "zbxstats/internal/stats/application"
	statsdomain "zbxstats/internal/stats/domain"
)

// getLogger extracts the logger from the request context
// Falls back to slog.Default() if not found
func getLogger(r *http.Request) *slog.Logger {
	if ctxLogger := r.Context().Value("logger"); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondJSONError sends a JSON error response
func respondJSONError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, api.ErrorResponse{Error: message})
}

// respondError maps service errors onto HTTP statuses
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		getLogger(r).Error("Request failed", "path", r.URL.Path, "err", err)
	} else {
		getLogger(r).Debug("Request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	respondJSONError(w, status, err.Error())
}

func errorStatus(err error) int {
	var (
		rangeErr    *statsdomain.InvalidRangeError
		notFoundErr *statsdomain.NotFoundError
		sourceErr   *statsdomain.DataSourceError
		paramErr    *paramError
	)
	switch {
	case errors.As(err, &paramErr),
		errors.As(err, &rangeErr),
		errors.Is(err, &validation.ValidationError{}),
		errors.Is(err, statsapp.ErrNoHosts),
		errors.Is(err, statsapp.ErrNoItems),
		errors.Is(err, historydomain.ErrNonNumeric):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr),
		errors.Is(err, entitydomain.ErrHostNotFound):
		return http.StatusNotFound
	case errors.As(err, &sourceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// paramError reports a malformed query parameter
type paramError struct {
	Name  string
	Value string
}

func (e *paramError) Error() string {
	return "invalid value " + strconv.Quote(e.Value) + " for parameter " + strconv.Quote(e.Name)
}

// optionalInt64 parses an optional integer query parameter
func optionalInt64(q url.Values, name string) (*int64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &paramError{Name: name, Value: raw}
	}
	return &v, nil
}

// int64List parses every occurrence of a repeated integer parameter
func int64List(q url.Values, name string) ([]int64, error) {
	raw := q[name]
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]int64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &paramError{Name: name, Value: s}
		}
		out[i] = v
	}
	return out, nil
}

// gridRequest reads either repeated point parameters or start, end and points_count
func gridRequest(q url.Values) (statsdomain.GridRequest, error) {
	var req statsdomain.GridRequest
	var err error
	if req.Points, err = int64List(q, "point"); err != nil {
		return req, err
	}
	if req.Start, err = optionalInt64(q, "start"); err != nil {
		return req, err
	}
	if req.End, err = optionalInt64(q, "end"); err != nil {
		return req, err
	}
	count, err := optionalInt64(q, "points_count")
	if err != nil {
		return req, err
	}
	if count != nil {
		// points_count counts boundaries, the oldest included
		n := int(*count) - 1
		req.SegmentsCount = &n
	}
	return req, nil
}
