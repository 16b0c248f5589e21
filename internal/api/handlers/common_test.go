package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historydomain "zbxstats/internal/history/domain"
	entitydomain "zbxstats/internal/shared/entity/domain"
	"zbxstats/internal/shared/validation"
	statsapp "zbxstats/internal/stats/application"
	statsdomain "zbxstats/internal/stats/domain"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "param", err: &paramError{Name: "start", Value: "x"}, want: http.StatusBadRequest},
		{name: "invalid range", err: &statsdomain.InvalidRangeError{Reason: "bad"}, want: http.StatusBadRequest},
		{name: "validation", err: validation.NewValidationError(map[string]string{"host": "required"}, "history"), want: http.StatusBadRequest},
		{name: "no hosts", err: statsapp.ErrNoHosts, want: http.StatusBadRequest},
		{name: "no items", err: fmt.Errorf("query: %w", statsapp.ErrNoItems), want: http.StatusBadRequest},
		{name: "non numeric", err: fmt.Errorf("item: %w", historydomain.ErrNonNumeric), want: http.StatusBadRequest},
		{name: "item not found", err: &statsdomain.NotFoundError{Key: "cpu", Entity: "web-01"}, want: http.StatusNotFound},
		{name: "host not found", err: fmt.Errorf("lookup: %w", entitydomain.ErrHostNotFound), want: http.StatusNotFound},
		{name: "data source", err: &statsdomain.DataSourceError{Err: errors.New("timeout")}, want: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}

func TestGridRequest(t *testing.T) {
	t.Run("points", func(t *testing.T) {
		req, err := gridRequest(url.Values{"point": {"300", "100", "200"}})
		require.NoError(t, err)
		assert.Equal(t, []int64{300, 100, 200}, req.Points)
		assert.Nil(t, req.Start)
		assert.Nil(t, req.SegmentsCount)
	})

	t.Run("range counts boundaries", func(t *testing.T) {
		req, err := gridRequest(url.Values{"start": {"0"}, "end": {"1000"}, "points_count": {"3"}})
		require.NoError(t, err)
		require.NotNil(t, req.Start)
		require.NotNil(t, req.End)
		require.NotNil(t, req.SegmentsCount)
		assert.Equal(t, int64(0), *req.Start)
		assert.Equal(t, int64(1000), *req.End)
		assert.Equal(t, 2, *req.SegmentsCount)
	})

	tests := []struct {
		name  string
		query url.Values
		param string
	}{
		{name: "bad point", query: url.Values{"point": {"1", "x"}}, param: "point"},
		{name: "bad start", query: url.Values{"start": {"yesterday"}}, param: "start"},
		{name: "bad count", query: url.Values{"points_count": {"1.5"}}, param: "points_count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gridRequest(tt.query)
			var perr *paramError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.param, perr.Name)
		})
	}
}
