package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "zbxstats/internal/catalog/domain"
	"zbxstats/internal/history/domain"
	"zbxstats/internal/shared/validation"
	statsdomain "zbxstats/internal/stats/domain"
)

func testItems() *mockItems {
	return &mockItems{items: []catalogdomain.Item{
		{ID: 1, Host: "web-01", Key: "cpu", ValueType: catalogdomain.ValueFloat},
		{ID: 2, Host: "web-01", Key: "net.in", ValueType: catalogdomain.ValueUnsigned},
		{ID: 3, Host: "web-01", Key: "agent.version", ValueType: catalogdomain.ValueCharacter},
	}}
}

func TestRecorder_Record(t *testing.T) {
	items := testItems()
	store := newMockStore()
	rec := NewRecorder(nopLogger{}, items, store)
	rec.now = func() time.Time { return time.Unix(5000, 0) }

	batch, err := rec.Record(context.Background(), []IngestSample{
		{Host: "web-01", Item: "cpu", Clock: 100, Value: 1.5},
		{Host: "web-01", Item: "cpu", Clock: 200, Value: 2.5},
		{Host: "web-01", Item: "net.in", Value: 1024},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, batch.ID)
	assert.Equal(t, 3, batch.Accepted)
	assert.Equal(t, 2, items.lookups, "each item is resolved once per batch")
	assert.Equal(t, []domain.Sample{
		{ItemID: 1, Clock: 100, Value: 1.5},
		{ItemID: 1, Clock: 200, Value: 2.5},
	}, store.inserted[statsdomain.KindFloat])
	assert.Equal(t, []domain.Sample{{ItemID: 2, Clock: 5000, Value: 1024}}, store.inserted[statsdomain.KindInteger])
}

func TestRecorder_Record_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		samples []IngestSample
		check   func(t *testing.T, err error)
	}{
		{
			name:    "empty batch",
			samples: nil,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, &validation.ValidationError{})
			},
		},
		{
			name:    "missing host",
			samples: []IngestSample{{Item: "cpu", Clock: 1}},
			check: func(t *testing.T, err error) {
				var verr *validation.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "history.0", verr.Path)
				assert.Contains(t, verr.Problems, "host")
			},
		},
		{
			name:    "unknown item",
			samples: []IngestSample{{Host: "web-01", Item: "mem", Clock: 1}},
			check: func(t *testing.T, err error) {
				var notFound *statsdomain.NotFoundError
				assert.ErrorAs(t, err, &notFound)
			},
		},
		{
			name:    "non numeric item",
			samples: []IngestSample{{Host: "web-01", Item: "agent.version", Clock: 1}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNonNumeric)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			_, err := NewRecorder(nopLogger{}, testItems(), store).Record(context.Background(), tt.samples)
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, store.inserted)
		})
	}
}

func TestRecorder_Record_StoreFailure(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("disk full")

	_, err := NewRecorder(nopLogger{}, testItems(), store).Record(context.Background(), []IngestSample{{Host: "web-01", Item: "cpu", Clock: 1}})
	assert.ErrorContains(t, err, "disk full")
}
