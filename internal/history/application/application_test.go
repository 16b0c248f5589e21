package application

import (
	"context"
	"errors"
	"sync"

	catalogdomain "zbxstats/internal/catalog/domain"
	"zbxstats/internal/history/domain"
	statsdomain "zbxstats/internal/stats/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

type mockItems struct {
	items   []catalogdomain.Item
	lookups int
	err     error
}

func (m *mockItems) GetItem(ctx context.Context, host, key string) (*catalogdomain.Item, error) {
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	for _, item := range m.items {
		if item.Host == host && item.Key == key {
			return &item, nil
		}
	}
	return nil, catalogdomain.ErrItemNotFound
}

func (m *mockItems) ListItems(ctx context.Context, host string) ([]catalogdomain.Item, error) {
	return m.items, m.err
}

func (m *mockItems) UpsertItem(ctx context.Context, item catalogdomain.Item) (int64, error) {
	return 0, errors.New("not implemented")
}

type rollupCall struct {
	kind     statsdomain.MetricKind
	from, to int64
}

type purgeCall struct {
	itemID int64
	before int64
}

type mockStore struct {
	mu       sync.Mutex
	inserted map[statsdomain.MetricKind][]domain.Sample
	rollups  []rollupCall
	purges   []purgeCall
	err      error
}

func newMockStore() *mockStore {
	return &mockStore{inserted: make(map[statsdomain.MetricKind][]domain.Sample)}
}

func (m *mockStore) OpenCursor(ctx context.Context, itemID int64, kind statsdomain.MetricKind, table statsdomain.Table, from, to int64) (statsdomain.Cursor, error) {
	return nil, errors.New("not implemented")
}

func (m *mockStore) Insert(ctx context.Context, kind statsdomain.MetricKind, samples []domain.Sample) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.inserted[kind] = append(m.inserted[kind], samples...)
	return int64(len(samples)), nil
}

func (m *mockStore) InsertBatch(ctx context.Context, batch map[statsdomain.MetricKind][]domain.Sample) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for kind, samples := range batch {
		m.inserted[kind] = append(m.inserted[kind], samples...)
		n += int64(len(samples))
	}
	return n, nil
}

func (m *mockStore) RollupTrends(ctx context.Context, kind statsdomain.MetricKind, from, to int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.rollups = append(m.rollups, rollupCall{kind: kind, from: from, to: to})
	return 1, nil
}

func (m *mockStore) PurgeHistory(ctx context.Context, kind statsdomain.MetricKind, itemID, before int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purges = append(m.purges, purgeCall{itemID: itemID, before: before})
	return 2, nil
}

func (m *mockStore) Extremum(ctx context.Context, itemID int64, kind statsdomain.MetricKind, table statsdomain.Table, method domain.Method, from, to int64) (*float64, error) {
	return nil, nil
}

func (m *mockStore) rollupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rollups)
}
