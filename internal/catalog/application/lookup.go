package application

import (
	"context"
	"errors"
	"time"

	"zbxstats/internal/catalog/domain"
	statsdomain "zbxstats/internal/stats/domain"
)

// Lookup serves metric descriptors to the statistics engine
type Lookup struct {
	repo         domain.Repository
	defaultDelay int64
}

func NewLookup(repo domain.Repository) *Lookup {
	return &Lookup{repo: repo}
}

// Lookup resolves an item key on a host
func (l *Lookup) Lookup(ctx context.Context, metricKey, entityID string) (statsdomain.MetricDescriptor, error) {
	item, err := l.repo.GetItem(ctx, entityID, metricKey)
	if errors.Is(err, domain.ErrItemNotFound) {
		return statsdomain.MetricDescriptor{}, &statsdomain.NotFoundError{Key: metricKey, Entity: entityID}
	}
	if err != nil {
		return statsdomain.MetricDescriptor{}, err
	}
	desc, err := item.Descriptor()
	if err != nil {
		return statsdomain.MetricDescriptor{}, err
	}
	if desc.SampleDelaySeconds == 0 {
		desc.SampleDelaySeconds = l.defaultDelay
	}
	return desc, nil
}

// WithDefaultDelay sets the interval reported for items recorded with delay 0.
// Without it the engine falls back to its own default.
func (l *Lookup) WithDefaultDelay(d time.Duration) *Lookup {
	l.defaultDelay = int64(d / time.Second)
	return l
}
