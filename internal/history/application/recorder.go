package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	catalogdomain "zbxstats/internal/catalog/domain"
	"zbxstats/internal/history/domain"
	"zbxstats/internal/infrastructure/telemetry"
	"zbxstats/internal/shared/logger"
	"zbxstats/internal/shared/validation"
	statsdomain "zbxstats/internal/stats/domain"
)

// IngestSample is one value pushed for an item of a host. A zero Clock is
// stamped with the time of the call.
type IngestSample struct {
	Host  string
	Item  string
	Clock int64
	Value float64
}

// Batch identifies one accepted ingest call
type Batch struct {
	ID       uuid.UUID
	Accepted int
}

// Recorder writes pushed samples into the history tables
type Recorder struct {
	logger logger.Logger
	items  catalogdomain.Repository
	repo   domain.Repository
	now    func() time.Time
}

func NewRecorder(logger logger.Logger, items catalogdomain.Repository, repo domain.Repository) *Recorder {
	return &Recorder{
		logger: logger,
		items:  items,
		repo:   repo,
		now:    time.Now,
	}
}

// Record validates the whole batch before anything is written, then stores it
// in a single transaction
func (r *Recorder) Record(ctx context.Context, samples []IngestSample) (Batch, error) {
	if len(samples) == 0 {
		return Batch{}, validation.NewValidationError(map[string]string{"samples": "at least one sample is required"}, "history")
	}

	type itemRef struct{ host, key string }
	resolved := make(map[itemRef]*catalogdomain.Item)
	byKind := make(map[statsdomain.MetricKind][]domain.Sample)
	now := r.now().Unix()

	for i, s := range samples {
		problems := make(map[string]string)
		if s.Host == "" {
			problems["host"] = "host is required"
		}
		if s.Item == "" {
			problems["item"] = "item is required"
		}
		if s.Clock < 0 {
			problems["clock"] = "clock must not be negative"
		}
		if len(problems) > 0 {
			return Batch{}, validation.NewValidationError(problems, "history", strconv.Itoa(i))
		}

		ref := itemRef{host: s.Host, key: s.Item}
		item, ok := resolved[ref]
		if !ok {
			var err error
			item, err = r.items.GetItem(ctx, s.Host, s.Item)
			if errors.Is(err, catalogdomain.ErrItemNotFound) {
				return Batch{}, &statsdomain.NotFoundError{Key: s.Item, Entity: s.Host}
			}
			if err != nil {
				return Batch{}, err
			}
			if !item.Kind().Numeric() {
				return Batch{}, fmt.Errorf("item %q on %q: %w", s.Item, s.Host, domain.ErrNonNumeric)
			}
			resolved[ref] = item
		}

		clock := s.Clock
		if clock == 0 {
			clock = now
		}
		kind := item.Kind()
		byKind[kind] = append(byKind[kind], domain.Sample{ItemID: item.ID, Clock: clock, Value: s.Value})
	}

	batch := Batch{ID: uuid.New()}
	n, err := r.repo.InsertBatch(ctx, byKind)
	if err != nil {
		return Batch{}, fmt.Errorf("batch %s: %w", batch.ID, err)
	}
	batch.Accepted = int(n)

	telemetry.SamplesIngestedTotal.Add(float64(batch.Accepted))
	r.logger.Debug("Recorded history batch", "batch", batch.ID, "samples", batch.Accepted)
	return batch, nil
}
