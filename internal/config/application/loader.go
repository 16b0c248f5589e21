package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	catalogdomain "zbxstats/internal/catalog/domain"
	"zbxstats/internal/config/domain"
	entitydomain "zbxstats/internal/shared/entity/domain"
	"zbxstats/internal/shared/logger"
	"zbxstats/internal/shared/validation"
)

// Loader reads the configuration file and seeds its inventory into the store
type Loader struct {
	logger logger.Logger
	hosts  entitydomain.Repository
	items  catalogdomain.Repository
}

// NewLoader creates a new configuration loader
func NewLoader(logger logger.Logger, hosts entitydomain.Repository, items catalogdomain.Repository) *Loader {
	return &Loader{
		logger: logger,
		hosts:  hosts,
		items:  items,
	}
}

// Load reads and validates the file at path. An empty path yields the defaults.
func (l *Loader) Load(ctx context.Context, path string) (domain.Config, error) {
	if path == "" {
		l.logger.Debug("No config file given, using defaults")
		return domain.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(ctx, f)
	if err != nil {
		return domain.Config{}, err
	}
	l.logger.Debug("Loaded config file", "path", path, "hosts", len(cfg.Inventory.Hosts))
	return cfg, nil
}

// Decode parses YAML over the defaults. Unknown keys are rejected.
func Decode(ctx context.Context, r io.Reader) (domain.Config, error) {
	cfg := domain.Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(ctx); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Seed upserts every inventory host and its items
func (l *Loader) Seed(ctx context.Context, inv domain.Inventory) error {
	for i, hc := range inv.Hosts {
		host := entitydomain.NewHost(hc.Name, hc.VisibleName)
		if hc.Unmonitored {
			host.Status = entitydomain.HostUnmonitored
		}
		hostID, err := l.hosts.UpsertHost(ctx, *host)
		if err != nil {
			return fmt.Errorf("failed to seed host %q: %w", hc.Name, err)
		}

		for j, ic := range hc.Items {
			item, err := ic.Item(hostID)
			if err != nil {
				return validation.NewValidationError(map[string]string{"type": err.Error()},
					fmt.Sprintf("inventory.hosts.%d", i), "items", fmt.Sprint(j))
			}
			if _, err := l.items.UpsertItem(ctx, item); err != nil {
				return fmt.Errorf("failed to seed item %q on %q: %w", ic.Key, hc.Name, err)
			}
		}
		l.logger.Info("Seeded host", "host", hc.Name, "items", len(hc.Items))
	}
	return nil
}
