package domain

import (
	"context"
	"fmt"
	"strconv"
	"time"

	catalogdomain "zbxstats/internal/catalog/domain"
	"zbxstats/internal/shared/validation"
)

// Config is the contents of the YAML configuration file
type Config struct {
	Engine       EngineConfig       `yaml:"engine"`
	Housekeeping HousekeepingConfig `yaml:"housekeeping"`
	Inventory    Inventory          `yaml:"inventory"`
}

// EngineConfig tunes the statistics engine
type EngineConfig struct {
	Concurrency int `yaml:"concurrency"`
	// DefaultDelay stands in for items whose recording interval is 0.
	DefaultDelay time.Duration `yaml:"default_delay"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// HousekeepingConfig controls trend rollup and history purging
type HousekeepingConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// Inventory lists hosts and items seeded into the store at startup
type Inventory struct {
	Hosts []HostConfig `yaml:"hosts"`
}

type HostConfig struct {
	Name        string       `yaml:"name"`
	VisibleName string       `yaml:"visible_name"`
	Unmonitored bool         `yaml:"unmonitored"`
	Items       []ItemConfig `yaml:"items"`
}

type ItemConfig struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	// Type is one of float, unsigned, character, log or text.
	Type    string `yaml:"type"`
	Units   string `yaml:"units"`
	History string `yaml:"history"`
	Delay   string `yaml:"delay"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Engine: EngineConfig{
			Concurrency:  4,
			DefaultDelay: 15 * time.Minute,
			QueryTimeout: 10 * time.Second,
		},
		Housekeeping: HousekeepingConfig{
			Enabled:  true,
			Interval: time.Hour,
		},
	}
}

func (c *EngineConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string)
	if c.Concurrency < 1 {
		problems["concurrency"] = "concurrency must be at least 1"
	}
	if c.DefaultDelay < time.Second {
		problems["default_delay"] = "default_delay must be at least 1s"
	}
	if c.QueryTimeout < 0 {
		problems["query_timeout"] = "query_timeout cannot be negative"
	}
	return problems
}

func (c *HousekeepingConfig) Valid(ctx context.Context) map[string]string {
	if c.Enabled && c.Interval < time.Minute {
		return map[string]string{"interval": "interval must be at least 1m"}
	}
	return nil
}

func (c *HostConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string)
	if err := validation.CheckName(c.Name); err != nil {
		problems["name"] = err.Error()
	}
	return problems
}

func (c *ItemConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string)
	if c.Key == "" {
		problems["key"] = "key is required"
	}
	if _, err := c.ValueType(); err != nil {
		problems["type"] = err.Error()
	}
	if _, err := catalogdomain.ParseDuration(c.History, 24*60*60); err != nil {
		problems["history"] = err.Error()
	}
	if _, err := catalogdomain.ParseDuration(c.Delay, 1); err != nil {
		problems["delay"] = err.Error()
	}
	return problems
}

// ValueType parses Type, defaulting to float
func (c *ItemConfig) ValueType() (catalogdomain.ValueType, error) {
	if c.Type == "" {
		return catalogdomain.ValueFloat, nil
	}
	return catalogdomain.ParseValueType(c.Type)
}

// Item converts the entry into a catalog item of the given host
func (c *ItemConfig) Item(hostID int64) (catalogdomain.Item, error) {
	vt, err := c.ValueType()
	if err != nil {
		return catalogdomain.Item{}, err
	}
	history := c.History
	if history == "" {
		history = "90d"
	}
	delay := c.Delay
	if delay == "" {
		delay = "0"
	}
	return catalogdomain.Item{
		HostID:    hostID,
		Key:       c.Key,
		Name:      c.Name,
		ValueType: vt,
		Units:     c.Units,
		History:   history,
		Delay:     delay,
	}, nil
}

// Validate checks the whole file and reports the first offending section
func (c *Config) Validate(ctx context.Context) error {
	if err := validation.Validate(ctx, &c.Engine, "engine"); err != nil {
		return err
	}
	if err := validation.Validate(ctx, &c.Housekeeping, "housekeeping"); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Inventory.Hosts))
	for i := range c.Inventory.Hosts {
		host := &c.Inventory.Hosts[i]
		path := fmt.Sprintf("inventory.hosts.%d", i)
		if err := validation.Validate(ctx, host, path); err != nil {
			return err
		}
		if seen[host.Name] {
			return validation.NewDuplicateFoundError(path)
		}
		seen[host.Name] = true

		keys := make(map[string]bool, len(host.Items))
		for j := range host.Items {
			item := &host.Items[j]
			itemPath := path + ".items." + strconv.Itoa(j)
			if err := validation.Validate(ctx, item, itemPath); err != nil {
				return err
			}
			if keys[item.Key] {
				return validation.NewDuplicateFoundError(itemPath)
			}
			keys[item.Key] = true
		}
	}
	return nil
}
