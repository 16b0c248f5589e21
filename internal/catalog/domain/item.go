package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	statsdomain "zbxstats/internal/stats/domain"
)

var ErrItemNotFound = errors.New("could not find item with this key")

// ValueType is the Zabbix value_type code of an item
type ValueType int

const (
	ValueFloat     ValueType = 0
	ValueCharacter ValueType = 1
	ValueLog       ValueType = 2
	ValueUnsigned  ValueType = 3
	ValueText      ValueType = 4
)

var valueTypeNames = map[string]ValueType{
	"float":     ValueFloat,
	"character": ValueCharacter,
	"log":       ValueLog,
	"unsigned":  ValueUnsigned,
	"text":      ValueText,
}

// ParseValueType accepts the names used in the inventory file
func ParseValueType(s string) (ValueType, error) {
	vt, ok := valueTypeNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown value type %q", s)
	}
	return vt, nil
}

// Item is a metric definition on one host
type Item struct {
	ID        int64     `db:"itemid"`
	HostID    int64     `db:"hostid"`
	Host      string    `db:"host"`
	Key       string    `db:"key_"`
	Name      string    `db:"name"`
	ValueType ValueType `db:"value_type"`
	Units     string    `db:"units"`
	// History and Delay keep the Zabbix notation ("90d", "1m", or bare numbers).
	History string `db:"history"`
	Delay   string `db:"delay"`
}

// Kind maps the value type onto the resampler's metric kind
func (i Item) Kind() statsdomain.MetricKind {
	switch i.ValueType {
	case ValueFloat:
		return statsdomain.KindFloat
	case ValueUnsigned:
		return statsdomain.KindInteger
	default:
		return statsdomain.KindNonNumeric
	}
}

// HistoryDays is the history retention in whole days. Bare numbers are days.
func (i Item) HistoryDays() (int, error) {
	seconds, err := ParseDuration(i.History, secondsPerDay)
	if err != nil {
		return 0, fmt.Errorf("item %q history: %w", i.Key, err)
	}
	return int(seconds / secondsPerDay), nil
}

// DelaySeconds is the recording interval. Bare numbers are seconds.
func (i Item) DelaySeconds() (int64, error) {
	seconds, err := ParseDuration(i.Delay, 1)
	if err != nil {
		return 0, fmt.Errorf("item %q delay: %w", i.Key, err)
	}
	return seconds, nil
}

// Descriptor builds the query-scoped metric descriptor
func (i Item) Descriptor() (statsdomain.MetricDescriptor, error) {
	days, err := i.HistoryDays()
	if err != nil {
		return statsdomain.MetricDescriptor{}, err
	}
	delay, err := i.DelaySeconds()
	if err != nil {
		return statsdomain.MetricDescriptor{}, err
	}
	return statsdomain.MetricDescriptor{
		Key:                i.Key,
		Name:               i.Name,
		ItemID:             i.ID,
		Kind:               i.Kind(),
		Unit:               i.Units,
		RetentionDays:      days,
		SampleDelaySeconds: delay,
	}, nil
}

const secondsPerDay = 24 * 60 * 60

var suffixSeconds = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 60 * 60,
	'd': secondsPerDay,
	'w': 7 * secondsPerDay,
}

// ParseDuration reads a Zabbix time value such as "90d" or "30s" and returns
// seconds. A bare number is multiplied by unit. Flexible delay schedules
// ("30s;50s/1-5,09:00-18:00") use their default interval.
func ParseDuration(s string, unit int64) (int64, error) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, ';'); idx >= 0 {
		s = s[:idx]
	}
	if s == "" {
		return 0, nil
	}
	if strings.HasPrefix(s, "{$") {
		return 0, fmt.Errorf("user macro %q cannot be resolved", s)
	}

	mult := unit
	if m, ok := suffixSeconds[s[len(s)-1]]; ok {
		mult = m
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid time value %q", s)
	}
	return n * mult, nil
}

type Repository interface {
	GetItem(ctx context.Context, host, key string) (*Item, error)
	// ListItems returns the items of one host, or of every host when host is empty.
	ListItems(ctx context.Context, host string) ([]Item, error)
	UpsertItem(ctx context.Context, item Item) (int64, error)
}
