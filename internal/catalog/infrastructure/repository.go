package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"zbxstats/internal/catalog/domain"
)

const selectItems = `SELECT i.itemid, i.hostid, h.host, i.key_, i.name, i.value_type, i.units, i.history, i.delay
FROM items i
JOIN hosts h ON h.hostid = i.hostid`

// Repository reads and writes item definitions
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetItem(ctx context.Context, host, key string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.GetContext(ctx, &item, r.db.Rebind(selectItems+` WHERE h.host = ? AND i.key_ = ?`), host, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %q on %q: %w", key, host, err)
	}
	return &item, nil
}

func (r *Repository) ListItems(ctx context.Context, host string) ([]domain.Item, error) {
	query := selectItems
	var args []any
	if host != "" {
		query += ` WHERE h.host = ?`
		args = append(args, host)
	}
	query += ` ORDER BY h.host, i.key_`

	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// UpsertItem creates or updates the item identified by (HostID, Key)
func (r *Repository) UpsertItem(ctx context.Context, item domain.Item) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.GetContext(ctx, &id, tx.Rebind(`SELECT itemid FROM items WHERE hostid = ? AND key_ = ?`), item.HostID, item.Key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := tx.GetContext(ctx, &id, `SELECT COALESCE(MAX(itemid), 0) + 1 FROM items`); err != nil {
			return 0, err
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO items (itemid, hostid, key_, name, value_type, units, history, delay)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			id, item.HostID, item.Key, item.Name, item.ValueType, item.Units, item.History, item.Delay)
		if err != nil {
			return 0, fmt.Errorf("failed to insert item %q: %w", item.Key, err)
		}
	case err != nil:
		return 0, err
	default:
		_, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE items SET name = ?, value_type = ?, units = ?, history = ?, delay = ? WHERE itemid = ?`),
			item.Name, item.ValueType, item.Units, item.History, item.Delay, id)
		if err != nil {
			return 0, fmt.Errorf("failed to update item %q: %w", item.Key, err)
		}
	}

	return id, tx.Commit()
}
