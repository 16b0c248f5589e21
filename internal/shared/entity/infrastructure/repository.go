package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	entitydomain "zbxstats/internal/shared/entity/domain"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListHosts(ctx context.Context, filter entitydomain.HostFilter) ([]entitydomain.Host, error) {
	query := `SELECT hostid, host, name, status FROM hosts WHERE 1 = 1`
	var args []any

	if len(filter.Names) > 0 {
		in, inArgs, err := sqlx.In(` AND host IN (?)`, filter.Names)
		if err != nil {
			return nil, err
		}
		query += in
		args = append(args, inArgs...)
	}
	if !filter.IncludeUnmonitored {
		query += ` AND status = ?`
		args = append(args, entitydomain.HostMonitored)
	}
	query += ` ORDER BY host`

	var hosts []entitydomain.Host
	if err := r.db.SelectContext(ctx, &hosts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list hosts: %w", err)
	}
	return hosts, nil
}

func (r *Repository) GetHost(ctx context.Context, name string) (*entitydomain.Host, error) {
	var host entitydomain.Host
	err := r.db.GetContext(ctx, &host, r.db.Rebind(`SELECT hostid, host, name, status FROM hosts WHERE host = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entitydomain.ErrHostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &host, nil
}

// UpsertHost inserts the host or updates its visible name and status.
// Ids are allocated as max+1 since Zabbix tables carry no sequence.
func (r *Repository) UpsertHost(ctx context.Context, host entitydomain.Host) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.GetContext(ctx, &id, tx.Rebind(`SELECT hostid FROM hosts WHERE host = ?`), host.Name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := tx.GetContext(ctx, &id, `SELECT COALESCE(MAX(hostid), 0) + 1 FROM hosts`); err != nil {
			return 0, err
		}
		_, err = tx.ExecContext(ctx,
			tx.Rebind(`INSERT INTO hosts (hostid, host, name, status) VALUES (?, ?, ?, ?)`),
			id, host.Name, host.VisibleName, host.Status)
		if err != nil {
			return 0, fmt.Errorf("failed to insert host %q: %w", host.Name, err)
		}
	case err != nil:
		return 0, err
	default:
		_, err = tx.ExecContext(ctx,
			tx.Rebind(`UPDATE hosts SET name = ?, status = ? WHERE hostid = ?`),
			host.VisibleName, host.Status, id)
		if err != nil {
			return 0, fmt.Errorf("failed to update host %q: %w", host.Name, err)
		}
	}

	return id, tx.Commit()
}
