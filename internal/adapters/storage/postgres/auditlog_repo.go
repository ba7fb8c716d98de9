package postgres

import (
	"context"
	"database/sql"

	"puericultura/internal/domain/auditlog"
)

type AuditLogRepo struct {
	db *sql.DB
}

func NewAuditLogRepo(db *sql.DB) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

func (r *AuditLogRepo) Append(ctx context.Context, e auditlog.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO log_entries (id, recorded_at, message) VALUES ($1,$2,$3)
	`, e.ID, e.Timestamp, e.Message)
	return err
}

func (r *AuditLogRepo) List(ctx context.Context, limit int) ([]auditlog.Entry, error) {
	q := `SELECT id, recorded_at, message FROM log_entries ORDER BY recorded_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]auditlog.Entry, 0)
	for rows.Next() {
		var e auditlog.Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Message); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *AuditLogRepo) ReplaceAll(ctx context.Context, items []auditlog.Entry) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM log_entries`); err != nil {
			return err
		}
		for _, e := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO log_entries (id, recorded_at, message) VALUES ($1,$2,$3)
			`, e.ID, e.Timestamp, e.Message); err != nil {
				return err
			}
		}
		return nil
	})
}
