package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"puericultura/internal/domain/agents"
)

type AgentsRepo struct {
	db *sql.DB
}

func NewAgentsRepo(db *sql.DB) *AgentsRepo {
	return &AgentsRepo{db: db}
}

func (r *AgentsRepo) Create(ctx context.Context, a agents.Agent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_agents (id, name, email, contact)
		VALUES ($1,$2,$3,$4)
	`, a.ID, a.Name, a.Email, a.Contact)
	return err
}

func (r *AgentsRepo) Update(ctx context.Context, a agents.Agent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE health_agents
		SET name = $2, email = $3, contact = $4
		WHERE id = $1
	`, a.ID, a.Name, a.Email, a.Contact)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return agents.ErrNotFound
	}
	return nil
}

func (r *AgentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM health_agents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return agents.ErrNotFound
	}
	return nil
}

func (r *AgentsRepo) GetByID(ctx context.Context, id string) (agents.Agent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return agents.Agent{}, agents.ErrNotFound
	}

	var a agents.Agent
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, contact FROM health_agents WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Email, &a.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return agents.Agent{}, agents.ErrNotFound
	}
	return a, err
}

func (r *AgentsRepo) List(ctx context.Context) ([]agents.Agent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, contact FROM health_agents ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]agents.Agent, 0)
	for rows.Next() {
		var a agents.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Contact); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AgentsRepo) ReplaceAll(ctx context.Context, items []agents.Agent) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM health_agents`); err != nil {
			return err
		}
		for _, a := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO health_agents (id, name, email, contact) VALUES ($1,$2,$3,$4)
			`, a.ID, a.Name, a.Email, a.Contact); err != nil {
				return err
			}
		}
		return nil
	})
}
