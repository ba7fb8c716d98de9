package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/children"
	"puericultura/internal/domain/visits"
)

// ChildrenRepo guarda la ficha en columnas y la agenda entera como JSONB:
// la agenda siempre se lee y escribe junto con la ficha.
type ChildrenRepo struct {
	db *sql.DB
}

func NewChildrenRepo(db *sql.DB) *ChildrenRepo {
	return &ChildrenRepo{db: db}
}

const childColumns = `
	id, name, date_of_birth, sex,
	cpf, mother_name, father_name, contact,
	nationality, place_of_birth, family_history,
	acs_id, consultations`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertChild(ctx context.Context, db execer, c children.Child) error {
	consultations, err := json.Marshal(c.Visits)
	if err != nil {
		return fmt.Errorf("encode consultations: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO children (`+childColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		c.ID,
		c.Name,
		c.DateOfBirth.Time(),
		string(c.Sex),
		c.CPF,
		c.MotherName,
		c.FatherName,
		c.Contact,
		c.Nationality,
		c.PlaceOfBirth,
		c.FamilyHistory,
		c.AgentID,
		consultations,
	)
	return err
}

func (r *ChildrenRepo) Create(ctx context.Context, c children.Child) error {
	return insertChild(ctx, r.db, c)
}

func (r *ChildrenRepo) Update(ctx context.Context, c children.Child) error {
	consultations, err := json.Marshal(c.Visits)
	if err != nil {
		return fmt.Errorf("encode consultations: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE children
		SET
			name = $2,
			date_of_birth = $3,
			sex = $4,
			cpf = $5,
			mother_name = $6,
			father_name = $7,
			contact = $8,
			nationality = $9,
			place_of_birth = $10,
			family_history = $11,
			acs_id = $12,
			consultations = $13
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		c.DateOfBirth.Time(),
		string(c.Sex),
		c.CPF,
		c.MotherName,
		c.FatherName,
		c.Contact,
		c.Nationality,
		c.PlaceOfBirth,
		c.FamilyHistory,
		c.AgentID,
		consultations,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return children.ErrNotFound
	}
	return nil
}

func (r *ChildrenRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return children.ErrNotFound
	}
	return nil
}

func (r *ChildrenRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return children.Child{}, children.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+childColumns+` FROM children WHERE id = $1`, id)
	c, err := scanChild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return children.Child{}, children.ErrNotFound
	}
	return c, err
}

func (r *ChildrenRepo) List(ctx context.Context) ([]children.Child, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+childColumns+` FROM children ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]children.Child, 0)
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceAll reemplaza todas las fichas en una sola transacción (import/reset).
func (r *ChildrenRepo) ReplaceAll(ctx context.Context, items []children.Child) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM children`); err != nil {
			return err
		}
		for _, c := range items {
			if err := insertChild(ctx, tx, c); err != nil {
				return fmt.Errorf("insert child %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChild(s scanner) (children.Child, error) {
	var c children.Child
	var dob time.Time
	var sex string
	var consultations []byte
	if err := s.Scan(
		&c.ID,
		&c.Name,
		&dob,
		&sex,
		&c.CPF,
		&c.MotherName,
		&c.FatherName,
		&c.Contact,
		&c.Nationality,
		&c.PlaceOfBirth,
		&c.FamilyHistory,
		&c.AgentID,
		&consultations,
	); err != nil {
		return children.Child{}, err
	}

	// date llega como medianoche UTC
	c.DateOfBirth = calendar.FromTime(dob.UTC())
	c.Sex = children.Sex(sex)
	c.Visits = []visits.Visit{}
	if len(consultations) > 0 {
		if err := json.Unmarshal(consultations, &c.Visits); err != nil {
			return children.Child{}, fmt.Errorf("decode consultations of %s: %w", c.ID, err)
		}
	}
	return c, nil
}
