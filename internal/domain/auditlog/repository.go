package auditlog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// List devuelve las entradas más recientes primero. limit <= 0 = todas.
	List(ctx context.Context, limit int) ([]Entry, error)
	ReplaceAll(ctx context.Context, items []Entry) error
}
