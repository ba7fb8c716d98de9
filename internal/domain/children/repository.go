package children

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("child not found")

type Repository interface {
	Create(ctx context.Context, c Child) error
	Update(ctx context.Context, c Child) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Child, error)
	List(ctx context.Context) ([]Child, error)
	ReplaceAll(ctx context.Context, items []Child) error
}
