package agents

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("health agent not found")

type Repository interface {
	Create(ctx context.Context, a Agent) error
	Update(ctx context.Context, a Agent) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Agent, error)
	List(ctx context.Context) ([]Agent, error)
	ReplaceAll(ctx context.Context, items []Agent) error
}
