package auditlog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record agrega una entrada con timestamp actual.
func (s *Service) Record(ctx context.Context, message string) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Message:   strings.TrimSpace(message),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.repo.List(ctx, limit)
}

// Latest devuelve la última entrada; ErrNotFound si el registro está vacío.
func (s *Service) Latest(ctx context.Context) (Entry, error) {
	items, err := s.repo.List(ctx, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(items) == 0 {
		return Entry{}, ErrNotFound
	}
	return items[0], nil
}
