package reports

import (
	"context"
	"errors"
	"io"
	"time"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/agents"
	"puericultura/internal/domain/children"
)

var ErrInvalidFilter = errors.New("invalid filter")

type ChildLister interface {
	List(ctx context.Context) ([]children.Child, error)
}

type AgentLister interface {
	List(ctx context.Context) ([]agents.Agent, error)
}

// Service lee las fichas y delega el cálculo en las funciones puras del paquete.
type Service struct {
	children ChildLister
	agents   AgentLister
	now      func() time.Time
}

func NewService(c ChildLister, a AgentLister) *Service {
	return &Service{
		children: c,
		agents:   a,
		now:      time.Now,
	}
}

func (s *Service) Today() calendar.Date {
	return calendar.Today(s.now)
}

// CurrentPeriod es el mes en curso.
func (s *Service) CurrentPeriod() Period {
	t := s.Today()
	return Period{Month: t.Month, Year: t.Year}
}

func (s *Service) Report(ctx context.Context, f Filters, p Period) (Snapshot, error) {
	if !p.Valid() {
		return Snapshot{}, ErrInvalidFilter
	}
	items, err := s.children.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Aggregate(items, f, p, s.Today()), nil
}

func (s *Service) WriteCSV(ctx context.Context, w io.Writer, f Filters) error {
	rows, byID, err := s.exportData(ctx, f)
	if err != nil {
		return err
	}
	return WriteCSV(w, rows, byID, s.Today())
}

func (s *Service) WriteXLSX(ctx context.Context, w io.Writer, f Filters) error {
	rows, byID, err := s.exportData(ctx, f)
	if err != nil {
		return err
	}
	return WriteXLSX(w, rows, byID, s.Today())
}

func (s *Service) exportData(ctx context.Context, f Filters) ([]Row, map[string]agents.Agent, error) {
	items, err := s.children.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	as, err := s.agents.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]agents.Agent, len(as))
	for _, a := range as {
		byID[a.ID] = a
	}
	return Rows(Cohort(items, f, s.Today())), byID, nil
}

func (s *Service) Agenda(ctx context.Context) ([]AgendaItem, error) {
	items, err := s.children.List(ctx)
	if err != nil {
		return nil, err
	}
	as, err := s.agents.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(as))
	for _, a := range as {
		names[a.ID] = a.Name
	}
	return BuildAgenda(items, names, s.Today()), nil
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	items, err := s.children.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	as, err := s.agents.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(items, len(as), s.Today()), nil
}
