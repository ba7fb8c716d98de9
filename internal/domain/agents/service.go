package agents

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"puericultura/internal/domain/auditlog"
)

var ErrInvalidInput = errors.New("invalid input")

// ChildUnlinker quita la referencia al agente de todas las fichas y corre
// remove sin soltar el lock de las fichas.
type ChildUnlinker interface {
	UnlinkAgent(ctx context.Context, agentID string, remove func(context.Context) error) (int, error)
}

type Auditor interface {
	Record(ctx context.Context, message string) (auditlog.Entry, error)
}

type Service struct {
	repo     Repository
	children ChildUnlinker
	audit    Auditor
}

// NewService: audit puede ser nil (tests).
func NewService(repo Repository, audit Auditor) *Service {
	return &Service{
		repo:  repo,
		audit: audit,
	}
}

// UseChildren conecta la cascada de Delete. Va aparte del constructor porque
// children a su vez valida acsId contra este service.
func (s *Service) UseChildren(c ChildUnlinker) {
	s.children = c
}

type Input struct {
	Name    string
	Email   string
	Contact string
}

func (in Input) normalize() (Input, error) {
	out := Input{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Contact: strings.TrimSpace(in.Contact),
	}
	if out.Name == "" {
		return Input{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if out.Email != "" {
		if _, err := mail.ParseAddress(out.Email); err != nil {
			return Input{}, fmt.Errorf("%w: email %q", ErrInvalidInput, out.Email)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Agent, error) {
	in, err := in.normalize()
	if err != nil {
		return Agent{}, err
	}

	a := Agent{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Email:   in.Email,
		Contact: in.Contact,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Agent{}, err
	}
	s.record(ctx, fmt.Sprintf("Agente de Saúde %q foi cadastrado.", a.Name))
	return a, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name    *string
	Email   *string
	Contact *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Agent, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Agent{}, err
	}

	next := Input{Name: a.Name, Email: a.Email, Contact: a.Contact}
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Email != nil {
		next.Email = *in.Email
	}
	if in.Contact != nil {
		next.Contact = *in.Contact
	}
	next, err = next.normalize()
	if err != nil {
		return Agent{}, err
	}

	a.Name, a.Email, a.Contact = next.Name, next.Email, next.Contact
	if err := s.repo.Update(ctx, a); err != nil {
		return Agent{}, err
	}
	s.record(ctx, fmt.Sprintf("Dados do Agente de Saúde %q foram atualizados.", a.Name))
	return a, nil
}

// Delete borra el agente y lo desvincula de todas las fichas. Las fichas y sus
// consultas quedan intactas.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	remove := func(ctx context.Context) error {
		return s.repo.Delete(ctx, a.ID)
	}
	if s.children == nil {
		err = remove(ctx)
	} else {
		_, err = s.children.UnlinkAgent(ctx, a.ID, remove)
	}
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	s.record(ctx, fmt.Sprintf("Agente de Saúde %q foi removido e desvinculado das crianças.", a.Name))
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Agent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Agent{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Agent, error) {
	return s.repo.List(ctx)
}

// Exists lo usa children para validar acsId.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) record(ctx context.Context, msg string) {
	if s.audit == nil {
		return
	}
	// el log de actividad es best-effort
	_, _ = s.audit.Record(ctx, msg)
}
