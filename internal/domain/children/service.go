package children

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/auditlog"
	"puericultura/internal/domain/visits"
	"puericultura/internal/platform/logger"
	"puericultura/internal/ports/reminders"
	"puericultura/internal/schedule"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrVisitNotFound  = errors.New("visit not found")
	ErrUnknownAgent   = errors.New("unknown health agent")
	ErrNotTracked     = errors.New("follow-up not complete")
	ErrNoDrafter      = errors.New("reminder drafter not configured")
	ErrDispatchFailed = errors.New("reminder dispatch failed")
)

var cpfPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

// Auditor registra mensajes en el log de actividad.
type Auditor interface {
	Record(ctx context.Context, message string) (auditlog.Entry, error)
}

// AgentChecker evita importar el paquete agents (rompe ciclos).
type AgentChecker interface {
	Exists(ctx context.Context, agentID string) (bool, error)
}

type Deps struct {
	Drafter    reminders.Drafter
	Dispatcher reminders.Dispatcher // opcional: sin gateway el envío solo cambia el estado
	Audit      Auditor              // opcional
	Agents     AgentChecker         // opcional
	Logger     logger.Logger
}

// Service es el único escritor de fichas: todas las mutaciones pasan por mu,
// una transición por llamada.
type Service struct {
	mu sync.Mutex

	repo       Repository
	drafter    reminders.Drafter
	dispatcher reminders.Dispatcher
	audit      Auditor
	agents     AgentChecker
	log        logger.Logger
	now        func() time.Time
}

func NewService(repo Repository, deps Deps) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		drafter:    deps.Drafter,
		dispatcher: deps.Dispatcher,
		audit:      deps.Audit,
		agents:     deps.Agents,
		log:        log.With(map[string]any{"module": "children"}),
		now:        time.Now,
	}
}

type CreateInput struct {
	Name          string
	DateOfBirth   string // YYYY-MM-DD
	Sex           Sex
	CPF           string
	MotherName    string
	FatherName    string
	Contact       string
	Nationality   string
	PlaceOfBirth  string
	FamilyHistory string
	AgentID       string
}

// Create valida la ficha y genera la agenda completa junto con ella.
func (s *Service) Create(ctx context.Context, in CreateInput) (Child, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Child{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	dob, err := calendar.Parse(in.DateOfBirth)
	if err != nil {
		return Child{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !in.Sex.Valid() {
		return Child{}, fmt.Errorf("%w: sex %q", ErrInvalidInput, in.Sex)
	}
	cpf := strings.TrimSpace(in.CPF)
	if cpf != "" && !cpfPattern.MatchString(cpf) {
		return Child{}, fmt.Errorf("%w: cpf must be 000.000.000-00", ErrInvalidInput)
	}
	agentID := strings.TrimSpace(in.AgentID)

	// el acsId se valida bajo el mismo lock que usa UnlinkAgent
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAgent(ctx, agentID); err != nil {
		return Child{}, err
	}

	c := Child{
		ID:            uuid.NewString(),
		Name:          name,
		DateOfBirth:   dob,
		Sex:           in.Sex,
		CPF:           cpf,
		MotherName:    strings.TrimSpace(in.MotherName),
		FatherName:    strings.TrimSpace(in.FatherName),
		Contact:       strings.TrimSpace(in.Contact),
		Nationality:   strings.TrimSpace(in.Nationality),
		PlaceOfBirth:  strings.TrimSpace(in.PlaceOfBirth),
		FamilyHistory: strings.TrimSpace(in.FamilyHistory),
		AgentID:       agentID,
		Visits:        schedule.Generate(dob),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Child{}, err
	}
	s.record(ctx, fmt.Sprintf("Criança %q foi cadastrada.", c.Name))
	return c, nil
}

// UpdateInput usa punteros para PATCH: nil = no tocar.
// AgentID = "" desvincula el agente.
type UpdateInput struct {
	Name          *string
	DateOfBirth   *string
	Sex           *Sex
	CPF           *string
	MotherName    *string
	FatherName    *string
	Contact       *string
	Nationality   *string
	PlaceOfBirth  *string
	FamilyHistory *string
	AgentID       *string
}

// Update cambia datos de la ficha. Cambiar la fecha de nacimiento NO regenera la agenda.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Child{}, err
	}
	c = c.Clone()

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Child{}, fmt.Errorf("%w: name required", ErrInvalidInput)
		}
		c.Name = name
	}
	if in.DateOfBirth != nil {
		dob, err := calendar.Parse(*in.DateOfBirth)
		if err != nil {
			return Child{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		c.DateOfBirth = dob
	}
	if in.Sex != nil {
		if !in.Sex.Valid() {
			return Child{}, fmt.Errorf("%w: sex %q", ErrInvalidInput, *in.Sex)
		}
		c.Sex = *in.Sex
	}
	if in.CPF != nil {
		cpf := strings.TrimSpace(*in.CPF)
		if cpf != "" && !cpfPattern.MatchString(cpf) {
			return Child{}, fmt.Errorf("%w: cpf must be 000.000.000-00", ErrInvalidInput)
		}
		c.CPF = cpf
	}
	if in.AgentID != nil {
		agentID := strings.TrimSpace(*in.AgentID)
		if err := s.checkAgent(ctx, agentID); err != nil {
			return Child{}, err
		}
		c.AgentID = agentID
	}
	setTrimmed(&c.MotherName, in.MotherName)
	setTrimmed(&c.FatherName, in.FatherName)
	setTrimmed(&c.Contact, in.Contact)
	setTrimmed(&c.Nationality, in.Nationality)
	setTrimmed(&c.PlaceOfBirth, in.PlaceOfBirth)
	setTrimmed(&c.FamilyHistory, in.FamilyHistory)

	if err := s.repo.Update(ctx, c); err != nil {
		return Child{}, err
	}
	s.record(ctx, fmt.Sprintf("Dados da criança %q foram atualizados.", c.Name))
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.record(ctx, fmt.Sprintf("Cadastro da criança %q foi removido.", c.Name))
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Child, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Child{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Child, error) {
	return s.repo.List(ctx)
}

// ClearAgent quita la referencia al agente en todas las fichas que lo tenían.
// Devuelve cuántas fichas se modificaron. Nunca borra fichas ni consultas.
func (s *Service) ClearAgent(ctx context.Context, agentID string) (int, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return 0, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearAgent(ctx, agentID)
}

// UnlinkAgent desvincula el agente y después corre remove, todo bajo el lock de
// escritura: ningún Create/Update puede colar una referencia entre medio.
// Si remove falla las fichas ya quedan sin el agente.
func (s *Service) UnlinkAgent(ctx context.Context, agentID string, remove func(context.Context) error) (int, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return 0, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.clearAgent(ctx, agentID)
	if err != nil {
		return n, err
	}
	if remove != nil {
		if err := remove(ctx); err != nil {
			return n, err
		}
	}
	return n, nil
}

// clearAgent asume s.mu tomado.
func (s *Service) clearAgent(ctx context.Context, agentID string) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, c := range items {
		if c.AgentID != agentID {
			continue
		}
		c = c.Clone()
		c.AgentID = ""
		if err := s.repo.Update(ctx, c); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ApplyVisitEvent aplica una transición del ciclo de vida a una consulta de la ficha.
// Si la transición se rechaza la ficha queda intacta.
func (s *Service) ApplyVisitEvent(ctx context.Context, childID, visitID string, e visits.Event, p visits.Payload) (visits.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.GetByID(ctx, strings.TrimSpace(childID))
	if err != nil {
		return visits.Visit{}, err
	}
	idx := visits.Find(c.Visits, visitID)
	if idx < 0 {
		return visits.Visit{}, ErrVisitNotFound
	}

	updated, err := visits.Apply(c.Visits[idx], e, p)
	if err != nil {
		return c.Visits[idx], err
	}

	c = c.Clone()
	c.Visits[idx] = updated
	if err := s.repo.Update(ctx, c); err != nil {
		return visits.Visit{}, err
	}

	s.log.Debug("visit transition", map[string]any{
		"child_id": c.ID,
		"visit_id": updated.ID,
		"event":    string(e),
		"status":   string(updated.Status),
	})
	s.record(ctx, fmt.Sprintf("Consulta de %q para %q foi atualizada para o status %q.", updated.Milestone, c.Name, updated.Status))
	return updated, nil
}

// DraftReminder redacta el recordatorio de una consulta. Si ya existe uno sin
// enviar lo devuelve tal cual, sin volver a redactar.
func (s *Service) DraftReminder(ctx context.Context, childID, visitID string) (visits.Visit, error) {
	c, v, err := s.lookupVisit(ctx, childID, visitID)
	if err != nil {
		return visits.Visit{}, err
	}
	if v.Status == visits.StatusReminderDrafted && v.Reminder != nil {
		return v, nil
	}
	if !visits.CanApply(v.Status, visits.EventDraftReminder) {
		return v, fmt.Errorf("%w: %s from %q", visits.ErrTransitionNotAllowed, visits.EventDraftReminder, v.Status)
	}
	if s.drafter == nil {
		return v, ErrNoDrafter
	}

	r, err := s.drafter.Draft(ctx, reminders.Request{
		ChildName:    c.Name,
		GuardianName: guardianOf(c),
		Milestone:    v.Milestone,
		DueDate:      v.DueDate,
	})
	if err != nil {
		return v, err
	}

	return s.ApplyVisitEvent(ctx, c.ID, v.ID, visits.EventDraftReminder, visits.Payload{Reminder: &r})
}

// SendReminder entrega el recordatorio (si hay gateway) y marca la consulta como enviada.
// Reenviar una consulta ya enviada no vuelve a despachar.
func (s *Service) SendReminder(ctx context.Context, childID, visitID string) (visits.Visit, error) {
	c, v, err := s.lookupVisit(ctx, childID, visitID)
	if err != nil {
		return visits.Visit{}, err
	}
	if v.Status == visits.StatusReminderSent {
		return v, nil
	}
	if !visits.CanApply(v.Status, visits.EventMarkReminderSent) {
		return v, fmt.Errorf("%w: %s from %q", visits.ErrTransitionNotAllowed, visits.EventMarkReminderSent, v.Status)
	}
	if v.Reminder == nil {
		return v, fmt.Errorf("%w: no reminder drafted", visits.ErrInvalidPayload)
	}

	if s.dispatcher != nil {
		err := s.dispatcher.Dispatch(ctx, reminders.Message{
			ChildID:   c.ID,
			VisitID:   v.ID,
			Contact:   c.Contact,
			Milestone: v.Milestone,
			DueDate:   v.DueDate,
			Reminder:  *v.Reminder,
		})
		if err != nil {
			s.log.Warn("reminder dispatch failed", map[string]any{"child_id": c.ID, "visit_id": v.ID, "error": err.Error()})
			return v, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
		}
	}

	return s.ApplyVisitEvent(ctx, c.ID, v.ID, visits.EventMarkReminderSent, visits.Payload{})
}

// RecordClinicalData registra la consulta como realizada (o corrige sus datos).
func (s *Service) RecordClinicalData(ctx context.Context, childID, visitID string, data visits.ClinicalData) (visits.Visit, error) {
	return s.ApplyVisitEvent(ctx, childID, visitID, visits.EventRecordClinicalData, visits.Payload{Clinical: &data})
}

// FullyTracked indica si la ficha tiene todas las consultas realizadas.
func (s *Service) FullyTracked(ctx context.Context, childID string) (bool, error) {
	c, err := s.GetByID(ctx, childID)
	if err != nil {
		return false, err
	}
	return visits.FullyTracked(c.Visits), nil
}

// Summary arma el informe final de seguimiento; ErrNotTracked si falta alguna consulta.
func (s *Service) Summary(ctx context.Context, childID string) (Summary, error) {
	c, err := s.GetByID(ctx, childID)
	if err != nil {
		return Summary{}, err
	}
	if !visits.FullyTracked(c.Visits) {
		return Summary{}, ErrNotTracked
	}

	age := calendar.MonthsBetween(c.DateOfBirth, calendar.Today(s.now))
	if age < 0 {
		age = 0
	}

	rows := make([]GrowthRow, 0, len(c.Visits))
	for _, v := range c.Visits {
		rows = append(rows, GrowthRow{
			Milestone:           v.Milestone,
			DueDate:             v.DueDate,
			PerformedDate:       v.PerformedDate,
			Late:                visits.IsLate(v),
			WeightKg:            v.WeightKg,
			LengthCm:            v.LengthCm,
			HeadCircumferenceCm: v.HeadCircumferenceCm,
			BMI:                 v.BMI,
			Observations:        v.Observations,
		})
	}
	return Summary{Child: c, AgeInMonths: age, Rows: rows}, nil
}

func (s *Service) lookupVisit(ctx context.Context, childID, visitID string) (Child, visits.Visit, error) {
	c, err := s.GetByID(ctx, childID)
	if err != nil {
		return Child{}, visits.Visit{}, err
	}
	idx := visits.Find(c.Visits, visitID)
	if idx < 0 {
		return Child{}, visits.Visit{}, ErrVisitNotFound
	}
	return c, c.Visits[idx], nil
}

func (s *Service) checkAgent(ctx context.Context, agentID string) error {
	if agentID == "" || s.agents == nil {
		return nil
	}
	ok, err := s.agents.Exists(ctx, agentID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAgent, agentID)
	}
	return nil
}

func (s *Service) record(ctx context.Context, msg string) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.Record(ctx, msg); err != nil {
		s.log.Warn("audit record failed", map[string]any{"error": err.Error()})
	}
}

func guardianOf(c Child) string {
	if c.MotherName != "" {
		return c.MotherName
	}
	if c.FatherName != "" {
		return c.FatherName
	}
	return "responsável"
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
