package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"puericultura/internal/domain/agents"
	"puericultura/internal/domain/auditlog"
	"puericultura/internal/domain/children"
	"puericultura/internal/platform/logger"
)

var (
	ErrInvalidDocument = errors.New("invalid backup document")
	ErrNoStore         = errors.New("snapshot store not configured")
)

const (
	msgImported     = "Banco de dados importado com sucesso a partir de arquivo."
	msgImportFailed = "Falha na importação: o arquivo é inválido ou está corrompido."
	msgReset        = "Banco de dados foi formatado. Todos os dados foram removidos."
)

type Auditor interface {
	Record(ctx context.Context, message string) (auditlog.Entry, error)
}

type Deps struct {
	Children  children.Repository
	Agents    agents.Repository
	Logs      auditlog.Repository
	Audit     Auditor
	Snapshots SnapshotStore // opcional
	Logger    logger.Logger
}

type Service struct {
	mu sync.Mutex

	children  children.Repository
	agents    agents.Repository
	logs      auditlog.Repository
	audit     Auditor
	snapshots SnapshotStore
	log       logger.Logger
	now       func() time.Time

	// ID de la entrada de log más reciente incluida en el último snapshot.
	savedLogID  string
	lastUpdated *time.Time
}

func NewService(deps Deps) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		children:  deps.Children,
		agents:    deps.Agents,
		logs:      deps.Logs,
		audit:     deps.Audit,
		snapshots: deps.Snapshots,
		log:       log.With(map[string]any{"module": "backup"}),
		now:       time.Now,
	}
}

// Export arma el documento con el estado actual.
func (s *Service) Export(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.export(ctx)
}

func (s *Service) export(ctx context.Context) (Document, error) {
	cs, err := s.children.List(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("list children: %w", err)
	}
	as, err := s.agents.List(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("list agents: %w", err)
	}
	ls, err := s.logs.List(ctx, 0)
	if err != nil {
		return Document{}, fmt.Errorf("list logs: %w", err)
	}
	return Document{
		Children:    nonNil(cs),
		Agents:      nonNil(as),
		Logs:        nonNil(ls),
		LastUpdated: s.lastUpdated,
	}, nil
}

// Import reemplaza todo el estado con el documento. Un documento inválido no
// toca nada y deja constancia en el log de actividad.
func (s *Service) Import(ctx context.Context, raw []byte) (Document, error) {
	doc, err := Decode(raw)
	if err != nil {
		s.record(ctx, msgImportFailed)
		return Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replace(ctx, doc); err != nil {
		return Document{}, err
	}
	s.lastUpdated = doc.LastUpdated
	s.record(ctx, msgImported)
	return s.export(ctx)
}

// Reset borra fichas, agentes y log. Queda solo la entrada que registra el reset.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replace(ctx, Document{}); err != nil {
		return err
	}
	s.lastUpdated = nil
	s.record(ctx, msgReset)
	return nil
}

// Save guarda un snapshot del estado actual y devuelve el sello de tiempo.
func (s *Service) Save(ctx context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) (time.Time, error) {
	if s.snapshots == nil {
		return time.Time{}, ErrNoStore
	}
	doc, err := s.export(ctx)
	if err != nil {
		return time.Time{}, err
	}
	now := s.now().UTC()
	doc.LastUpdated = &now
	if err := s.snapshots.Save(ctx, doc); err != nil {
		return time.Time{}, fmt.Errorf("save snapshot: %w", err)
	}

	s.lastUpdated = &now
	s.savedLogID = latestLogID(doc)
	return now, nil
}

// SaveIfChanged guarda solo si hubo actividad desde el último snapshot.
// La actividad se detecta por la entrada más reciente del log.
func (s *Service) SaveIfChanged(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest, err := s.logs.List(ctx, 1)
	if err != nil {
		return false, err
	}
	if len(latest) == 0 || latest[0].ID == s.savedLogID {
		return false, nil
	}
	if _, err := s.save(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// RestoreLatest carga el último snapshot. false si no había ninguno.
func (s *Service) RestoreLatest(ctx context.Context) (bool, error) {
	if s.snapshots == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.snapshots.Latest(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if err := validate(doc); err != nil {
		return false, err
	}
	unlinkUnknownAgents(doc)
	if err := s.replace(ctx, doc); err != nil {
		return false, err
	}

	s.lastUpdated = doc.LastUpdated
	s.savedLogID = latestLogID(doc)
	s.log.Info("snapshot restored", map[string]any{
		"children":     len(doc.Children),
		"agents":       len(doc.Agents),
		"last_updated": doc.LastUpdated,
	})
	return true, nil
}

// replace cambia todo el estado. Si algún repo falla a mitad de camino vuelve a
// escribir el estado anterior para no dejar fichas de un documento con agentes
// de otro.
func (s *Service) replace(ctx context.Context, doc Document) error {
	prev, err := s.export(ctx)
	if err != nil {
		return err
	}
	if err := s.writeAll(ctx, doc); err != nil {
		if rbErr := s.writeAll(ctx, prev); rbErr != nil {
			s.log.Error("rollback after failed replace", map[string]any{"error": rbErr.Error()})
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	return nil
}

func (s *Service) writeAll(ctx context.Context, doc Document) error {
	if err := s.children.ReplaceAll(ctx, doc.Children); err != nil {
		return fmt.Errorf("replace children: %w", err)
	}
	if err := s.agents.ReplaceAll(ctx, doc.Agents); err != nil {
		return fmt.Errorf("replace agents: %w", err)
	}
	if err := s.logs.ReplaceAll(ctx, doc.Logs); err != nil {
		return fmt.Errorf("replace logs: %w", err)
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

// Decode parsea y valida un documento exportado. Los tres arrays son obligatorios.
func Decode(raw []byte) (Document, error) {
	var in importDocument
	if err := json.Unmarshal(raw, &in); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if in.Children == nil || in.Agents == nil || in.Logs == nil {
		return Document{}, fmt.Errorf("%w: children, healthAgents and logs are required", ErrInvalidDocument)
	}

	doc := Document{
		Children:    *in.Children,
		Agents:      *in.Agents,
		Logs:        *in.Logs,
		LastUpdated: in.LastUpdated,
	}
	if err := validate(doc); err != nil {
		return Document{}, err
	}
	unlinkUnknownAgents(doc)
	return doc, nil
}

// unlinkUnknownAgents limpia los acsId que no están entre los agentes del
// documento, igual que la cascada al borrar un agente.
func unlinkUnknownAgents(doc Document) {
	known := make(map[string]bool, len(doc.Agents))
	for _, a := range doc.Agents {
		known[a.ID] = true
	}
	for i := range doc.Children {
		if id := doc.Children[i].AgentID; id != "" && !known[id] {
			doc.Children[i].AgentID = ""
		}
	}
}

func validate(doc Document) error {
	seen := map[string]bool{}
	for _, c := range doc.Children {
		if strings.TrimSpace(c.ID) == "" || seen[c.ID] {
			return fmt.Errorf("%w: child id %q missing or repeated", ErrInvalidDocument, c.ID)
		}
		seen[c.ID] = true
		if c.DateOfBirth.IsZero() {
			return fmt.Errorf("%w: child %s without dateOfBirth", ErrInvalidDocument, c.ID)
		}
		for _, v := range c.Visits {
			if !v.Status.Valid() {
				return fmt.Errorf("%w: child %s visit %s status %q", ErrInvalidDocument, c.ID, v.ID, v.Status)
			}
		}
	}

	seen = map[string]bool{}
	for _, a := range doc.Agents {
		if strings.TrimSpace(a.ID) == "" || seen[a.ID] {
			return fmt.Errorf("%w: agent id %q missing or repeated", ErrInvalidDocument, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

func latestLogID(doc Document) string {
	var id string
	var ts time.Time
	for _, e := range doc.Logs {
		if id == "" || e.Timestamp.After(ts) {
			id, ts = e.ID, e.Timestamp
		}
	}
	return id
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
