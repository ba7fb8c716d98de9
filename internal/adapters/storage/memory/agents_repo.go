package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"puericultura/internal/domain/agents"
)

type agentRepo struct {
	mu   sync.RWMutex
	byID map[string]agents.Agent
}

func NewAgentRepo() agents.Repository {
	return &agentRepo{
		byID: make(map[string]agents.Agent),
	}
}

func (r *agentRepo) Create(ctx context.Context, a agents.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("agent id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("agent already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *agentRepo) Update(ctx context.Context, a agents.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return agents.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *agentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return agents.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *agentRepo) GetByID(ctx context.Context, id string) (agents.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return agents.Agent{}, agents.ErrNotFound
	}
	return a, nil
}

func (r *agentRepo) List(ctx context.Context) ([]agents.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]agents.Agent, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}

	// Orden por nombre (los selects de la UI lo esperan así)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *agentRepo) ReplaceAll(ctx context.Context, items []agents.Agent) error {
	byID := make(map[string]agents.Agent, len(items))
	for _, a := range items {
		if strings.TrimSpace(a.ID) == "" {
			return errors.New("agent id required")
		}
		byID[a.ID] = a
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = byID
	return nil
}
