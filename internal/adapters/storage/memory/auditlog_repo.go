package memory

import (
	"context"
	"sort"
	"sync"

	"puericultura/internal/domain/auditlog"
)

type auditLogRepo struct {
	mu      sync.RWMutex
	entries []auditlog.Entry // más reciente primero
}

func NewAuditLogRepo() auditlog.Repository {
	return &auditLogRepo{}
}

func (r *auditLogRepo) Append(ctx context.Context, e auditlog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]auditlog.Entry{e}, r.entries...)
	return nil
}

func (r *auditLogRepo) List(ctx context.Context, limit int) ([]auditlog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]auditlog.Entry, n)
	copy(out, r.entries[:n])
	return out, nil
}

func (r *auditLogRepo) ReplaceAll(ctx context.Context, items []auditlog.Entry) error {
	out := make([]auditlog.Entry, len(items))
	copy(out, items)
	// un documento importado puede venir en cualquier orden
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = out
	return nil
}
