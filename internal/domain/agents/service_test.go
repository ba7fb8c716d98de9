package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puericultura/internal/domain/auditlog"
)

type testRepo struct {
	byID map[string]Agent
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Agent{}}
}

func (r *testRepo) Create(ctx context.Context, a Agent) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Agent) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Agent, error) {
	a, ok := r.byID[id]
	if !ok {
		return Agent{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Agent, error) {
	out := make([]Agent, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) ReplaceAll(ctx context.Context, items []Agent) error {
	r.byID = map[string]Agent{}
	for _, a := range items {
		r.byID[a.ID] = a
	}
	return nil
}

type fakeUnlinker struct {
	cleared []string
	err     error
	// removedInside queda en true si remove corrió dentro de UnlinkAgent
	removedInside bool
}

func (u *fakeUnlinker) UnlinkAgent(ctx context.Context, agentID string, remove func(context.Context) error) (int, error) {
	if u.err != nil {
		return 0, u.err
	}
	u.cleared = append(u.cleared, agentID)
	if err := remove(ctx); err != nil {
		return 2, err
	}
	u.removedInside = true
	return 2, nil
}

type fakeAudit struct{ messages []string }

func (a *fakeAudit) Record(ctx context.Context, msg string) (auditlog.Entry, error) {
	a.messages = append(a.messages, msg)
	return auditlog.Entry{Message: msg}, nil
}

func TestCreateAndUpdate(t *testing.T) {
	audit := &fakeAudit{}
	svc := NewService(newTestRepo(), audit)
	ctx := context.Background()

	a, err := svc.Create(ctx, Input{Name: "  Joana Lima ", Email: "joana@ubs.gov.br", Contact: "11 98888-0000"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Joana Lima", a.Name)

	email := "nao-e-email"
	_, err = svc.Update(ctx, a.ID, UpdateInput{Email: &email})
	assert.ErrorIs(t, err, ErrInvalidInput)

	contact := "11 97777-0000"
	got, err := svc.Update(ctx, a.ID, UpdateInput{Contact: &contact})
	require.NoError(t, err)
	assert.Equal(t, "11 97777-0000", got.Contact)
	assert.Equal(t, "joana@ubs.gov.br", got.Email)

	_, err = svc.Create(ctx, Input{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Len(t, audit.messages, 2)
}

func TestDelete_CascadesToChildren(t *testing.T) {
	repo := newTestRepo()
	audit := &fakeAudit{}
	unlinker := &fakeUnlinker{}
	svc := NewService(repo, audit)
	svc.UseChildren(unlinker)
	ctx := context.Background()

	a, err := svc.Create(ctx, Input{Name: "Joana"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Equal(t, []string{a.ID}, unlinker.cleared)
	assert.True(t, unlinker.removedInside)
	assert.Empty(t, repo.byID)
	assert.Equal(t, `Agente de Saúde "Joana" foi removido e desvinculado das crianças.`, audit.messages[len(audit.messages)-1])

	ok, err := svc.Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_UnlinkFailureKeepsAgent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)
	svc.UseChildren(&fakeUnlinker{err: errors.New("boom")})
	ctx := context.Background()

	a, err := svc.Create(ctx, Input{Name: "Joana"})
	require.NoError(t, err)

	assert.Error(t, svc.Delete(ctx, a.ID))
	ok, _ := svc.Exists(ctx, a.ID)
	assert.True(t, ok)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
}

func TestDelete_WithoutChildrenService(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, Input{Name: "Joana"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Empty(t, repo.byID)
}
