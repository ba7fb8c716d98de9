package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puericultura/internal/calendar"
	"puericultura/internal/ports/reminders"
)

type fakeModel struct {
	text   string
	err    error
	prompt string
}

func (m *fakeModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		if txt, ok := parts[0].(genai.Text); ok {
			m.prompt = string(txt)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(m.text)}},
		}},
	}, nil
}

var req = reminders.Request{
	ChildName:    "Ana",
	GuardianName: "Maria",
	Milestone:    "2 Meses",
	DueDate:      calendar.New(2024, time.March, 4),
}

func TestDraft_UsesModelOutput(t *testing.T) {
	m := &fakeModel{text: ` {"whatsapp": "Oi Maria 👶", "emailSubject": "Consulta da Ana", "emailBody": "Olá Maria, ..."} `}
	d := newDrafter(m, nil)

	r, err := d.Draft(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Oi Maria 👶", r.WhatsApp)
	assert.Equal(t, "Consulta da Ana", r.EmailSubject)
	assert.Contains(t, m.prompt, "04/03/2024")
	assert.Contains(t, m.prompt, "Maria")
}

func TestDraft_FallsBackToTemplate(t *testing.T) {
	for name, m := range map[string]*fakeModel{
		"error":       {err: errors.New("quota exceeded")},
		"not json":    {text: "desculpe, não posso"},
		"empty model": {text: `{"whatsapp": "", "emailSubject": "", "emailBody": ""}`},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := newDrafter(m, nil).Draft(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, "Olá Maria! Lembrete da consulta de Ana no dia 04/03/2024.", r.WhatsApp)
		})
	}
}

func TestReminderSchema(t *testing.T) {
	s := reminderSchema()
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"whatsapp", "emailSubject", "emailBody"}, s.Required)
	assert.Len(t, s.Properties, 3)
}
