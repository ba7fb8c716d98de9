package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"puericultura/internal/adapters/reminders/template"
	"puericultura/internal/domain/visits"
	"puericultura/internal/platform/logger"
	"puericultura/internal/ports/reminders"
)

var errEmptyResponse = errors.New("gemini: empty response")

// generator es la parte de *genai.GenerativeModel que usamos.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Drafter redacta recordatorios con Gemini. Cualquier falla del modelo cae a la
// plantilla fija, así que Draft nunca devuelve error por culpa del modelo.
type Drafter struct {
	client   *genai.Client
	model    generator
	fallback reminders.Drafter
	log      logger.Logger
}

// Open crea el cliente con la API key. Cerrar con Close.
func Open(ctx context.Context, apiKey, modelName string, log logger.Logger) (*Drafter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = reminderSchema()

	d := newDrafter(model, log)
	d.client = client
	return d, nil
}

func newDrafter(model generator, log logger.Logger) *Drafter {
	if log == nil {
		log = logger.Nop()
	}
	return &Drafter{
		model:    model,
		fallback: template.New(),
		log:      log.With(map[string]any{"adapter": "gemini"}),
	}
}

func (d *Drafter) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Close()
}

func (d *Drafter) Draft(ctx context.Context, req reminders.Request) (visits.Reminder, error) {
	r, err := d.generate(ctx, req)
	if err != nil {
		d.log.Warn("gemini draft failed, using template", map[string]any{"error": err.Error()})
		return d.fallback.Draft(ctx, req)
	}
	return r, nil
}

func (d *Drafter) generate(ctx context.Context, req reminders.Request) (visits.Reminder, error) {
	resp, err := d.model.GenerateContent(ctx, genai.Text(prompt(req)))
	if err != nil {
		return visits.Reminder{}, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return visits.Reminder{}, errEmptyResponse
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if txt, ok := p.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	var out visits.Reminder
	if err := json.Unmarshal([]byte(strings.TrimSpace(sb.String())), &out); err != nil {
		return visits.Reminder{}, fmt.Errorf("gemini: decode reminder: %w", err)
	}
	if strings.TrimSpace(out.WhatsApp) == "" || strings.TrimSpace(out.EmailBody) == "" {
		return visits.Reminder{}, errEmptyResponse
	}
	return out, nil
}

func prompt(req reminders.Request) string {
	return fmt.Sprintf(
		"Gere um lembrete de consulta de puericultura (%s) para %s, responsável por %s. A consulta é em %s. "+
			"Crie duas versões: uma para WhatsApp (informal, amigável, com emojis) e uma para E-mail "+
			"(um pouco mais formal, mas calorosa, com assunto e corpo separados).",
		req.Milestone, req.GuardianName, req.ChildName, template.FormatDate(req.DueDate),
	)
}

func reminderSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"whatsapp":     {Type: genai.TypeString, Description: "Texto para lembrete de WhatsApp."},
			"emailSubject": {Type: genai.TypeString, Description: "Assunto para o lembrete de E-mail."},
			"emailBody":    {Type: genai.TypeString, Description: "Corpo do texto para lembrete de E-mail."},
		},
		Required: []string{"whatsapp", "emailSubject", "emailBody"},
	}
}
