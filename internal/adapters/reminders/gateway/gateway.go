package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"puericultura/internal/platform/httpclient"
	"puericultura/internal/ports/reminders"
)

// Dispatcher entrega recordatorios a un gateway HTTP externo (WhatsApp/e-mail).
// El gateway recibe un POST JSON por recordatorio.
type Dispatcher struct {
	http  *httpclient.Client
	url   string
	token string
}

func New(url, token string, timeout time.Duration) (*Dispatcher, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("gateway: url required")
	}
	return &Dispatcher{
		http:  httpclient.New(timeout),
		url:   url,
		token: strings.TrimSpace(token),
	}, nil
}

type payload struct {
	ChildID       string `json:"childId"`
	VisitID       string `json:"visitId"`
	Contact       string `json:"contact"`
	Milestone     string `json:"milestone"`
	ScheduledDate string `json:"scheduledDate"`
	WhatsApp      string `json:"whatsapp"`
	EmailSubject  string `json:"emailSubject"`
	EmailBody     string `json:"emailBody"`
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg reminders.Message) error {
	if strings.TrimSpace(msg.Contact) == "" {
		return errors.New("gateway: contact required")
	}

	headers := map[string]string{}
	if d.token != "" {
		headers["Authorization"] = "Bearer " + d.token
	}

	return d.http.DoJSON(ctx, http.MethodPost, d.url, headers, payload{
		ChildID:       msg.ChildID,
		VisitID:       msg.VisitID,
		Contact:       msg.Contact,
		Milestone:     msg.Milestone,
		ScheduledDate: msg.DueDate.String(),
		WhatsApp:      msg.Reminder.WhatsApp,
		EmailSubject:  msg.Reminder.EmailSubject,
		EmailBody:     msg.Reminder.EmailBody,
	}, nil)
}
