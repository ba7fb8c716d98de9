package reminders

import (
	"context"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/visits"
)

// Request tiene lo necesario para redactar el recordatorio de una consulta.
type Request struct {
	ChildName    string
	GuardianName string
	Milestone    string
	DueDate      calendar.Date
}

// Drafter redacta el par de mensajes (WhatsApp + e-mail).
type Drafter interface {
	Draft(ctx context.Context, req Request) (visits.Reminder, error)
}

// Message es lo que se entrega al gateway de envío.
type Message struct {
	ChildID   string
	VisitID   string
	Contact   string
	Milestone string
	DueDate   calendar.Date
	Reminder  visits.Reminder
}

// Dispatcher entrega un recordatorio ya redactado.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}
