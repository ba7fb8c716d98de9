package visits

import (
	"fmt"

	"puericultura/internal/calendar"
)

// Status es el estado de una consulta. Los valores son las etiquetas que se
// persisten en el documento de estado.
type Status string

const (
	StatusPending         Status = "Pendente"
	StatusReminderDrafted Status = "Lembrete Criado"
	StatusReminderSent    Status = "Lembrete Enviado"
	StatusPerformed       Status = "Realizado"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal: Realizado no admite más transiciones salvo re-registrar datos clínicos.
func (s Status) Terminal() bool {
	return s == StatusPerformed
}

func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Reminder guarda el par de mensajes (WhatsApp + e-mail) generado para una consulta.
type Reminder struct {
	WhatsApp     string `json:"whatsapp"`
	EmailSubject string `json:"emailSubject"`
	EmailBody    string `json:"emailBody"`
}

// Visit es una consulta de puericultura ligada a un hito de la agenda.
// Los tags JSON siguen el formato del documento de estado exportado.
type Visit struct {
	ID        string        `json:"id"`
	Milestone string        `json:"milestone"`
	DueDate   calendar.Date `json:"scheduledDate"`
	Status    Status        `json:"status"`

	PerformedDate       *calendar.Date `json:"performedDate,omitempty"`
	WeightKg            *float64       `json:"weight,omitempty"`
	LengthCm            *float64       `json:"length,omitempty"`
	HeadCircumferenceCm *float64       `json:"headCircumference,omitempty"`
	BMI                 *float64       `json:"bmi,omitempty"`
	Observations        string         `json:"observations,omitempty"`

	Reminder *Reminder `json:"reminder,omitempty"`
}

// IsLate: realizada después de la fecha prevista.
func IsLate(v Visit) bool {
	return v.Status == StatusPerformed && v.PerformedDate != nil && v.PerformedDate.After(v.DueDate)
}

// IsOverduePending: no realizada y con fecha prevista anterior a today.
func IsOverduePending(v Visit, today calendar.Date) bool {
	return v.Status != StatusPerformed && v.DueDate.Before(today)
}

// FullyTracked indica que todas las consultas de la agenda están realizadas.
func FullyTracked(items []Visit) bool {
	for _, v := range items {
		if v.Status != StatusPerformed {
			return false
		}
	}
	return true
}

// Find devuelve el índice de la consulta con id, o -1.
func Find(items []Visit, id string) int {
	for i, v := range items {
		if v.ID == id {
			return i
		}
	}
	return -1
}
