package visits

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"puericultura/internal/calendar"
)

var (
	ErrInvalidStatus        = errors.New("invalid status")
	ErrTransitionNotAllowed = errors.New("transition not allowed")
	ErrInvalidPayload       = errors.New("invalid payload")
)

type Event string

const (
	EventDraftReminder      Event = "draftReminder"
	EventMarkReminderSent   Event = "markReminderSent"
	EventRecordClinicalData Event = "recordClinicalData"
)

// ClinicalData es lo que se carga al realizar la consulta.
type ClinicalData struct {
	PerformedDate       calendar.Date
	WeightKg            *float64
	LengthCm            *float64
	HeadCircumferenceCm *float64
	Observations        string
}

// Payload acompaña al evento: Reminder para draftReminder, Clinical para recordClinicalData.
type Payload struct {
	Reminder *Reminder
	Clinical *ClinicalData
}

// transitions es la tabla de aristas permitidas (estado actual -> evento -> nuevo estado).
var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventDraftReminder:      StatusReminderDrafted,
		EventRecordClinicalData: StatusPerformed,
	},
	StatusReminderDrafted: {
		EventMarkReminderSent:   StatusReminderSent,
		EventRecordClinicalData: StatusPerformed,
	},
	StatusReminderSent: {
		EventMarkReminderSent:   StatusReminderSent,
		EventRecordClinicalData: StatusPerformed,
	},
	StatusPerformed: {
		EventRecordClinicalData: StatusPerformed,
	},
}

func CanApply(s Status, e Event) bool {
	_, ok := transitions[s][e]
	return ok
}

// Apply aplica un evento sobre una copia de v. Si el evento no está permitido o
// el payload es inválido devuelve v sin cambios junto con el error.
func Apply(v Visit, e Event, p Payload) (Visit, error) {
	if !v.Status.Valid() {
		return v, fmt.Errorf("%w: %q", ErrInvalidStatus, v.Status)
	}
	next, ok := transitions[v.Status][e]
	if !ok {
		return v, fmt.Errorf("%w: %s from %q", ErrTransitionNotAllowed, e, v.Status)
	}

	out := v
	switch e {
	case EventDraftReminder:
		r, err := validReminder(p.Reminder)
		if err != nil {
			return v, err
		}
		out.Reminder = &r

	case EventMarkReminderSent:
		// solo cambia el estado

	case EventRecordClinicalData:
		c := p.Clinical
		if c == nil || c.PerformedDate.IsZero() {
			return v, fmt.Errorf("%w: performed date required", ErrInvalidPayload)
		}
		for _, m := range []*float64{c.WeightKg, c.LengthCm, c.HeadCircumferenceCm} {
			if m != nil && (*m <= 0 || math.IsNaN(*m) || math.IsInf(*m, 0)) {
				return v, fmt.Errorf("%w: measurements must be positive", ErrInvalidPayload)
			}
		}

		performed := c.PerformedDate
		out.PerformedDate = &performed
		out.WeightKg = cloneFloat(c.WeightKg)
		out.LengthCm = cloneFloat(c.LengthCm)
		out.HeadCircumferenceCm = cloneFloat(c.HeadCircumferenceCm)
		out.Observations = strings.TrimSpace(c.Observations)
		out.BMI = nil
		if c.WeightKg != nil && c.LengthCm != nil {
			if bmi, ok := BMI(*c.WeightKg, *c.LengthCm); ok {
				out.BMI = &bmi
			}
		}

	default:
		return v, fmt.Errorf("%w: unknown event %q", ErrTransitionNotAllowed, e)
	}

	out.Status = next
	return out, nil
}

// BMI = peso / (largo en metros)^2, redondeado a 2 decimales.
func BMI(weightKg, lengthCm float64) (float64, bool) {
	if weightKg <= 0 || lengthCm <= 0 {
		return 0, false
	}
	m := lengthCm / 100
	return math.Round(weightKg/(m*m)*100) / 100, true
}

func validReminder(r *Reminder) (Reminder, error) {
	if r == nil {
		return Reminder{}, fmt.Errorf("%w: reminder required", ErrInvalidPayload)
	}
	out := Reminder{
		WhatsApp:     strings.TrimSpace(r.WhatsApp),
		EmailSubject: strings.TrimSpace(r.EmailSubject),
		EmailBody:    strings.TrimSpace(r.EmailBody),
	}
	if out.WhatsApp == "" || out.EmailBody == "" {
		return Reminder{}, fmt.Errorf("%w: reminder messages required", ErrInvalidPayload)
	}
	return out, nil
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
