package reports

import (
	"fmt"
	"time"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/children"
	"puericultura/internal/domain/visits"
)

// AgeBand es una franja de edad en meses cumplidos.
type AgeBand string

const (
	AgeBand0to6   AgeBand = "0-6"
	AgeBand6to12  AgeBand = "6-12"
	AgeBand12to24 AgeBand = "12-24"
)

func ParseAgeBand(s string) (AgeBand, error) {
	switch b := AgeBand(s); b {
	case "", AgeBand0to6, AgeBand6to12, AgeBand12to24:
		return b, nil
	default:
		return "", fmt.Errorf("%w: age band %q", ErrInvalidFilter, s)
	}
}

// BandFor: 0-6 = hasta 6 meses, 6-12 = 7 a 12, 12-24 = 13 a 24. Mayores de 24 no entran.
func BandFor(months int) (AgeBand, bool) {
	switch {
	case months <= 6:
		return AgeBand0to6, true
	case months <= 12:
		return AgeBand6to12, true
	case months <= 24:
		return AgeBand12to24, true
	default:
		return "", false
	}
}

// Filters: cada campo vacío (o nil) es "sin restricción".
type Filters struct {
	AgeBand AgeBand
	Sex     *children.Sex // puntero: "" es un valor válido (no informado)
	AgentID string
}

// Period es el mes del informe mensual.
type Period struct {
	Month time.Month
	Year  int
}

func (p Period) Valid() bool {
	return p.Month >= time.January && p.Month <= time.December && p.Year > 0
}

func (p Period) Window() (calendar.Date, calendar.Date) {
	return calendar.MonthBounds(p.Year, p.Month)
}

type AgeHistogram struct {
	Band0to6   int `json:"0-6"`
	Band6to12  int `json:"6-12"`
	Band12to24 int `json:"12-24"`
}

type Tally struct {
	Performed          int `json:"performed"`
	LateAmongPerformed int `json:"lateAmongPerformed"`
	OnTimePerformed    int `json:"onTimePerformed"`
	PendingOverdue     int `json:"pendingOverdue"`
}

type Trailing struct {
	From           calendar.Date `json:"from"`
	To             calendar.Date `json:"to"`
	Expected       int           `json:"expected"`
	Performed      int           `json:"performed"`
	PendingOverdue int           `json:"pendingOverdue"`
	CompletionRate float64       `json:"completionRate"` // %, 1 decimal
}

type Monthly struct {
	From                       calendar.Date `json:"from"`
	To                         calendar.Date `json:"to"`
	ChildrenWithScheduledVisit int           `json:"childrenWithScheduledVisit"`
	Performed                  int           `json:"performed"`
	Shortfall                  int           `json:"shortfall"` // puede ser negativo
}

// Snapshot es el resultado del informe de cohorte.
type Snapshot struct {
	Today            calendar.Date `json:"today"`
	CohortSize       int           `json:"cohortSize"`
	AgeHistogram     AgeHistogram  `json:"ageHistogram"`
	Tally            Tally         `json:"tally"`
	Trailing12Months Trailing      `json:"trailing12Months"`
	Monthly          Monthly       `json:"monthly"`
}

// Row es una consulta con su ficha (base de las exportaciones).
type Row struct {
	Child children.Child
	Visit visits.Visit
}

// AgendaItem es una consulta próxima.
type AgendaItem struct {
	ChildID   string        `json:"childId"`
	ChildName string        `json:"childName"`
	AgentID   string        `json:"acsId,omitempty"`
	AgentName string        `json:"acsName,omitempty"`
	Visit     visits.Visit  `json:"consultation"`
	DueDate   calendar.Date `json:"scheduledDate"`
}

type Dashboard struct {
	Children        int `json:"children"`
	Agents          int `json:"healthAgents"`
	UpcomingPending int `json:"upcomingPending"`
}
