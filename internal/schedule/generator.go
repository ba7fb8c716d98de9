// Package schedule genera la agenda fija de consultas de puericultura a partir
// de la fecha de nacimiento.
package schedule

import (
	"fmt"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/visits"
)

// Milestone es un hito de la agenda: desplazamiento en días o en meses desde el nacimiento.
type Milestone struct {
	Name   string
	Days   int
	Months int
}

func (m Milestone) dueFrom(birth calendar.Date) calendar.Date {
	d := birth
	if m.Days != 0 {
		d = d.AddDays(m.Days)
	}
	if m.Months != 0 {
		d = d.AddMonths(m.Months)
	}
	return calendar.NextBusinessDay(d)
}

// Milestones es la tabla de referencia, en orden.
var Milestones = []Milestone{
	{Name: "Recém-nascido", Days: 0},
	{Name: "7 Dias", Days: 7},
	{Name: "1 Mês", Months: 1},
	{Name: "2 Meses", Months: 2},
	{Name: "4 Meses", Months: 4},
	{Name: "6 Meses", Months: 6},
	{Name: "9 Meses", Months: 9},
	{Name: "12 Meses", Months: 12},
	{Name: "15 Meses", Months: 15},
	{Name: "18 Meses", Months: 18},
	{Name: "24 Meses", Months: 24},
}

// Generate devuelve una consulta Pendente por hito. El id es "<nacimiento>-<índice>",
// así que regenerar con la misma fecha produce exactamente la misma agenda.
func Generate(birth calendar.Date) []visits.Visit {
	out := make([]visits.Visit, 0, len(Milestones))
	for i, m := range Milestones {
		out = append(out, visits.Visit{
			ID:        VisitID(birth, i),
			Milestone: m.Name,
			DueDate:   m.dueFrom(birth),
			Status:    visits.StatusPending,
		})
	}
	return out
}

// GenerateFromString valida la fecha antes de generar; si es inválida no hay agenda parcial.
func GenerateFromString(birth string) ([]visits.Visit, error) {
	d, err := calendar.Parse(birth)
	if err != nil {
		return nil, err
	}
	return Generate(d), nil
}

func VisitID(birth calendar.Date, index int) string {
	return fmt.Sprintf("%s-%d", birth, index)
}
