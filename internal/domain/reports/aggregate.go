package reports

import (
	"math"
	"sort"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/children"
	"puericultura/internal/domain/visits"
)

// AgeInMonths: meses cumplidos desde el nacimiento, 0 si la fecha es futura.
func AgeInMonths(dob, today calendar.Date) int {
	m := calendar.MonthsBetween(dob, today)
	if m < 0 {
		return 0
	}
	return m
}

// Match indica si la ficha pasa los filtros.
func (f Filters) Match(c children.Child, today calendar.Date) bool {
	if f.AgeBand != "" {
		b, ok := BandFor(AgeInMonths(c.DateOfBirth, today))
		if !ok || b != f.AgeBand {
			return false
		}
	}
	if f.Sex != nil && c.Sex != *f.Sex {
		return false
	}
	if f.AgentID != "" && c.AgentID != f.AgentID {
		return false
	}
	return true
}

// Cohort filtra las fichas conservando el orden.
func Cohort(items []children.Child, f Filters, today calendar.Date) []children.Child {
	out := make([]children.Child, 0, len(items))
	for _, c := range items {
		if f.Match(c, today) {
			out = append(out, c)
		}
	}
	return out
}

// Rows aplana las consultas de la cohorte, cada una con su ficha.
func Rows(cohort []children.Child) []Row {
	out := make([]Row, 0, len(cohort)*11)
	for _, c := range cohort {
		for _, v := range c.Visits {
			out = append(out, Row{Child: c, Visit: v})
		}
	}
	return out
}

// Aggregate calcula el informe de la cohorte filtrada. Es puro: no guarda nada
// y con cohortes vacías devuelve todo en cero.
func Aggregate(items []children.Child, f Filters, p Period, today calendar.Date) Snapshot {
	cohort := Cohort(items, f, today)
	rows := Rows(cohort)

	s := Snapshot{Today: today, CohortSize: len(cohort)}

	// el histograma ignora el filtro de edad
	histFilter := f
	histFilter.AgeBand = ""
	for _, c := range Cohort(items, histFilter, today) {
		b, ok := BandFor(AgeInMonths(c.DateOfBirth, today))
		if !ok {
			continue
		}
		switch b {
		case AgeBand0to6:
			s.AgeHistogram.Band0to6++
		case AgeBand6to12:
			s.AgeHistogram.Band6to12++
		case AgeBand12to24:
			s.AgeHistogram.Band12to24++
		}
	}

	trailFrom := today.AddMonths(-12)
	s.Trailing12Months.From, s.Trailing12Months.To = trailFrom, today

	monthFrom, monthTo := p.Window()
	s.Monthly.From, s.Monthly.To = monthFrom, monthTo
	monthChildren := map[string]struct{}{}

	for _, r := range rows {
		v := r.Visit
		performed := v.Status == visits.StatusPerformed
		overdue := visits.IsOverduePending(v, today)

		switch {
		case performed:
			s.Tally.Performed++
			if visits.IsLate(v) {
				s.Tally.LateAmongPerformed++
			}
		case overdue:
			s.Tally.PendingOverdue++
		}

		if v.DueDate.Between(trailFrom, today) {
			s.Trailing12Months.Expected++
			if performed {
				s.Trailing12Months.Performed++
			} else if overdue {
				s.Trailing12Months.PendingOverdue++
			}
		}

		if v.DueDate.Between(monthFrom, monthTo) {
			monthChildren[r.Child.ID] = struct{}{}
			if performed {
				s.Monthly.Performed++
			}
		}
	}

	s.Tally.OnTimePerformed = s.Tally.Performed - s.Tally.LateAmongPerformed
	s.Trailing12Months.CompletionRate = percent(s.Trailing12Months.Performed, s.Trailing12Months.Expected)
	s.Monthly.ChildrenWithScheduledVisit = len(monthChildren)
	s.Monthly.Shortfall = s.Monthly.ChildrenWithScheduledVisit - s.Monthly.Performed
	return s
}

// percent redondea a 1 decimal; 0 si den es 0.
func percent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*1000) / 10
}

// BuildAgenda devuelve las consultas con fecha hoy o posterior, ordenadas por fecha.
func BuildAgenda(items []children.Child, agentNames map[string]string, today calendar.Date) []AgendaItem {
	out := make([]AgendaItem, 0)
	for _, c := range items {
		for _, v := range c.Visits {
			if v.DueDate.Before(today) {
				continue
			}
			out = append(out, AgendaItem{
				ChildID:   c.ID,
				ChildName: c.Name,
				AgentID:   c.AgentID,
				AgentName: agentNames[c.AgentID],
				Visit:     v,
				DueDate:   v.DueDate,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// BuildDashboard cuenta fichas, agentes y consultas pendientes desde hoy.
func BuildDashboard(items []children.Child, agentCount int, today calendar.Date) Dashboard {
	d := Dashboard{Children: len(items), Agents: agentCount}
	for _, c := range items {
		for _, v := range c.Visits {
			if v.Status == visits.StatusPending && !v.DueDate.Before(today) {
				d.UpcomingPending++
			}
		}
	}
	return d
}
