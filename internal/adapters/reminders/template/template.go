package template

import (
	"context"
	"fmt"
	"strings"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/visits"
	"puericultura/internal/ports/reminders"
)

// Drafter arma los mensajes con plantillas fijas en pt-BR. No falla nunca;
// es el fallback cuando no hay modelo configurado o el modelo no responde.
type Drafter struct{}

func New() Drafter { return Drafter{} }

func (Drafter) Draft(ctx context.Context, req reminders.Request) (visits.Reminder, error) {
	return Render(req), nil
}

func Render(req reminders.Request) visits.Reminder {
	guardian := strings.TrimSpace(req.GuardianName)
	if guardian == "" {
		guardian = "responsável"
	}
	child := strings.TrimSpace(req.ChildName)
	date := FormatDate(req.DueDate)

	return visits.Reminder{
		WhatsApp:     fmt.Sprintf("Olá %s! Lembrete da consulta de %s no dia %s.", guardian, child, date),
		EmailSubject: fmt.Sprintf("Lembrete de Consulta: %s", child),
		EmailBody: fmt.Sprintf(
			"Prezado(a) %s,\n\nEste é um lembrete amigável sobre a consulta de puericultura de %s (%s), agendada para o dia %s.\n\nAtenciosamente,\nSua Equipe de Saúde.",
			guardian, child, req.Milestone, date,
		),
	}
}

// FormatDate usa el formato local dd/mm/aaaa.
func FormatDate(d calendar.Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}
