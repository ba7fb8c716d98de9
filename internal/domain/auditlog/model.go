package auditlog

import "time"

// Entry es una línea del registro de actividad. Solo se agregan, nunca se editan.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}
