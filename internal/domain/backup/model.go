package backup

import (
	"time"

	"puericultura/internal/domain/agents"
	"puericultura/internal/domain/auditlog"
	"puericultura/internal/domain/children"
)

// Document es el estado completo del sistema tal como se exporta e importa.
type Document struct {
	Children    []children.Child `json:"children"`
	Agents      []agents.Agent   `json:"healthAgents"`
	Logs        []auditlog.Entry `json:"logs"`
	LastUpdated *time.Time       `json:"lastUpdated,omitempty"`
}

// importDocument distingue "array ausente" de "array vacío".
type importDocument struct {
	Children    *[]children.Child `json:"children"`
	Agents      *[]agents.Agent   `json:"healthAgents"`
	Logs        *[]auditlog.Entry `json:"logs"`
	LastUpdated *time.Time        `json:"lastUpdated"`
}
