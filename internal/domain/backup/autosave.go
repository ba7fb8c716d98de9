package backup

import (
	"context"
	"time"

	"puericultura/internal/platform/logger"
)

// Autosaver guarda un snapshot cada interval si hubo actividad.
type Autosaver struct {
	svc      *Service
	interval time.Duration
	log      logger.Logger
}

func NewAutosaver(svc *Service, interval time.Duration, log logger.Logger) *Autosaver {
	if log == nil {
		log = logger.Nop()
	}
	return &Autosaver{svc: svc, interval: interval, log: log.With(map[string]any{"module": "autosave"})}
}

// Run bloquea hasta que ctx se cancela. Al salir intenta un último guardado.
func (a *Autosaver) Run(ctx context.Context) {
	if a.interval <= 0 {
		return
	}

	t := time.NewTicker(a.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			// ctx ya está cancelado; el último guardado usa uno propio
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			a.tick(flushCtx)
			cancel()
			return
		case <-t.C:
			a.tick(ctx)
		}
	}
}

func (a *Autosaver) tick(ctx context.Context) {
	saved, err := a.svc.SaveIfChanged(ctx)
	if err != nil {
		a.log.Error("autosave failed", map[string]any{"error": err.Error()})
		return
	}
	if saved {
		a.log.Debug("autosave", nil)
	}
}
