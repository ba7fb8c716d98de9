package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"puericultura/internal/adapters/reminders/gateway"
	"puericultura/internal/adapters/reminders/gemini"
	pg "puericultura/internal/adapters/storage/postgres"
	"puericultura/internal/adapters/storage/sqlite"
	"puericultura/internal/domain/backup"
	"puericultura/internal/platform/config"
	"puericultura/internal/router"
)

// @title Puericultura API
// @version 1.0
// @description Agenda de consultas de puericultura, ciclo de vida de cada consulta e informes de cohorte.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key
func main() {
	os.Exit(run())
}

// run devuelve el exit code; así los defers (autosave, cierre de stores) corren
// antes de salir.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}
	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{APIKey: cfg.APIKey, Logger: log}
	if cfg.APIKey == "" {
		log.Warn("API_KEY vacío: API sin autenticación", nil)
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("no se pudo abrir postgres", map[string]any{"error": err.Error()})
			return 1
		}
		defer db.Close()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Error("no se pudo crear el schema", map[string]any{"error": err.Error()})
			return 1
		}
		opts.DB = db
	}

	if cfg.SnapshotPath != "" {
		store, err := sqlite.Open(cfg.SnapshotPath)
		if err != nil {
			log.Error("no se pudo abrir el archivo de snapshots", map[string]any{"error": err.Error(), "path": cfg.SnapshotPath})
			return 1
		}
		defer store.Close()
		opts.Snapshots = store
	}

	if cfg.GeminiAPIKey != "" {
		drafter, err := gemini.Open(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			// se sigue con las plantillas fijas
			log.Warn("gemini no disponible", map[string]any{"error": err.Error()})
		} else {
			defer drafter.Close()
			opts.Drafter = drafter
		}
	}

	if cfg.ReminderGatewayURL != "" {
		d, err := gateway.New(cfg.ReminderGatewayURL, cfg.ReminderGatewayToken, cfg.ReminderTimeout)
		if err != nil {
			log.Error("gateway de recordatorios inválido", map[string]any{"error": err.Error()})
			return 1
		}
		opts.Dispatcher = d
	}

	app := router.New(opts)

	if opts.Snapshots != nil {
		restored, err := app.Backup.RestoreLatest(ctx)
		switch {
		case err != nil:
			log.Error("no se pudo restaurar el último snapshot", map[string]any{"error": err.Error()})
		case restored:
			log.Info("estado restaurado desde snapshot", nil)
		}

		autosaver := backup.NewAutosaver(app.Backup, cfg.AutosaveInterval, log)
		done := make(chan struct{})
		go func() {
			defer close(done)
			autosaver.Run(ctx)
		}()
		defer func() { <-done }()
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Addr()})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		stop()
		return 1
	}
	return 0
}
