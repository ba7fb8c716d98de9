package router

import (
	"database/sql"
	"net/http"

	"puericultura/internal/adapters/reminders/template"
	mem "puericultura/internal/adapters/storage/memory"
	pg "puericultura/internal/adapters/storage/postgres"
	"puericultura/internal/domain/agents"
	"puericultura/internal/domain/auditlog"
	"puericultura/internal/domain/backup"
	"puericultura/internal/domain/children"
	"puericultura/internal/domain/reports"
	"puericultura/internal/middleware"
	"puericultura/internal/platform/logger"
	"puericultura/internal/ports/reminders"

	_ "puericultura/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Vacío = sin guard (modo dev).
	APIKey string

	Logger logger.Logger

	// Sin Drafter se usan las plantillas fijas.
	Drafter    reminders.Drafter
	Dispatcher reminders.Dispatcher
	Snapshots  backup.SnapshotStore
}

// App es el router armado más los servicios que cmd/api necesita fuera de HTTP.
type App struct {
	Handler http.Handler
	Backup  *backup.Service
}

func NewRouter(opts Options) http.Handler {
	return New(opts).Handler
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.APIKey(opts.APIKey, "/health", "/swagger/"))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		childRepo children.Repository
		agentRepo agents.Repository
		logRepo   auditlog.Repository
	)
	if opts.DB != nil {
		childRepo = pg.NewChildrenRepo(opts.DB)
		agentRepo = pg.NewAgentsRepo(opts.DB)
		logRepo = pg.NewAuditLogRepo(opts.DB)
	} else {
		childRepo = mem.NewChildRepo()
		agentRepo = mem.NewAgentRepo()
		logRepo = mem.NewAuditLogRepo()
	}

	drafter := opts.Drafter
	if drafter == nil {
		drafter = template.New()
	}

	// Services por módulo
	auditSvc := auditlog.NewService(logRepo)
	agentsSvc := agents.NewService(agentRepo, auditSvc)
	childrenSvc := children.NewService(childRepo, children.Deps{
		Drafter:    drafter,
		Dispatcher: opts.Dispatcher,
		Audit:      auditSvc,
		Agents:     agentsSvc,
		Logger:     log,
	})
	agentsSvc.UseChildren(childrenSvc)
	reportsSvc := reports.NewService(childrenSvc, agentsSvc)
	backupSvc := backup.NewService(backup.Deps{
		Children:  childRepo,
		Agents:    agentRepo,
		Logs:      logRepo,
		Audit:     auditSvc,
		Snapshots: opts.Snapshots,
		Logger:    log,
	})

	// Rutas por módulo
	children.RegisterRoutes(r, childrenSvc)
	agents.RegisterRoutes(r, agentsSvc)
	auditlog.RegisterRoutes(r, auditSvc)
	reports.RegisterRoutes(r, reportsSvc)
	backup.RegisterRoutes(r, backupSvc)

	return &App{Handler: r, Backup: backupSvc}
}
