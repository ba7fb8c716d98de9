package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"puericultura/internal/domain/children"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/", reportHandler(svc))
		rr.Get("/export.csv", exportCSVHandler(svc))
		rr.Get("/export.xlsx", exportXLSXHandler(svc))
	})
	r.Get("/agenda", agendaHandler(svc))
	r.Get("/dashboard", dashboardHandler(svc))
}

// sexUnset en query selecciona fichas sin sexo informado.
const sexUnset = "unset"

func parseFilters(q url.Values) (Filters, error) {
	var f Filters

	band, err := ParseAgeBand(strings.TrimSpace(q.Get("age")))
	if err != nil {
		return Filters{}, err
	}
	f.AgeBand = band

	if v := strings.TrimSpace(q.Get("sex")); v != "" {
		sx := children.Sex(v)
		if v == sexUnset {
			sx = children.SexUnset
		}
		if !sx.Valid() {
			return Filters{}, fmt.Errorf("%w: sex %q", ErrInvalidFilter, v)
		}
		f.Sex = &sx
	}

	f.AgentID = strings.TrimSpace(q.Get("agent"))
	return f, nil
}

func parsePeriod(q url.Values, def Period) (Period, error) {
	p := def
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return Period{}, fmt.Errorf("%w: month %q", ErrInvalidFilter, v)
		}
		p.Month = time.Month(m)
	}
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return Period{}, fmt.Errorf("%w: year %q", ErrInvalidFilter, v)
		}
		p.Year = y
	}
	if !p.Valid() {
		return Period{}, fmt.Errorf("%w: period %d/%d", ErrInvalidFilter, p.Month, p.Year)
	}
	return p, nil
}

// reportHandler godoc
// @Summary Informe de la cohorte
// @Description Distribución por edad, consultas realizadas/atrasadas/pendientes, últimos 12 meses y resumen del mes elegido.
// @Tags reports
// @Produce json
// @Param age query string false "Franja de edad en meses" Enums(0-6, 6-12, 12-24)
// @Param sex query string false "Masculino, Feminino o unset"
// @Param agent query string false "ID del ACS"
// @Param month query int false "Mes del resumen mensual (1-12). Por defecto el mes actual"
// @Param year query int false "Año del resumen mensual. Por defecto el actual"
// @Success 200 {object} Snapshot
// @Failure 400 {string} string "invalid filter"
// @Router /reports [get]
func reportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f, err := parseFilters(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := parsePeriod(q, svc.CurrentPeriod())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := svc.Report(r.Context(), f, p)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// exportCSVHandler godoc
// @Summary Exportar consultas (CSV)
// @Description Una fila por consulta de la cohorte filtrada. UTF-8 con BOM.
// @Tags reports
// @Produce text/csv
// @Param age query string false "Franja de edad en meses" Enums(0-6, 6-12, 12-24)
// @Param sex query string false "Masculino, Feminino o unset"
// @Param agent query string false "ID del ACS"
// @Success 200 {file} file
// @Failure 400 {string} string "invalid filter"
// @Router /reports/export.csv [get]
func exportCSVHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilters(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="relatorio_consultas.csv"`)
		if err := svc.WriteCSV(r.Context(), w, f); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// exportXLSXHandler godoc
// @Summary Exportar consultas (Excel)
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param age query string false "Franja de edad en meses" Enums(0-6, 6-12, 12-24)
// @Param sex query string false "Masculino, Feminino o unset"
// @Param agent query string false "ID del ACS"
// @Success 200 {file} file
// @Failure 400 {string} string "invalid filter"
// @Router /reports/export.xlsx [get]
func exportXLSXHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilters(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="relatorio_consultas.xlsx"`)
		if err := svc.WriteXLSX(r.Context(), w, f); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// agendaHandler godoc
// @Summary Agenda de próximas consultas
// @Tags reports
// @Produce json
// @Success 200 {array} AgendaItem
// @Router /agenda [get]
func agendaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Agenda(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// dashboardHandler godoc
// @Summary Totales del panel
// @Tags reports
// @Produce json
// @Success 200 {object} Dashboard
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidFilter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
