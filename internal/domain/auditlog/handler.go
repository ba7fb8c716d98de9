package auditlog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/logs", listLogsHandler(svc))
}

// listLogsHandler godoc
// @Summary Listar registro de actividad
// @Description Devuelve las entradas del registro de actividad, la más reciente primero.
// @Tags logs
// @Produce json
// @Param limit query int false "Máximo de entradas (1-1000). Por defecto todas"
// @Success 200 {array} Entry
// @Failure 500 {string} string "internal error"
// @Router /logs [get]
func listLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}

		items, err := svc.List(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Entry{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(items)
	}
}
