package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const maxImportBytes = 20 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/backup", func(br chi.Router) {
		br.Get("/", exportHandler(svc))
		br.Post("/import", importHandler(svc))
		br.Post("/reset", resetHandler(svc))
		br.Post("/save", saveHandler(svc))
	})
}

type saveResponse struct {
	LastUpdated time.Time `json:"lastUpdated"`
}

// exportHandler godoc
// @Summary Exportar backup
// @Description Descarga el estado completo (crianças, agentes y log) como JSON.
// @Tags backup
// @Produce json
// @Success 200 {object} Document
// @Router /backup [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.Export(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		name := fmt.Sprintf("puericultura_backup_%s.json", time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		writeJSON(w, http.StatusOK, doc)
	}
}

// importHandler godoc
// @Summary Importar backup
// @Description Reemplaza todo el estado con el documento enviado. Requiere los arrays children, healthAgents y logs.
// @Tags backup
// @Accept json
// @Produce json
// @Param payload body Document true "Documento exportado previamente"
// @Success 200 {object} Document
// @Failure 400 {string} string "invalid backup document"
// @Router /backup/import [post]
func importHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
			return
		}

		doc, err := svc.Import(r.Context(), raw)
		if err != nil {
			if errors.Is(err, ErrInvalidDocument) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// resetHandler godoc
// @Summary Formatear base de datos
// @Description Borra todas las fichas, agentes y el log de actividad.
// @Tags backup
// @Success 204
// @Router /backup/reset [post]
func resetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// saveHandler godoc
// @Summary Guardar snapshot ahora
// @Tags backup
// @Produce json
// @Success 200 {object} saveResponse
// @Failure 503 {string} string "snapshot store not configured"
// @Router /backup/save [post]
func saveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at, err := svc.Save(r.Context())
		if err != nil {
			if errors.Is(err, ErrNoStore) {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, saveResponse{LastUpdated: at})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
