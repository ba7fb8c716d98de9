package agents

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/agents", func(ar chi.Router) {
		ar.Post("/", createAgentHandler(svc))
		ar.Get("/", listAgentsHandler(svc))
		ar.Get("/{agentID}", getAgentHandler(svc))
		ar.Patch("/{agentID}", updateAgentHandler(svc))

		// Borra y desvincula de las fichas
		ar.Delete("/{agentID}", deleteAgentHandler(svc))
	})
}

type agentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type updateAgentRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Contact *string `json:"contact"`
}

// createAgentHandler godoc
// @Summary Cadastrar agente de salud (ACS)
// @Tags agents
// @Accept json
// @Produce json
// @Param payload body agentRequest true "Datos del agente"
// @Success 201 {object} Agent
// @Failure 400 {string} string "invalid json / name requerido / email inválido"
// @Router /agents [post]
func createAgentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req agentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), Input{Name: req.Name, Email: req.Email, Contact: req.Contact})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// listAgentsHandler godoc
// @Summary Listar agentes
// @Tags agents
// @Produce json
// @Success 200 {array} Agent
// @Router /agents [get]
func listAgentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Agent{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getAgentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "agentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// updateAgentHandler godoc
// @Summary Actualizar agente
// @Tags agents
// @Accept json
// @Produce json
// @Param agentID path string true "ID del agente"
// @Param payload body updateAgentRequest true "Campos a cambiar"
// @Success 200 {object} Agent
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 404 {string} string "health agent not found"
// @Router /agents/{agentID} [patch]
func updateAgentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAgentRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "agentID"), UpdateInput{
			Name:    req.Name,
			Email:   req.Email,
			Contact: req.Contact,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// deleteAgentHandler godoc
// @Summary Eliminar agente
// @Description Borra el agente y limpia acsId en todas las fichas que lo referencian. Las fichas no se tocan en lo demás.
// @Tags agents
// @Param agentID path string true "ID del agente"
// @Success 204
// @Failure 404 {string} string "health agent not found"
// @Router /agents/{agentID} [delete]
func deleteAgentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "agentID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "health agent not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
