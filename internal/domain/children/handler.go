package children

import (
	"encoding/json"
	"errors"
	"net/http"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/visits"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/children", func(cr chi.Router) {
		cr.Post("/", createChildHandler(svc))
		cr.Get("/", listChildrenHandler(svc))
		cr.Get("/{childID}", getChildHandler(svc))
		cr.Patch("/{childID}", updateChildHandler(svc))
		cr.Delete("/{childID}", deleteChildHandler(svc))

		// Informe final (solo con la agenda completa)
		cr.Get("/{childID}/summary", summaryHandler(svc))

		cr.Route("/{childID}/visits/{visitID}", func(vr chi.Router) {
			vr.Post("/reminder", draftReminderHandler(svc))
			vr.Post("/reminder/send", sendReminderHandler(svc))
			vr.Put("/clinical", recordClinicalHandler(svc))
		})
	})
}

// createChildRequest es el cuerpo para cadastrar una criança.
type createChildRequest struct {
	Name          string `json:"name"`
	DateOfBirth   string `json:"dateOfBirth"` // YYYY-MM-DD
	Sex           Sex    `json:"sex" enums:"Masculino,Feminino"`
	CPF           string `json:"cpf"` // 000.000.000-00 opcional
	MotherName    string `json:"motherName"`
	FatherName    string `json:"fatherName"`
	Contact       string `json:"contact"`
	Nationality   string `json:"nationality"`
	PlaceOfBirth  string `json:"placeOfBirth"`
	FamilyHistory string `json:"familyHistory"`
	AgentID       string `json:"acsId"`
}

type updateChildRequest struct {
	// Punteros para PATCH: nil = no tocar.
	Name          *string `json:"name"`
	DateOfBirth   *string `json:"dateOfBirth"`
	Sex           *Sex    `json:"sex"`
	CPF           *string `json:"cpf"`
	MotherName    *string `json:"motherName"`
	FatherName    *string `json:"fatherName"`
	Contact       *string `json:"contact"`
	Nationality   *string `json:"nationality"`
	PlaceOfBirth  *string `json:"placeOfBirth"`
	FamilyHistory *string `json:"familyHistory"`
	AgentID       *string `json:"acsId"` // "" desvincula
}

// clinicalRequest son los datos medidos en la consulta.
type clinicalRequest struct {
	PerformedDate       string   `json:"performedDate"` // YYYY-MM-DD
	WeightKg            *float64 `json:"weight"`
	LengthCm            *float64 `json:"length"`
	HeadCircumferenceCm *float64 `json:"headCircumference"`
	Observations        string   `json:"observations"`
}

// createChildHandler godoc
// @Summary Cadastrar criança
// @Description Crea la ficha y genera la agenda de 11 consultas a partir de la fecha de nacimiento.
// @Tags children
// @Accept json
// @Produce json
// @Param payload body createChildRequest true "Datos de la criança; dateOfBirth en formato YYYY-MM-DD"
// @Success 201 {object} Child
// @Failure 400 {string} string "invalid json / dateOfBirth inválida / cpf inválido / acsId desconocido"
// @Router /children [post]
func createChildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createChildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:          req.Name,
			DateOfBirth:   req.DateOfBirth,
			Sex:           req.Sex,
			CPF:           req.CPF,
			MotherName:    req.MotherName,
			FatherName:    req.FatherName,
			Contact:       req.Contact,
			Nationality:   req.Nationality,
			PlaceOfBirth:  req.PlaceOfBirth,
			FamilyHistory: req.FamilyHistory,
			AgentID:       req.AgentID,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, c)
	}
}

// listChildrenHandler godoc
// @Summary Listar crianças
// @Tags children
// @Produce json
// @Success 200 {array} Child
// @Router /children [get]
func listChildrenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Child{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// getChildHandler godoc
// @Summary Ficha de la criança con su agenda
// @Tags children
// @Produce json
// @Param childID path string true "ID de la criança"
// @Success 200 {object} Child
// @Failure 404 {string} string "child not found"
// @Router /children/{childID} [get]
func getChildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "childID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

// updateChildHandler godoc
// @Summary Actualizar datos de la criança
// @Description PATCH parcial. Cambiar dateOfBirth no regenera la agenda.
// @Tags children
// @Accept json
// @Produce json
// @Param childID path string true "ID de la criança"
// @Param payload body updateChildRequest true "Campos a cambiar"
// @Success 200 {object} Child
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 404 {string} string "child not found"
// @Router /children/{childID} [patch]
func updateChildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateChildRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "childID"), UpdateInput{
			Name:          req.Name,
			DateOfBirth:   req.DateOfBirth,
			Sex:           req.Sex,
			CPF:           req.CPF,
			MotherName:    req.MotherName,
			FatherName:    req.FatherName,
			Contact:       req.Contact,
			Nationality:   req.Nationality,
			PlaceOfBirth:  req.PlaceOfBirth,
			FamilyHistory: req.FamilyHistory,
			AgentID:       req.AgentID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

// deleteChildHandler godoc
// @Summary Eliminar ficha
// @Tags children
// @Param childID path string true "ID de la criança"
// @Success 204
// @Failure 404 {string} string "child not found"
// @Router /children/{childID} [delete]
func deleteChildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "childID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// summaryHandler godoc
// @Summary Informe final de seguimiento
// @Description Tabla de crecimiento por consulta. Solo disponible cuando todas las consultas están realizadas.
// @Tags children
// @Produce json
// @Param childID path string true "ID de la criança"
// @Success 200 {object} Summary
// @Failure 404 {string} string "child not found"
// @Failure 409 {string} string "follow-up not complete"
// @Router /children/{childID}/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Summary(r.Context(), chi.URLParam(r, "childID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// draftReminderHandler godoc
// @Summary Redactar recordatorio
// @Description Genera el par WhatsApp + e-mail y pasa la consulta a "Lembrete Criado". Si ya hay uno redactado lo devuelve.
// @Tags visits
// @Produce json
// @Param childID path string true "ID de la criança"
// @Param visitID path string true "ID de la consulta"
// @Success 200 {object} visits.Visit
// @Failure 404 {string} string "child not found / visit not found"
// @Failure 409 {string} string "transition not allowed"
// @Router /children/{childID}/visits/{visitID}/reminder [post]
func draftReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.DraftReminder(r.Context(), chi.URLParam(r, "childID"), chi.URLParam(r, "visitID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// sendReminderHandler godoc
// @Summary Enviar recordatorio
// @Description Entrega el recordatorio por el gateway configurado y pasa la consulta a "Lembrete Enviado".
// @Tags visits
// @Produce json
// @Param childID path string true "ID de la criança"
// @Param visitID path string true "ID de la consulta"
// @Success 200 {object} visits.Visit
// @Failure 404 {string} string "child not found / visit not found"
// @Failure 409 {string} string "transition not allowed"
// @Failure 502 {string} string "reminder dispatch failed"
// @Router /children/{childID}/visits/{visitID}/reminder/send [post]
func sendReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.SendReminder(r.Context(), chi.URLParam(r, "childID"), chi.URLParam(r, "visitID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// recordClinicalHandler godoc
// @Summary Registrar consulta realizada
// @Description Guarda fecha de realización y medidas. El IMC se calcula con peso y talla. Se puede repetir para corregir.
// @Tags visits
// @Accept json
// @Produce json
// @Param childID path string true "ID de la criança"
// @Param visitID path string true "ID de la consulta"
// @Param payload body clinicalRequest true "performedDate en formato YYYY-MM-DD"
// @Success 200 {object} visits.Visit
// @Failure 400 {string} string "invalid json / performedDate inválida / medidas inválidas"
// @Failure 404 {string} string "child not found / visit not found"
// @Router /children/{childID}/visits/{visitID}/clinical [put]
func recordClinicalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clinicalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		performed, err := calendar.Parse(req.PerformedDate)
		if err != nil {
			http.Error(w, "performedDate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.RecordClinicalData(r.Context(), chi.URLParam(r, "childID"), chi.URLParam(r, "visitID"), visits.ClinicalData{
			PerformedDate:       performed,
			WeightKg:            req.WeightKg,
			LengthCm:            req.LengthCm,
			HeadCircumferenceCm: req.HeadCircumferenceCm,
			Observations:        req.Observations,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// writeError traduce los errores de dominio a status HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnknownAgent),
		errors.Is(err, visits.ErrInvalidPayload),
		errors.Is(err, calendar.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "child not found", http.StatusNotFound)
	case errors.Is(err, ErrVisitNotFound):
		http.Error(w, "visit not found", http.StatusNotFound)
	case errors.Is(err, visits.ErrTransitionNotAllowed), errors.Is(err, ErrNotTracked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrDispatchFailed):
		http.Error(w, "reminder dispatch failed", http.StatusBadGateway)
	case errors.Is(err, ErrNoDrafter):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
