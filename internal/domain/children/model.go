package children

import (
	"puericultura/internal/calendar"
	"puericultura/internal/domain/visits"
)

// Sex usa las etiquetas del documento de estado. Vacío = no informado.
type Sex string

const (
	SexMale   Sex = "Masculino"
	SexFemale Sex = "Feminino"
	SexUnset  Sex = ""
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnset:
		return true
	default:
		return false
	}
}

// Child es la ficha de seguimiento. Visits se genera una sola vez al crear la ficha
// y después solo se modifica en el lugar (estado y datos clínicos).
type Child struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	DateOfBirth calendar.Date `json:"dateOfBirth"`
	Sex         Sex           `json:"sex"`

	CPF           string `json:"cpf"`
	MotherName    string `json:"motherName"`
	FatherName    string `json:"fatherName"`
	Contact       string `json:"contact"`
	Nationality   string `json:"nationality"`
	PlaceOfBirth  string `json:"placeOfBirth"` // Naturalidade (Cidade - UF)
	FamilyHistory string `json:"familyHistory,omitempty"`

	// AgentID es una referencia débil al agente de salud (ACS) asignado.
	AgentID string `json:"acsId,omitempty"`

	Visits []visits.Visit `json:"consultations"`
}

// Clone copia el slice de consultas para que el caller no comparta memoria con el repo.
func (c Child) Clone() Child {
	out := c
	out.Visits = make([]visits.Visit, len(c.Visits))
	copy(out.Visits, c.Visits)
	return out
}

// GrowthRow es una fila del resumen final de seguimiento.
type GrowthRow struct {
	Milestone           string         `json:"milestone"`
	DueDate             calendar.Date  `json:"scheduledDate"`
	PerformedDate       *calendar.Date `json:"performedDate,omitempty"`
	Late                bool           `json:"late"`
	WeightKg            *float64       `json:"weight,omitempty"`
	LengthCm            *float64       `json:"length,omitempty"`
	HeadCircumferenceCm *float64       `json:"headCircumference,omitempty"`
	BMI                 *float64       `json:"bmi,omitempty"`
	Observations        string         `json:"observations,omitempty"`
}

// Summary es el informe final, disponible solo cuando todas las consultas están realizadas.
type Summary struct {
	Child       Child       `json:"child"`
	AgeInMonths int         `json:"ageInMonths"`
	Rows        []GrowthRow `json:"rows"`
}
