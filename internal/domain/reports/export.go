package reports

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/agents"
	"puericultura/internal/domain/visits"
)

const (
	LabelOverdue       = "Pendente (Atrasada)"
	LabelPerformedLate = "Realizado com Atraso"

	sheetName = "Consultas"
)

var exportHeaders = []string{"Criança", "Data Nasc.", "Sexo", "ACS", "ACS Contato", "Consulta", "Data Prevista", "Data Realizada", "Status"}

// StatusLabel es el estado tal como se muestra en las exportaciones.
func StatusLabel(v visits.Visit, today calendar.Date) string {
	switch {
	case visits.IsOverduePending(v, today):
		return LabelOverdue
	case visits.IsLate(v):
		return LabelPerformedLate
	default:
		return string(v.Status)
	}
}

func exportRecord(r Row, agentsByID map[string]agents.Agent, today calendar.Date) []string {
	acsName, acsContact := "N/A", "N/A"
	if a, ok := agentsByID[r.Child.AgentID]; ok {
		acsName, acsContact = a.Name, a.Contact
	}
	performed := ""
	if r.Visit.PerformedDate != nil {
		performed = r.Visit.PerformedDate.String()
	}
	return []string{
		r.Child.Name,
		r.Child.DateOfBirth.String(),
		string(r.Child.Sex),
		acsName,
		acsContact,
		r.Visit.Milestone,
		r.Visit.DueDate.String(),
		performed,
		StatusLabel(r.Visit, today),
	}
}

// WriteCSV escribe las filas con BOM UTF-8 para que Excel respete los acentos.
func WriteCSV(w io.Writer, rows []Row, agentsByID map[string]agents.Agent, today calendar.Date) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(exportRecord(r, agentsByID, today)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX escribe las mismas columnas que el CSV en una planilla.
func WriteXLSX(w io.Writer, rows []Row, agentsByID map[string]agents.Agent, today calendar.Date) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile trae "Sheet1"; la renombramos
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	for i, r := range rows {
		rec := exportRecord(r, agentsByID, today)
		for j, v := range rec {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
