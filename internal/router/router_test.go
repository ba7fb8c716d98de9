package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"puericultura/internal/router"
)

type visitResp struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	BMI      *float64 `json:"bmi"`
	Reminder *struct {
		WhatsApp string `json:"whatsapp"`
	} `json:"reminder"`
}

type childResp struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	AgentID       string      `json:"acsId"`
	Consultations []visitResp `json:"consultations"`
}

func TestHTTP_EndToEnd_VisitLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	child := createChild(t, ts.URL, map[string]any{
		"name":        "Ana Clara",
		"dateOfBirth": "2024-01-15",
		"sex":         "Feminino",
		"motherName":  "Maria",
		"contact":     "+55 11 99999-0000",
	})
	if len(child.Consultations) != 11 {
		t.Fatalf("expected 11 consultations, got %d", len(child.Consultations))
	}
	visitID := child.Consultations[0].ID
	base := "/children/" + child.ID + "/visits/" + visitID

	// 1) No se puede enviar sin redactar
	{
		st, _ := doReq(t, ts.URL, "POST", base+"/reminder/send", "", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 sending undrafted reminder, got %d", st)
		}
	}

	// 2) Redactar
	{
		st, body := doReq(t, ts.URL, "POST", base+"/reminder", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 draft, got %d body=%s", st, string(body))
		}
		var v visitResp
		mustJSON(t, body, &v)
		if v.Status != "Lembrete Criado" || v.Reminder == nil || v.Reminder.WhatsApp == "" {
			t.Fatalf("unexpected drafted visit: %s", string(body))
		}
	}

	// 3) Enviar (sin gateway solo cambia el estado)
	{
		st, body := doReq(t, ts.URL, "POST", base+"/reminder/send", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 send, got %d body=%s", st, string(body))
		}
		var v visitResp
		mustJSON(t, body, &v)
		if v.Status != "Lembrete Enviado" {
			t.Fatalf("expected Lembrete Enviado, got %q", v.Status)
		}
	}

	// 4) Registrar la consulta
	{
		st, body := doReq(t, ts.URL, "PUT", base+"/clinical", "", map[string]any{
			"performedDate": "2024-01-20",
			"weight":        4.2,
			"length":        54,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 clinical, got %d body=%s", st, string(body))
		}
		var v visitResp
		mustJSON(t, body, &v)
		if v.Status != "Realizado" || v.BMI == nil || *v.BMI != 14.4 {
			t.Fatalf("unexpected performed visit: %s", string(body))
		}
	}

	// 5) Una vez realizada no se redacta
	{
		st, _ := doReq(t, ts.URL, "POST", base+"/reminder", "", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 drafting performed visit, got %d", st)
		}
	}

	// 6) Informe final solo con la agenda completa
	{
		st, _ := doReq(t, ts.URL, "GET", "/children/"+child.ID+"/summary", "", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 summary of incomplete follow-up, got %d", st)
		}
	}

	// 7) Consulta inexistente
	{
		st, _ := doReq(t, ts.URL, "POST", "/children/"+child.ID+"/visits/nope/reminder", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown visit, got %d", st)
		}
	}

	// 8) El log registra las acciones
	{
		st, body := doReq(t, ts.URL, "GET", "/logs?limit=1", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 logs, got %d", st)
		}
		var entries []struct {
			Message string `json:"message"`
		}
		mustJSON(t, body, &entries)
		if len(entries) != 1 || !strings.Contains(entries[0].Message, "Realizado") {
			t.Fatalf("unexpected latest log: %s", string(body))
		}
	}
}

func TestHTTP_CreateChild_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []map[string]any{
		{"name": "", "dateOfBirth": "2024-01-15"},
		{"name": "Ana", "dateOfBirth": "15/01/2024"},
		{"name": "Ana", "dateOfBirth": "2024-01-15", "cpf": "123"},
		{"name": "Ana", "dateOfBirth": "2024-01-15", "acsId": "missing"},
	}
	for _, in := range cases {
		st, body := doReq(t, ts.URL, "POST", "/children", "", in)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d body=%s", in, st, string(body))
		}
	}
}

func TestHTTP_DeleteAgent_UnlinksChildren(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	var agent struct {
		ID string `json:"id"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/agents", "", map[string]any{
			"name":  "Joana ACS",
			"email": "joana@ubs.gov.br",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create agent, got %d body=%s", st, string(body))
		}
		mustJSON(t, body, &agent)
	}

	a := createChild(t, ts.URL, map[string]any{"name": "A", "dateOfBirth": "2024-02-01", "acsId": agent.ID})
	b := createChild(t, ts.URL, map[string]any{"name": "B", "dateOfBirth": "2024-03-01", "acsId": agent.ID})
	if a.AgentID != agent.ID || b.AgentID != agent.ID {
		t.Fatalf("children not linked to agent")
	}

	st, _ := doReq(t, ts.URL, "DELETE", "/agents/"+agent.ID, "", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 delete agent, got %d", st)
	}

	for _, id := range []string{a.ID, b.ID} {
		st, body := doReq(t, ts.URL, "GET", "/children/"+id, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get child, got %d", st)
		}
		var c childResp
		mustJSON(t, body, &c)
		if c.AgentID != "" {
			t.Fatalf("expected child %s unlinked, still has acsId=%q", id, c.AgentID)
		}
	}

	st, _ = doReq(t, ts.URL, "GET", "/agents/"+agent.ID, "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 deleted agent, got %d", st)
	}
}

func TestHTTP_Reports(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// siempre dentro de la franja 0-6
	dob := time.Now().AddDate(0, -3, 0).Format("2006-01-02")
	createChild(t, ts.URL, map[string]any{"name": "Bebê", "dateOfBirth": dob, "sex": "Masculino"})

	{
		st, body := doReq(t, ts.URL, "GET", "/reports", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 report, got %d body=%s", st, string(body))
		}
		var snap struct {
			CohortSize   int            `json:"cohortSize"`
			AgeHistogram map[string]int `json:"ageHistogram"`
		}
		mustJSON(t, body, &snap)
		if snap.CohortSize != 1 || snap.AgeHistogram["0-6"] != 1 {
			t.Fatalf("unexpected report: %s", string(body))
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/reports?sex=Feminino", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filtered report, got %d", st)
		}
		var snap struct {
			CohortSize int `json:"cohortSize"`
		}
		mustJSON(t, body, &snap)
		if snap.CohortSize != 0 {
			t.Fatalf("expected empty cohort for Feminino, got %d", snap.CohortSize)
		}
	}

	for _, q := range []string{"?age=99", "?sex=x", "?month=13&year=2025"} {
		st, _ := doReq(t, ts.URL, "GET", "/reports"+q, "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", q, st)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/reports/export.csv", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 csv, got %d", st)
		}
		if !bytes.HasPrefix(body, []byte("\xEF\xBB\xBF")) {
			t.Fatalf("csv missing BOM")
		}
		// cabecera + 11 consultas
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		if len(lines) != 12 {
			t.Fatalf("expected 12 csv lines, got %d", len(lines))
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/reports/export.xlsx", "", nil)
		if st != http.StatusOK || !bytes.HasPrefix(body, []byte("PK")) {
			t.Fatalf("expected xlsx zip, got %d", st)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d", st)
		}
		var d struct {
			Children int `json:"children"`
		}
		mustJSON(t, body, &d)
		if d.Children != 1 {
			t.Fatalf("expected 1 child on dashboard, got %d", d.Children)
		}
	}
}

func TestHTTP_BackupRoundTrip(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createChild(t, ts.URL, map[string]any{"name": "A", "dateOfBirth": "2024-02-01"})
	createChild(t, ts.URL, map[string]any{"name": "B", "dateOfBirth": "2024-03-01"})

	st, exported := doReq(t, ts.URL, "GET", "/backup", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 export, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/backup/reset", "", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 reset, got %d", st)
	}
	if n := countChildren(t, ts.URL); n != 0 {
		t.Fatalf("expected 0 children after reset, got %d", n)
	}

	st, body := doReq(t, ts.URL, "POST", "/backup/import", "", json.RawMessage(`{"children":[]}`))
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 importing incomplete doc, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/backup/import", "", json.RawMessage(exported))
	if st != http.StatusOK {
		t.Fatalf("expected 200 import, got %d body=%s", st, string(body))
	}
	if n := countChildren(t, ts.URL); n != 2 {
		t.Fatalf("expected 2 children after import, got %d", n)
	}

	// sin store de snapshots
	st, _ = doReq(t, ts.URL, "POST", "/backup/save", "", nil)
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 save without store, got %d", st)
	}
}

func TestHTTP_APIKey(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{APIKey: "s3cret"}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected public /health, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/children", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/children", "wrong", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/children", "s3cret", nil); st != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", st)
	}
}

// ---- helpers ----

func createChild(t *testing.T, baseURL string, in map[string]any) childResp {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/children", "", in)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create child, got %d body=%s", st, string(body))
	}
	var c childResp
	mustJSON(t, body, &c)
	return c
}

func countChildren(t *testing.T, baseURL string) int {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/children", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list children, got %d", st)
	}
	var items []childResp
	mustJSON(t, body, &items)
	return len(items)
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode json: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, apiKey string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
