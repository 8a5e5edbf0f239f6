package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"clientes/internal/clients"
	"clientes/internal/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := clients.NewClientService(memory.New(), time.UTC)
	t.Cleanup(func() { svc.Close() })
	return NewServer(":0", svc)
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(s, req)
}

func clientForm(name string) url.Values {
	return url.Values{
		"businessName": {name},
		"ownerName":    {"Jo"},
		"phone":        {"555"},
		"email":        {"jo@acme.test"},
		"status":       {"activo"},
		"planType":     {"mensual"},
		"saleDate":     {"2024-03-01"},
		"paymentDate":  {"2024-03-15"},
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Universal Web - Gestión de Clientes") {
		t.Fatalf("page title missing:\n%s", body)
	}
	if !strings.Contains(body, "No hay clientes registrados aún") {
		t.Fatalf("empty state missing")
	}
	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "https://unpkg.com") {
		t.Fatalf("CSP = %q", csp)
	}
}

func TestIndexUnknownPath(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSaveClientRequiresPost(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest(http.MethodGet, "/clients", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateClient(t *testing.T) {
	s := newTestServer(t)

	rec := postForm(s, "/clients", clientForm("Acme"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body:\n%s", rec.Code, rec.Body.String())
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "clients:changed") {
		t.Fatalf("HX-Trigger = %q", trigger)
	}
	if !strings.Contains(trigger, "Cliente agregado correctamente") {
		t.Fatalf("HX-Trigger = %q", trigger)
	}

	table := do(s, httptest.NewRequest(http.MethodGet, "/ui/clients", nil))
	if !strings.Contains(table.Body.String(), "Acme") {
		t.Fatalf("table missing new client:\n%s", table.Body.String())
	}
}

func TestCreateClientFieldErrors(t *testing.T) {
	s := newTestServer(t)

	form := clientForm("")
	form.Set("email", "not-an-email")
	rec := postForm(s, "/clients", form)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Este campo es requerido") {
		t.Fatalf("required message missing:\n%s", body)
	}
	if !strings.Contains(body, "Email inválido") {
		t.Fatalf("email message missing:\n%s", body)
	}
	if rec.Header().Get("HX-Trigger") != "" {
		t.Fatalf("no triggers expected on validation failure")
	}

	table := do(s, httptest.NewRequest(http.MethodGet, "/ui/clients", nil))
	if strings.Contains(table.Body.String(), "not-an-email") {
		t.Fatalf("invalid submission was persisted")
	}
}

func TestUpdateClient(t *testing.T) {
	s := newTestServer(t)
	postForm(s, "/clients", clientForm("Before"))

	form := clientForm("After")
	form.Set("id", "1")
	rec := postForm(s, "/clients", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Cliente actualizado correctamente") {
		t.Fatalf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}

	table := do(s, httptest.NewRequest(http.MethodGet, "/ui/clients", nil))
	body := table.Body.String()
	if !strings.Contains(body, "After") || strings.Contains(body, "Before") {
		t.Fatalf("update not reflected:\n%s", body)
	}
}

func TestDeleteClient(t *testing.T) {
	s := newTestServer(t)
	postForm(s, "/clients", clientForm("Acme"))

	rec := postForm(s, "/clients/delete", url.Values{"id": {"1"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Cliente eliminado") {
		t.Fatalf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}

	table := do(s, httptest.NewRequest(http.MethodGet, "/ui/clients", nil))
	if strings.Contains(table.Body.String(), "Acme") {
		t.Fatalf("client still listed")
	}
}

func TestDeleteClientMissingID(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, "/clients/delete", url.Values{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestClientFormBlankAndPrefilled(t *testing.T) {
	s := newTestServer(t)
	postForm(s, "/clients", clientForm("Acme"))

	blank := do(s, httptest.NewRequest(http.MethodGet, "/ui/client-form", nil))
	if !strings.Contains(blank.Body.String(), "Agregar Nuevo Cliente") {
		t.Fatalf("blank form missing create title:\n%s", blank.Body.String())
	}

	edit := do(s, httptest.NewRequest(http.MethodGet, "/ui/client-form?id=1", nil))
	body := edit.Body.String()
	if !strings.Contains(body, `value="Acme"`) {
		t.Fatalf("edit form not prefilled:\n%s", body)
	}
	if !strings.Contains(body, `value="2024-03-01"`) {
		t.Fatalf("edit form date not prefilled:\n%s", body)
	}

	missing := do(s, httptest.NewRequest(http.MethodGet, "/ui/client-form?id=99", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("status = %d", missing.Code)
	}
}

func TestExportEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "No hay datos para exportar") {
		t.Fatalf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}

	download := do(s, httptest.NewRequest(http.MethodGet, "/export/download", nil))
	if download.Code != http.StatusNotFound {
		t.Fatalf("download status = %d", download.Code)
	}
}

func TestExportDownload(t *testing.T) {
	s := newTestServer(t)
	postForm(s, "/clients", clientForm("Acme"))

	check := do(s, httptest.NewRequest(http.MethodGet, "/export", nil))
	if got := check.Header().Get("HX-Redirect"); !strings.HasPrefix(got, "/export/download") {
		t.Fatalf("HX-Redirect = %q", got)
	}

	rec := do(s, httptest.NewRequest(http.MethodGet, "/export/download", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "clientes_exportados_") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), `"businessName": "Acme"`) {
		t.Fatalf("body:\n%s", rec.Body.String())
	}

	xlsx := do(s, httptest.NewRequest(http.MethodGet, "/export/download?format=xlsx", nil))
	if ct := xlsx.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("xlsx Content-Type = %q", ct)
	}
}

func importRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "clientes.json")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(payload)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImport(t *testing.T) {
	s := newTestServer(t)
	postForm(s, "/clients", clientForm("Old"))

	payload := `[{"businessName":"Nuevo","ownerName":"Ana","phone":"777","status":"activo","planType":"anual","saleDate":"2024-03-01T05:00:00.000Z","paymentDate":"2024-03-15T05:00:00.000Z"}]`
	rec := do(s, importRequest(t, payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "Datos importados correctamente (1 clientes)") {
		t.Fatalf("HX-Trigger = %q", trigger)
	}
	if !strings.Contains(trigger, "clients:changed") {
		t.Fatalf("HX-Trigger = %q", trigger)
	}

	table := do(s, httptest.NewRequest(http.MethodGet, "/ui/clients", nil))
	body := table.Body.String()
	if !strings.Contains(body, "Nuevo") || strings.Contains(body, "Old") {
		t.Fatalf("import did not replace collection:\n%s", body)
	}
}

func TestImportNotArray(t *testing.T) {
	s := newTestServer(t)
	postForm(s, "/clients", clientForm("Keep"))

	rec := do(s, importRequest(t, `{"businessName":"Nuevo"}`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "el archivo debe contener un array de clientes") {
		t.Fatalf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}

	table := do(s, httptest.NewRequest(http.MethodGet, "/ui/clients", nil))
	if !strings.Contains(table.Body.String(), "Keep") {
		t.Fatalf("store was touched by malformed import")
	}
}

func TestImportMissingFile(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := do(s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
