package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"clientes/internal/transfer"
)

// 10 MB is far beyond any realistic client list.
const maxImportBytes = 10 << 20

// handleExport is the htmx-facing side of export: it checks whether there is
// anything to export and either queues the informational banner or redirects
// the browser to the actual download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := exportFormat(r)
	_, _, err := s.export(r, format)
	if errors.Is(err, transfer.ErrNothingToExport) {
		NewHTMXResponse().
			Notification(NotifyInfo, "No hay datos para exportar").
			Write(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to export clients", "error", err, "format", format)
		NewHTMXResponse().
			Status(http.StatusInternalServerError).
			Notification(NotifyError, "Error al exportar datos").
			Write(w)
		return
	}
	NewHTMXResponse().
		Redirect("/export/download?format=" + url.QueryEscape(format)).
		Notification(NotifySuccess, "Datos exportados correctamente").
		Write(w)
}

// handleExportDownload streams the export file itself.
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	format := exportFormat(r)
	data, filename, err := s.export(r, format)
	if errors.Is(err, transfer.ErrNothingToExport) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to export clients", "error", err, "format", format)
		http.Error(w, "Error al exportar datos", http.StatusInternalServerError)
		return
	}

	contentType := "application/json; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) export(r *http.Request, format string) ([]byte, string, error) {
	if format == "xlsx" {
		return s.svc.ExportXLSX(r.Context())
	}
	return s.svc.ExportJSON(r.Context())
}

func exportFormat(r *http.Request) string {
	if r.URL.Query().Get("format") == "xlsx" {
		return "xlsx"
	}
	return "json"
}

// handleImport receives the uploaded JSON file and performs the destructive
// bulk replace. A file that fails to parse leaves the store untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		slog.ErrorContext(r.Context(), "Import upload missing file", "error", err)
		NewHTMXResponse().
			Status(http.StatusBadRequest).
			Notification(NotifyError, "Error al importar datos: archivo no recibido").
			Write(w)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.ErrorContext(r.Context(), "Import upload read failed", "error", err)
		NewHTMXResponse().
			Status(http.StatusBadRequest).
			Notification(NotifyError, "Error al importar datos: no se pudo leer el archivo").
			Write(w)
		return
	}

	count, err := s.svc.Import(r.Context(), data)
	if errors.Is(err, transfer.ErrNotArray) {
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			Notification(NotifyError, "Error al importar datos: el archivo debe contener un array de clientes").
			Write(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to import clients", "error", err)
		NewHTMXResponse().
			Status(http.StatusInternalServerError).
			Notification(NotifyError, "Error al importar datos").
			Write(w)
		return
	}

	NewHTMXResponse().
		ClientsChanged().
		Notification(NotifySuccess, fmt.Sprintf("Datos importados correctamente (%d clientes)", count)).
		Write(w)
}
