package http

import (
	"log/slog"
	"net/http"

	"clientes/internal/clients"
	"clientes/internal/core"
)

type (
	indexData struct {
		Rows []clients.ClientRow
	}

	formData struct {
		ID      int64
		Editing bool
		Form    core.ClientForm
		Errors  core.FieldErrors
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	rows, err := s.svc.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list clients", "error", err)
		http.Error(w, "Error al cargar los clientes", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "index.html", indexData{Rows: rows})
}

// handleClientTable re-renders the table partial after any mutation.
func (s *Server) handleClientTable(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list clients", "error", err)
		NewHTMXResponse().
			Status(http.StatusInternalServerError).
			Notification(NotifyError, "Error al cargar los clientes").
			Write(w)
		return
	}
	s.render(w, r, "clients_table.html", indexData{Rows: rows})
}

// handleClientForm serves the modal form partial: blank for a new client,
// pre-populated when an id is given.
func (s *Server) handleClientForm(w http.ResponseWriter, r *http.Request) {
	data := formData{}
	if id, ok := queryID(r); ok {
		form, err := s.svc.EditForm(r.Context(), id)
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to load client for edit", "error", err, "id", id)
			NewHTMXResponse().
				Status(http.StatusNotFound).
				Notification(NotifyError, "Cliente no encontrado").
				Write(w)
			return
		}
		data = formData{ID: id, Editing: true, Form: form}
	}
	s.render(w, r, "client_form.html", data)
}

// handleSaveClient covers both create and update; the hidden id field on the
// form decides which. Field errors re-render the form inline; nothing is
// persisted until validation passes in full.
func (s *Server) handleSaveClient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	id := formID(r)
	form := parseClientForm(r)

	var (
		ferrs core.FieldErrors
		err   error
		msg   string
	)
	if id > 0 {
		ferrs, err = s.svc.Update(r.Context(), id, form)
		msg = "Cliente actualizado correctamente"
	} else {
		_, ferrs, err = s.svc.Create(r.Context(), form)
		msg = "Cliente agregado correctamente"
	}

	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save client", "error", err, "id", id)
		NewHTMXResponse().
			Status(http.StatusInternalServerError).
			Notification(NotifyError, "Error al guardar el cliente").
			Write(w)
		return
	}
	if len(ferrs) > 0 {
		// Re-render the form with inline errors; submission is blocked.
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "client_form.html", formData{ID: id, Editing: id > 0, Form: form, Errors: ferrs})
		return
	}

	NewHTMXResponse().
		ClientsChanged().
		CloseModal().
		Notification(NotifySuccess, msg).
		Write(w)
	s.render(w, r, "client_form.html", formData{})
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id := formID(r)
	if id == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete client", "error", err, "id", id)
		NewHTMXResponse().
			Status(http.StatusInternalServerError).
			Notification(NotifyError, "Error al eliminar el cliente").
			Write(w)
		return
	}

	NewHTMXResponse().
		ClientsChanged().
		Notification(NotifySuccess, "Cliente eliminado").
		Write(w)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template render failed", "error", err, "template", name)
	}
}
