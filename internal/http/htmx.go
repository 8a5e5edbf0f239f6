// This file implements a small builder for HTMX responses: HX-Trigger
// events drive the table refresh, the modal and the notification banner.
package http

import (
	"encoding/json"
	"net/http"
)

// Notification severities understood by the banner.
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

// HTMXResponse accumulates HX-Trigger events and writes them with the body.
type HTMXResponse struct {
	triggers   map[string]interface{}
	statusCode int
	headers    map[string]string
}

func NewHTMXResponse() *HTMXResponse {
	return &HTMXResponse{
		triggers:   make(map[string]interface{}),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *HTMXResponse) Status(code int) *HTMXResponse {
	b.statusCode = code
	return b
}

// Trigger adds a named client-side event to the HX-Trigger header.
func (b *HTMXResponse) Trigger(name string, data interface{}) *HTMXResponse {
	b.triggers[name] = data
	return b
}

// Notification queues a transient banner with the given severity.
func (b *HTMXResponse) Notification(typ, message string) *HTMXResponse {
	return b.Trigger("show-notification", map[string]interface{}{
		"type":     typ,
		"message":  message,
		"duration": 5000,
	})
}

// ClientsChanged tells the table to re-fetch itself.
func (b *HTMXResponse) ClientsChanged() *HTMXResponse {
	return b.Trigger("clients:changed", struct{}{})
}

// CloseModal dismisses the form modal.
func (b *HTMXResponse) CloseModal() *HTMXResponse {
	return b.Trigger("modal:close", struct{}{})
}

// Redirect asks htmx to navigate the browser to url.
func (b *HTMXResponse) Redirect(url string) *HTMXResponse {
	b.headers["HX-Redirect"] = url
	return b
}

// Write emits headers and status; the caller renders any body afterwards.
func (b *HTMXResponse) Write(w http.ResponseWriter) {
	if len(b.triggers) > 0 {
		if payload, err := json.Marshal(b.triggers); err == nil {
			w.Header().Set("HX-Trigger", string(payload))
		}
	}
	for k, v := range b.headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(b.statusCode)
}
