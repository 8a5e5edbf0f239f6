package http

import (
	"net/http"
	"strconv"
	"strings"

	"clientes/internal/core"
)

// parseClientForm maps POST form values onto the raw form the validator
// expects. Control characters are stripped here; all validation happens in
// core.
func parseClientForm(r *http.Request) core.ClientForm {
	return core.ClientForm{
		BusinessName: sanitizeInput(r.Form.Get("businessName")),
		OwnerName:    sanitizeInput(r.Form.Get("ownerName")),
		Phone:        sanitizeInput(r.Form.Get("phone")),
		Email:        sanitizeInput(r.Form.Get("email")),
		Status:       sanitizeInput(r.Form.Get("status")),
		PlanType:     sanitizeInput(r.Form.Get("planType")),
		SaleDate:     sanitizeInput(r.Form.Get("saleDate")),
		PaymentDate:  sanitizeInput(r.Form.Get("paymentDate")),
	}
}

// formID reads the hidden id form field; 0 means "no id" (create path).
func formID(r *http.Request) int64 {
	v := strings.TrimSpace(r.Form.Get("id"))
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// queryID reads an id query parameter, reporting whether one was present.
func queryID(r *http.Request) (int64, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("id"))
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
