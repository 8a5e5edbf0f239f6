package core

import (
	"regexp"
	"strings"
	"time"
)

// Same shape the original form enforced, matched case-insensitively.
var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

type (
	// ClientForm is the raw form input: every field as text, dates as
	// calendar-day strings.
	ClientForm struct {
		BusinessName string
		OwnerName    string
		Phone        string
		Email        string
		Status       string
		PlanType     string
		SaleDate     string
		PaymentDate  string
	}

	// FieldErrors maps a form field name to a user-facing message.
	// A non-empty map blocks submission; there is no partial save.
	FieldErrors map[string]string
)

// User-facing messages stay in Spanish, the language of the UI.
const (
	msgRequired     = "Este campo es requerido"
	msgInvalidEmail = "Email inválido"
	msgInvalidDate  = "Fecha no válida"
	msgInvalidValue = "Valor no válido"
)

// Validate checks the form and, when everything passes, produces a record
// draft (without ID) with dates normalized to stored instants in loc.
// It never touches the store.
func (f ClientForm) Validate(loc *time.Location) (ClientRecord, FieldErrors) {
	errs := FieldErrors{}

	required := []struct{ field, value string }{
		{"businessName", f.BusinessName},
		{"ownerName", f.OwnerName},
		{"phone", f.Phone},
		{"saleDate", f.SaleDate},
		{"paymentDate", f.PaymentDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = msgRequired
		}
	}

	email := strings.TrimSpace(f.Email)
	if email != "" && !emailPattern.MatchString(email) {
		errs["email"] = msgInvalidEmail
	}

	status := Status(strings.TrimSpace(f.Status))
	if status == "" {
		status = StatusActive
	} else if !status.Valid() {
		errs["status"] = msgInvalidValue
	}

	plan := PlanType(strings.TrimSpace(f.PlanType))
	if plan == "" {
		plan = PlanMonthly
	} else if !plan.Valid() {
		errs["planType"] = msgInvalidValue
	}

	var saleDate, paymentDate time.Time
	if _, hasErr := errs["saleDate"]; !hasErr {
		t, err := NormalizeDay(strings.TrimSpace(f.SaleDate), loc)
		if err != nil {
			errs["saleDate"] = msgInvalidDate
		} else {
			saleDate = t
		}
	}
	if _, hasErr := errs["paymentDate"]; !hasErr {
		t, err := NormalizeDay(strings.TrimSpace(f.PaymentDate), loc)
		if err != nil {
			errs["paymentDate"] = msgInvalidDate
		} else {
			paymentDate = t
		}
	}

	if len(errs) > 0 {
		return ClientRecord{}, errs
	}

	return ClientRecord{
		BusinessName: strings.TrimSpace(f.BusinessName),
		OwnerName:    strings.TrimSpace(f.OwnerName),
		Phone:        strings.TrimSpace(f.Phone),
		Email:        email,
		Status:       status,
		PlanType:     plan,
		SaleDate:     saleDate,
		PaymentDate:  paymentDate,
	}, nil
}

// FormFromRecord converts a stored record back into form values for the edit
// modal: dates become YYYY-MM-DD strings by direct formatting of the stored
// instant's calendar day.
func FormFromRecord(c ClientRecord, loc *time.Location) ClientForm {
	return ClientForm{
		BusinessName: c.BusinessName,
		OwnerName:    c.OwnerName,
		Phone:        c.Phone,
		Email:        c.Email,
		Status:       string(c.Status),
		PlanType:     string(c.PlanType),
		SaleDate:     FormatDay(c.SaleDate, loc),
		PaymentDate:  FormatDay(c.PaymentDate, loc),
	}
}
