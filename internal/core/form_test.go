package core

import (
	"testing"
	"time"
)

func validForm() ClientForm {
	return ClientForm{
		BusinessName: "Panadería Sol",
		OwnerName:    "María López",
		Phone:        "555-0101",
		Email:        "maria@example.com",
		Status:       "activo",
		PlanType:     "anual",
		SaleDate:     "2024-03-01",
		PaymentDate:  "2024-03-15",
	}
}

func TestClientFormValidateOK(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	rec, errs := validForm().Validate(loc)
	if len(errs) > 0 {
		t.Fatalf("unexpected field errors: %v", errs)
	}
	if rec.BusinessName != "Panadería Sol" || rec.OwnerName != "María López" {
		t.Fatalf("names not carried over: %+v", rec)
	}
	if rec.Status != StatusActive || rec.PlanType != PlanAnnual {
		t.Fatalf("enums not carried over: %+v", rec)
	}
	wantSale := time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC)
	if !rec.SaleDate.Equal(wantSale) {
		t.Fatalf("sale date = %v, want %v", rec.SaleDate, wantSale)
	}
	wantPayment := time.Date(2024, 3, 15, 5, 0, 0, 0, time.UTC)
	if !rec.PaymentDate.Equal(wantPayment) {
		t.Fatalf("payment date = %v, want %v", rec.PaymentDate, wantPayment)
	}
}

func TestClientFormValidateRequired(t *testing.T) {
	var empty ClientForm
	_, errs := empty.Validate(time.UTC)

	for _, field := range []string{"businessName", "ownerName", "phone", "saleDate", "paymentDate"} {
		if errs[field] != "Este campo es requerido" {
			t.Fatalf("field %q: got %q", field, errs[field])
		}
	}
	// Email is optional and status/plan fall back to defaults.
	for _, field := range []string{"email", "status", "planType"} {
		if _, ok := errs[field]; ok {
			t.Fatalf("unexpected error on optional field %q: %q", field, errs[field])
		}
	}
}

func TestClientFormValidateCases(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*ClientForm)
		field     string
		wantMsg   string
		wantClean bool
	}{
		{"invalid email", func(f *ClientForm) { f.Email = "not-an-email" }, "email", "Email inválido", false},
		{"email without tld", func(f *ClientForm) { f.Email = "a@b" }, "email", "Email inválido", false},
		{"empty email ok", func(f *ClientForm) { f.Email = "" }, "", "", true},
		{"uppercase email ok", func(f *ClientForm) { f.Email = "MARIA@EXAMPLE.COM" }, "", "", true},
		{"unknown status", func(f *ClientForm) { f.Status = "archivado" }, "status", "Valor no válido", false},
		{"unknown plan", func(f *ClientForm) { f.PlanType = "semanal" }, "planType", "Valor no válido", false},
		{"bad sale date", func(f *ClientForm) { f.SaleDate = "01/03/2024" }, "saleDate", "Fecha no válida", false},
		{"bad payment date", func(f *ClientForm) { f.PaymentDate = "mañana" }, "paymentDate", "Fecha no válida", false},
		{"whitespace trimmed", func(f *ClientForm) { f.BusinessName = "  Panadería Sol  " }, "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			rec, errs := form.Validate(time.UTC)
			if tc.wantClean {
				if len(errs) > 0 {
					t.Fatalf("unexpected errors: %v", errs)
				}
				if rec.BusinessName != "Panadería Sol" {
					t.Fatalf("business name = %q", rec.BusinessName)
				}
				return
			}
			if errs[tc.field] != tc.wantMsg {
				t.Fatalf("field %q: got %q, want %q", tc.field, errs[tc.field], tc.wantMsg)
			}
		})
	}
}

func TestClientFormValidateDefaults(t *testing.T) {
	form := validForm()
	form.Status = ""
	form.PlanType = ""

	rec, errs := form.Validate(time.UTC)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if rec.Status != StatusActive {
		t.Fatalf("status default = %q, want %q", rec.Status, StatusActive)
	}
	if rec.PlanType != PlanMonthly {
		t.Fatalf("plan default = %q, want %q", rec.PlanType, PlanMonthly)
	}
}

func TestFormFromRecord(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	rec := ClientRecord{
		ID:           7,
		BusinessName: "Acme",
		OwnerName:    "Jo",
		Phone:        "555",
		Email:        "jo@acme.test",
		Status:       StatusPending,
		PlanType:     PlanPermanent,
		SaleDate:     time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC),
		PaymentDate:  time.Date(2024, 3, 15, 5, 0, 0, 0, time.UTC),
	}

	form := FormFromRecord(rec, loc)
	if form.SaleDate != "2024-03-01" || form.PaymentDate != "2024-03-15" {
		t.Fatalf("dates = %q / %q", form.SaleDate, form.PaymentDate)
	}
	if form.Status != "pendiente" || form.PlanType != "permanente" {
		t.Fatalf("enums = %q / %q", form.Status, form.PlanType)
	}

	// Editing without touching the dates must not shift the stored instant.
	again, errs := form.Validate(loc)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !again.SaleDate.Equal(rec.SaleDate) || !again.PaymentDate.Equal(rec.PaymentDate) {
		t.Fatalf("round trip drift: %v / %v", again.SaleDate, again.PaymentDate)
	}
}
