package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	StatusActive   Status = "activo"
	StatusInactive Status = "inactivo"
	StatusPending  Status = "pendiente"

	PlanMonthly   PlanType = "mensual"
	PlanAnnual    PlanType = "anual"
	PlanPermanent PlanType = "permanente"
)

type (
	// Status is the client lifecycle state. The persisted values are the
	// Spanish strings the tool has always written; renaming them would
	// break every previously exported file.
	Status string

	// PlanType is the billing plan classification.
	PlanType string

	// ClientRecord is the sole persisted entity: one client with contact
	// fields, a status/plan classification and two calendar dates. The
	// dates are absolute instants at local midnight of the selected day
	// and are never shifted on read.
	ClientRecord struct {
		ID           int64 // 0 until the store assigns one
		BusinessName string
		OwnerName    string
		Phone        string
		Email        string
		Status       Status
		PlanType     PlanType
		SaleDate     time.Time
		PaymentDate  time.Time

		// Extra carries fields from imported files that this version
		// does not know about, so a later export reproduces them
		// untouched.
		Extra map[string]json.RawMessage
	}
)

var (
	ErrEmptyBusinessName = errors.New("empty business name")
	ErrEmptyOwnerName    = errors.New("empty owner name")
	ErrEmptyPhone        = errors.New("empty phone")
	ErrUnknownStatus     = errors.New("unknown status")
	ErrUnknownPlanType   = errors.New("unknown plan type")
	ErrZeroSaleDate      = errors.New("sale date not set")
	ErrZeroPaymentDate   = errors.New("payment date not set")
)

// Valid reports whether s is one of the enumerated status values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// Valid reports whether p is one of the enumerated plan values.
func (p PlanType) Valid() bool {
	switch p {
	case PlanMonthly, PlanAnnual, PlanPermanent:
		return true
	}
	return false
}

// Validate checks the record invariants. Imported records bypass this on
// purpose; the add/update path never does.
func (c ClientRecord) Validate() error {
	if strings.TrimSpace(c.BusinessName) == "" {
		return ErrEmptyBusinessName
	}
	if strings.TrimSpace(c.OwnerName) == "" {
		return ErrEmptyOwnerName
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	if !c.Status.Valid() {
		return ErrUnknownStatus
	}
	if !c.PlanType.Valid() {
		return ErrUnknownPlanType
	}
	if c.SaleDate.IsZero() {
		return ErrZeroSaleDate
	}
	if c.PaymentDate.IsZero() {
		return ErrZeroPaymentDate
	}
	return nil
}
