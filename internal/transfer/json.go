// Package transfer implements the import/export round trip: the record
// collection to and from a JSON array of plain objects, plus a spreadsheet
// rendering of the same data.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clientes/internal/core"
)

// toISOString-equivalent: full UTC timestamp, millisecond precision, Z suffix.
const isoLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrNothingToExport signals the informational "nothing to export"
	// condition; no file is generated for an empty store.
	ErrNothingToExport = errors.New("no clients to export")

	// ErrNotArray covers malformed import input: not JSON, not an array,
	// or an array holding non-objects. The store is untouched in every
	// such case because parsing happens before the bulk replace.
	ErrNotArray = errors.New("import file must contain a JSON array of clients")
)

// exportRecord fixes the field order and names of exported objects.
type exportRecord struct {
	ID           int64         `json:"id,omitempty"`
	BusinessName string        `json:"businessName"`
	OwnerName    string        `json:"ownerName"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	Status       core.Status   `json:"status"`
	PlanType     core.PlanType `json:"planType"`
	SaleDate     string        `json:"saleDate"`
	PaymentDate  string        `json:"paymentDate"`
}

// FormatInstant renders a stored instant the way the export format demands.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseInstant accepts ISO-8601 instants; bare calendar days are tolerated
// for hand-edited files.
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// FileName builds the download name for a JSON export on the given day.
func FileName(now time.Time) string {
	return "clientes_exportados_" + now.UTC().Format("2006-01-02") + ".json"
}

// EncodeJSON serializes all records to a pretty-printed JSON array with
// ISO-8601 dates. Unknown fields captured during a previous import are
// re-emitted untouched. An empty collection yields ErrNothingToExport.
func EncodeJSON(recs []core.ClientRecord) ([]byte, error) {
	if len(recs) == 0 {
		return nil, ErrNothingToExport
	}
	out := make([]json.RawMessage, len(recs))
	for i, rec := range recs {
		b, err := encodeRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("encode client %d: %w", rec.ID, err)
		}
		out[i] = b
	}
	return json.MarshalIndent(out, "", "  ")
}

func encodeRecord(rec core.ClientRecord) (json.RawMessage, error) {
	b, err := json.Marshal(exportRecord{
		ID:           rec.ID,
		BusinessName: rec.BusinessName,
		OwnerName:    rec.OwnerName,
		Phone:        rec.Phone,
		Email:        rec.Email,
		Status:       rec.Status,
		PlanType:     rec.PlanType,
		SaleDate:     FormatInstant(rec.SaleDate),
		PaymentDate:  FormatInstant(rec.PaymentDate),
	})
	if err != nil || len(rec.Extra) == 0 {
		return b, err
	}
	// Merge pass-through fields without letting them shadow known ones.
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range rec.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// DecodeJSON parses an import file into record drafts. Missing or
// unparseable dates default to now, the import instant. No field validation
// is applied; incomplete records pass through as-is. Incoming ids are
// dropped so the store assigns fresh identity.
func DecodeJSON(data []byte, now time.Time) ([]core.ClientRecord, error) {
	// Unmarshal accepts a bare `null` into a slice without error; only an
	// actual array may clear the store.
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: input is not an array", ErrNotArray)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	recs := make([]core.ClientRecord, 0, len(elems))
	for i, raw := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrNotArray, i)
		}
		rec := core.ClientRecord{
			BusinessName: stringField(obj, "businessName"),
			OwnerName:    stringField(obj, "ownerName"),
			Phone:        stringField(obj, "phone"),
			Email:        stringField(obj, "email"),
			Status:       core.Status(stringField(obj, "status")),
			PlanType:     core.PlanType(stringField(obj, "planType")),
			SaleDate:     dateField(obj, "saleDate", now),
			PaymentDate:  dateField(obj, "paymentDate", now),
		}
		for _, k := range []string{"id", "businessName", "ownerName", "phone", "email", "status", "planType", "saleDate", "paymentDate"} {
			delete(obj, k)
		}
		if len(obj) > 0 {
			rec.Extra = obj
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func dateField(obj map[string]json.RawMessage, key string, now time.Time) time.Time {
	s := stringField(obj, key)
	if s == "" {
		return now
	}
	t, err := ParseInstant(s)
	if err != nil {
		return now
	}
	return t
}
