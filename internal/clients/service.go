// Package clients holds the record lifecycle: the repository port, the
// display presenter and the service that ties form validation, store
// mutations and the import/export round trip together.
package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clientes/internal/core"
	"clientes/internal/transfer"
)

// ClientService orchestrates client record operations over an injected
// store. All user actions in the UI resolve to exactly one method here.
type ClientService struct {
	store ClientStore
	loc   *time.Location
	now   func() time.Time
}

// NewClientService builds a service over the given store. loc is the
// timezone used for date normalization and display; nil means the system
// local zone.
func NewClientService(store ClientStore, loc *time.Location) *ClientService {
	if loc == nil {
		loc = time.Local
	}
	return &ClientService{store: store, loc: loc, now: time.Now}
}

// Location returns the timezone the service normalizes dates in.
func (s *ClientService) Location() *time.Location {
	return s.loc
}

// List returns every record presented for display: sorted by payment date
// ascending and flagged when due today.
func (s *ClientService) List(ctx context.Context) ([]ClientRow, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return Present(recs, s.now(), s.loc), nil
}

// Create validates the form and persists a new record, returning the
// assigned id. Field errors block the save; nothing partial is written.
func (s *ClientService) Create(ctx context.Context, form core.ClientForm) (int64, core.FieldErrors, error) {
	rec, ferrs := form.Validate(s.loc)
	if len(ferrs) > 0 {
		return 0, ferrs, nil
	}
	id, err := s.store.Add(ctx, rec)
	if err != nil {
		return 0, nil, fmt.Errorf("add client: %w", err)
	}
	slog.InfoContext(ctx, "Client created", "id", id, "business_name", rec.BusinessName)
	return id, nil, nil
}

// Update validates the form and replaces every field of the record with the
// matching id. An id that no longer exists is a silent no-op at the store
// level.
func (s *ClientService) Update(ctx context.Context, id int64, form core.ClientForm) (core.FieldErrors, error) {
	rec, ferrs := form.Validate(s.loc)
	if len(ferrs) > 0 {
		return ferrs, nil
	}
	if err := s.store.Update(ctx, id, rec); err != nil {
		return nil, fmt.Errorf("update client %d: %w", id, err)
	}
	slog.InfoContext(ctx, "Client updated", "id", id, "business_name", rec.BusinessName)
	return nil, nil
}

// Delete removes the record with the matching id; absent ids are a no-op.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	slog.InfoContext(ctx, "Client deleted", "id", id)
	return nil
}

// EditForm loads a record and converts it back to form values to
// pre-populate the edit modal.
func (s *ClientService) EditForm(ctx context.Context, id int64) (core.ClientForm, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return core.ClientForm{}, fmt.Errorf("load client %d: %w", id, err)
	}
	return core.FormFromRecord(rec, s.loc), nil
}

// ExportJSON serializes the whole collection, returning the file content and
// its download name. An empty store yields transfer.ErrNothingToExport.
func (s *ClientService) ExportJSON(ctx context.Context) ([]byte, string, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list clients: %w", err)
	}
	data, err := transfer.EncodeJSON(recs)
	if err != nil {
		return nil, "", err
	}
	slog.InfoContext(ctx, "Clients exported", "count", len(recs), "format", "json")
	return data, transfer.FileName(s.now()), nil
}

// ExportXLSX is the spreadsheet variant of ExportJSON.
func (s *ClientService) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list clients: %w", err)
	}
	data, err := transfer.EncodeXLSX(recs, s.loc)
	if err != nil {
		return nil, "", err
	}
	slog.InfoContext(ctx, "Clients exported", "count", len(recs), "format", "xlsx")
	return data, transfer.XLSXFileName(s.now()), nil
}

// Import performs the destructive bulk replace: parse first, so a malformed
// file leaves the store untouched, then clear and bulk-add. Incoming records
// are taken as-is apart from date defaulting; the add/update validation
// rules do not apply on this path.
func (s *ClientService) Import(ctx context.Context, data []byte) (int, error) {
	recs, err := transfer.DecodeJSON(data, s.now())
	if err != nil {
		return 0, err
	}
	if err := s.store.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear clients: %w", err)
	}
	if err := s.store.BulkAdd(ctx, recs); err != nil {
		return 0, fmt.Errorf("bulk add clients: %w", err)
	}
	slog.InfoContext(ctx, "Clients imported", "count", len(recs))
	return len(recs), nil
}

// Close releases the underlying store.
func (s *ClientService) Close() error {
	return s.store.Close()
}
