package clients

import (
	"context"
	"errors"

	"clientes/internal/core"
)

// ErrNotFound is returned by Get when no record has the given id.
var ErrNotFound = errors.New("client not found")

// ClientStore is the repository port for client records. The store is the
// sole owner of record identity: Add assigns ids, Update never changes them.
//
// Update and Delete with an id that does not exist are no-ops, not errors.
type ClientStore interface {
	// List returns all records. Ordering is undefined; presentation
	// ordering is the presenter's job.
	List(ctx context.Context) ([]core.ClientRecord, error)
	Get(ctx context.Context, id int64) (core.ClientRecord, error)
	// Add persists a draft, assigning a fresh unique id, and returns it.
	Add(ctx context.Context, rec core.ClientRecord) (int64, error)
	// Update replaces all fields of the record with the matching id.
	Update(ctx context.Context, id int64, rec core.ClientRecord) error
	Delete(ctx context.Context, id int64) error
	// Clear removes every record. Only import's bulk replace uses it.
	Clear(ctx context.Context) error
	// BulkAdd inserts records in one pass. A record with ID > 0 keeps
	// that id; the rest receive fresh ones.
	BulkAdd(ctx context.Context, recs []core.ClientRecord) error
	Close() error
}
