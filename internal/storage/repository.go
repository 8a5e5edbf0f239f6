// Package storage persists client records in a local SQLite file. It is the
// default backend behind the clients.ClientStore port.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"clientes/internal/clients"
	"clientes/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const clientColumns = `id, business_name, owner_name, phone, email, status, plan_type, sale_date_ms, payment_date_ms, extra`

// List returns all records. No ordering is guaranteed here; presentation
// ordering happens in the presenter.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.ClientRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var recs []core.ClientRecord
	for rows.Next() {
		rec, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	rec, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ClientRecord{}, clients.ErrNotFound
	}
	if err != nil {
		return core.ClientRecord{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return rec, nil
}

// Add persists a draft and returns the id SQLite assigned.
func (r *SQLiteRepository) Add(ctx context.Context, rec core.ClientRecord) (int64, error) {
	extra, err := encodeExtra(rec)
	if err != nil {
		return 0, fmt.Errorf("encode extra fields: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (business_name, owner_name, phone, email, status, plan_type, sale_date_ms, payment_date_ms, extra)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.BusinessName, rec.OwnerName, rec.Phone, rec.Email,
		string(rec.Status), string(rec.PlanType),
		rec.SaleDate.UnixMilli(), rec.PaymentDate.UnixMilli(), extra)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read assigned id: %w", err)
	}
	slog.InfoContext(ctx, "Client saved to SQLite", "id", id, "business_name", rec.BusinessName)
	return id, nil
}

// Update replaces all fields of the matching record. Updating an id that no
// longer exists is a no-op.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, rec core.ClientRecord) error {
	extra, err := encodeExtra(rec)
	if err != nil {
		return fmt.Errorf("encode extra fields: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET business_name = ?, owner_name = ?, phone = ?, email = ?, status = ?, plan_type = ?, sale_date_ms = ?, payment_date_ms = ?, extra = ?
		 WHERE id = ?`,
		rec.BusinessName, rec.OwnerName, rec.Phone, rec.Email,
		string(rec.Status), string(rec.PlanType),
		rec.SaleDate.UnixMilli(), rec.PaymentDate.UnixMilli(), extra, id)
	if err != nil {
		return fmt.Errorf("update client %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.WarnContext(ctx, "Update of missing client ignored", "id", id)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("clear clients: %w", err)
	}
	return nil
}

// BulkAdd inserts records in a single transaction. Records carrying an
// explicit id keep it; the rest receive fresh ones from the autoincrement.
func (r *SQLiteRepository) BulkAdd(ctx context.Context, recs []core.ClientRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk add: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		extra, err := encodeExtra(rec)
		if err != nil {
			return fmt.Errorf("encode extra fields: %w", err)
		}
		args := []interface{}{
			rec.BusinessName, rec.OwnerName, rec.Phone, rec.Email,
			string(rec.Status), string(rec.PlanType),
			rec.SaleDate.UnixMilli(), rec.PaymentDate.UnixMilli(), extra,
		}
		query := `INSERT INTO clients (business_name, owner_name, phone, email, status, plan_type, sale_date_ms, payment_date_ms, extra)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if rec.ID > 0 {
			query = `INSERT INTO clients (id, business_name, owner_name, phone, email, status, plan_type, sale_date_ms, payment_date_ms, extra)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
			args = append([]interface{}{rec.ID}, args...)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("bulk insert client: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk add: %w", err)
	}
	slog.InfoContext(ctx, "Clients bulk-added to SQLite", "count", len(recs))
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (core.ClientRecord, error) {
	var (
		rec           core.ClientRecord
		status, plan  string
		saleMS, payMS int64
		extra         string
	)
	err := row.Scan(&rec.ID, &rec.BusinessName, &rec.OwnerName, &rec.Phone, &rec.Email,
		&status, &plan, &saleMS, &payMS, &extra)
	if err != nil {
		return core.ClientRecord{}, err
	}
	rec.Status = core.Status(status)
	rec.PlanType = core.PlanType(plan)
	rec.SaleDate = time.UnixMilli(saleMS).UTC()
	rec.PaymentDate = time.UnixMilli(payMS).UTC()
	if extra != "" {
		if err := json.Unmarshal([]byte(extra), &rec.Extra); err != nil {
			return core.ClientRecord{}, fmt.Errorf("decode extra fields: %w", err)
		}
	}
	return rec, nil
}

func encodeExtra(rec core.ClientRecord) (string, error) {
	if len(rec.Extra) == 0 {
		return "", nil
	}
	b, err := json.Marshal(rec.Extra)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
