// Package postgres provides a PostgreSQL implementation of storage.Store.
// Each bill is stored as one JSONB document next to its version counter.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    data JSONB NOT NULL,
    version BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills(created_at);
`

// PostgresStore implements storage.Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL, verifies the connection and creates the schema.
func New(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// CreateBill inserts the bill document.
func (s *PostgresStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.Status == "" {
		bill.Status = models.StatusOpen
	}
	bill.Version = 1

	data, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("failed to encode bill: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		"INSERT INTO bills (id, data, version, created_at) VALUES ($1, $2, $3, $4)",
		bill.ID, data, bill.Version, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetBill loads and decodes the bill document.
func (s *PostgresStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	var data []byte
	var version int64
	err := s.pool.QueryRow(ctx, "SELECT data, version FROM bills WHERE id = $1", billID).Scan(&data, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "bill", ID: billID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill, err := decodeBill(data)
	if err != nil {
		return nil, err
	}
	bill.Version = version
	return bill, nil
}

// SaveBill overwrites the document if the stored version matches.
func (s *PostgresStore) SaveBill(ctx context.Context, bill *models.Bill) error {
	next := *bill
	next.Version = bill.Version + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode bill: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE bills SET data = $1, version = version + 1 WHERE id = $2 AND version = $3",
		data, bill.ID, bill.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		err := s.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM bills WHERE id = $1)", bill.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check bill: %w", err)
		}
		if !exists {
			return &models.NotFoundError{Kind: "bill", ID: bill.ID}
		}
		return storage.ErrConflict
	}
	bill.Version++
	return nil
}

// DeleteBill removes the document.
func (s *PostgresStore) DeleteBill(ctx context.Context, billID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM bills WHERE id = $1", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Kind: "bill", ID: billID}
	}
	return nil
}

// ListBills decodes every document into a summary, newest first.
func (s *PostgresStore) ListBills(ctx context.Context) ([]models.BillSummary, error) {
	rows, err := s.pool.Query(ctx, "SELECT data, version FROM bills ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	summaries := []models.BillSummary{}
	for rows.Next() {
		var data []byte
		var version int64
		if err := rows.Scan(&data, &version); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill, err := decodeBill(data)
		if err != nil {
			return nil, err
		}
		summary, err := bill.Summary()
		if err != nil {
			return nil, fmt.Errorf("failed to summarize bill %s: %w", bill.ID, err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return summaries, nil
}

func decodeBill(data []byte) (*models.Bill, error) {
	var bill models.Bill
	if err := json.Unmarshal(data, &bill); err != nil {
		return nil, fmt.Errorf("failed to decode bill: %w", err)
	}
	if bill.People == nil {
		bill.People = []models.Person{}
	}
	if bill.Items == nil {
		bill.Items = []models.Item{}
	}
	for i := range bill.Items {
		bill.Items[i].NormalizeOwners()
	}
	return &bill, nil
}
