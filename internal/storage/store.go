// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/divvy/internal/models"
)

// ErrConflict is returned by SaveBill when the stored version differs from the
// version the caller loaded. The caller should reload and retry.
var ErrConflict = errors.New("bill was modified concurrently")

// Store defines the interface for bill storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, memory)
// without changing the service layer.
type Store interface {
	// CreateBill persists a new bill.
	// ID, CreatedAt and Version are populated by the store.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID.
	// Returns a *models.NotFoundError if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// SaveBill replaces a stored bill if its version still equals bill.Version,
	// then increments bill.Version. Returns ErrConflict otherwise.
	SaveBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill and everything in it.
	DeleteBill(ctx context.Context, billID string) error

	// ListBills returns summaries of all bills, newest first.
	ListBills(ctx context.Context) ([]models.BillSummary, error)

	// Close releases any resources held by the store.
	Close() error
}
