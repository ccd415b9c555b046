// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/money"
	"github.com/mmynk/divvy/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps the pragmas below in effect.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate IDs if not set
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, title, currency, tax_rate, tip_rate, payment_handle, status, version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Title, string(bill.Currency), bill.TaxRate.String(), bill.TipRate.String(),
		bill.PaymentHandle, string(bill.Status), bill.Version, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertChildren(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SaveBill replaces the bill's row and children if the stored version matches.
func (s *SQLiteStore) SaveBill(ctx context.Context, bill *models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE bills
		 SET title = ?, currency = ?, tax_rate = ?, tip_rate = ?, payment_handle = ?, status = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		bill.Title, string(bill.Currency), bill.TaxRate.String(), bill.TipRate.String(),
		bill.PaymentHandle, string(bill.Status), bill.ID, bill.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM bills WHERE id = ?", bill.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NotFoundError{Kind: "bill", ID: bill.ID}
		}
		if err != nil {
			return fmt.Errorf("failed to check bill: %w", err)
		}
		return storage.ErrConflict
	}

	// Children are rewritten wholesale; owners and payments cascade from these deletes.
	for _, table := range []string{"people", "items", "payments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE bill_id = ?", bill.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertChildren(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	bill.Version++
	return nil
}

// insertChildren writes people, items, owner sets and payments of a bill.
func insertChildren(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for i, p := range bill.People {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO people (id, bill_id, position, name, payment_handle) VALUES (?, ?, ?, ?, ?)",
			p.ID, bill.ID, i, p.Name, p.PaymentHandle,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, bill_id, position, name, unit_price, quantity) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, bill.ID, i, item.Name, item.UnitPrice.Amount, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, owner := range item.Owners {
			_, err = tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO item_owners (item_id, person_id) VALUES (?, ?)",
				item.ID, owner,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item owner: %w", err)
			}
		}
	}

	for i, personID := range bill.PaidBy {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO payments (bill_id, person_id, position) VALUES (?, ?, ?)",
			bill.ID, personID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}
	return nil
}

// GetBill retrieves a bill by ID, including all items and people.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var currency, status, taxRate, tipRate string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, currency, tax_rate, tip_rate, payment_handle, status, version, created_at
		 FROM bills WHERE id = ?`,
		billID,
	).Scan(&bill.ID, &bill.Title, &currency, &taxRate, &tipRate, &bill.PaymentHandle, &status, &bill.Version, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "bill", ID: billID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.Currency = money.Currency(currency)
	bill.Status = models.Status(status)
	if bill.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return nil, fmt.Errorf("failed to parse tax rate: %w", err)
	}
	if bill.TipRate, err = decimal.NewFromString(tipRate); err != nil {
		return nil, fmt.Errorf("failed to parse tip rate: %w", err)
	}

	if bill.People, err = s.getPeople(ctx, billID); err != nil {
		return nil, err
	}
	if bill.Items, err = s.getItems(ctx, bill); err != nil {
		return nil, err
	}
	if bill.PaidBy, err = s.getPayments(ctx, billID); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *SQLiteStore) getPeople(ctx context.Context, billID string) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, payment_handle FROM people WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.PaymentHandle); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

func (s *SQLiteStore) getItems(ctx context.Context, bill *models.Bill) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, unit_price, quantity FROM items WHERE bill_id = ? ORDER BY position",
		bill.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	index := make(map[string]int)
	for rows.Next() {
		item := models.Item{Owners: []string{}}
		var unitPrice int64
		if err := rows.Scan(&item.ID, &item.Name, &unitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.UnitPrice = money.New(unitPrice, bill.Currency)
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	rows.Close()

	// Owners of every item in one query, instead of one query per item.
	ownerRows, err := s.db.QueryContext(ctx,
		`SELECT o.item_id, o.person_id FROM item_owners o
		 JOIN items i ON i.id = o.item_id
		 WHERE i.bill_id = ?`,
		bill.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item owners: %w", err)
	}
	defer ownerRows.Close()

	for ownerRows.Next() {
		var itemID, personID string
		if err := ownerRows.Scan(&itemID, &personID); err != nil {
			return nil, fmt.Errorf("failed to scan item owner: %w", err)
		}
		if i, ok := index[itemID]; ok {
			items[i].Owners = append(items[i].Owners, personID)
		}
	}
	if err := ownerRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item owners: %w", err)
	}

	for i := range items {
		items[i].NormalizeOwners()
	}
	return items, nil
}

func (s *SQLiteStore) getPayments(ctx context.Context, billID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT person_id FROM payments WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	var paidBy []string
	for rows.Next() {
		var personID string
		if err := rows.Scan(&personID); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		paidBy = append(paidBy, personID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return paidBy, nil
}

// DeleteBill removes a bill; people, items and owners cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return &models.NotFoundError{Kind: "bill", ID: billID}
	}
	return nil
}

// ListBills returns bill summaries, newest first.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]models.BillSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.status, b.currency, b.created_at,
		       (SELECT COUNT(*) FROM items i WHERE i.bill_id = b.id),
		       (SELECT COUNT(*) FROM people p WHERE p.bill_id = b.id),
		       (SELECT COALESCE(SUM(i.unit_price * i.quantity), 0) FROM items i WHERE i.bill_id = b.id)
		FROM bills b
		ORDER BY b.created_at DESC, b.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	summaries := []models.BillSummary{}
	for rows.Next() {
		var sum models.BillSummary
		var status, currency string
		var total int64
		if err := rows.Scan(&sum.ID, &sum.Title, &status, &currency, &sum.CreatedAt,
			&sum.ItemCount, &sum.PeopleCount, &total); err != nil {
			return nil, fmt.Errorf("failed to scan bill summary: %w", err)
		}
		sum.Status = models.Status(status)
		sum.ItemsTotal = money.New(total, money.Currency(currency))
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return summaries, nil
}
