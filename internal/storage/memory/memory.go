// Package memory provides an in-process implementation of storage.Store.
// Bills live only as long as the process; it backs tests and throwaway servers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps deep copies of bills in a map.
type MemoryStore struct {
	mu    sync.RWMutex
	bills map[string]*models.Bill
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{bills: make(map[string]*models.Bill)}
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// CreateBill stores a copy of the bill.
func (s *MemoryStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	bill.Version = 1

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[bill.ID] = bill.Clone()
	return nil
}

// GetBill returns a copy of the stored bill.
func (s *MemoryStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bill, ok := s.bills[billID]
	if !ok {
		return nil, &models.NotFoundError{Kind: "bill", ID: billID}
	}
	return bill.Clone(), nil
}

// SaveBill replaces the stored bill when the versions match.
func (s *MemoryStore) SaveBill(ctx context.Context, bill *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bills[bill.ID]
	if !ok {
		return &models.NotFoundError{Kind: "bill", ID: bill.ID}
	}
	if stored.Version != bill.Version {
		return storage.ErrConflict
	}
	bill.Version++
	s.bills[bill.ID] = bill.Clone()
	return nil
}

// DeleteBill removes the bill.
func (s *MemoryStore) DeleteBill(ctx context.Context, billID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bills[billID]; !ok {
		return &models.NotFoundError{Kind: "bill", ID: billID}
	}
	delete(s.bills, billID)
	return nil
}

// ListBills returns summaries ordered by creation time, newest first.
func (s *MemoryStore) ListBills(ctx context.Context) ([]models.BillSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]models.BillSummary, 0, len(s.bills))
	for _, bill := range s.bills {
		summary, err := bill.Summary()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt != summaries[j].CreatedAt {
			return summaries[i].CreatedAt > summaries[j].CreatedAt
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}
