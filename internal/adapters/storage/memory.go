package storage

import (
	"context"
	"sync"
	"time"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/internal/utils"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
)

// MemoryStorage хранилище принадлежности в памяти процесса.
// Используется при storage.driver=memory и в тестах.
type MemoryStorage struct {
	mu      sync.RWMutex
	vendors map[string]time.Time
	records []*models.OwnershipRecord
}

var _ interfaces.StoragePort = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		vendors: make(map[string]time.Time),
	}
}

func (m *MemoryStorage) EnsureVendor(ctx context.Context, vendorID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if vendorID == "" {
		return utils.ErrEmptyVendorID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.vendors[vendorID]; !ok {
		m.vendors[vendorID] = time.Now().UTC()
	}
	return nil
}

func (m *MemoryStorage) Insert(ctx context.Context, record *models.OwnershipRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ProductID == "" {
		return utils.ErrEmptyProductID
	}
	if record.VendorID == "" {
		return utils.ErrEmptyVendorID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.records {
		if existing.ProductID == record.ProductID {
			return utils.ErrOwnershipExists
		}
	}

	clone := *record
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}
	m.records = append(m.records, &clone)
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, productID, vendorID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.records {
		if existing.ProductID == productID && existing.VendorID == vendorID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return utils.ErrOwnershipNotFound
}

func (m *MemoryStorage) Find(ctx context.Context, productID, vendorID string) (*models.OwnershipRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, existing := range m.records {
		if existing.ProductID == productID && existing.VendorID == vendorID {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) ListProductIDs(ctx context.Context, vendorID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0)
	for _, existing := range m.records {
		if existing.VendorID == vendorID {
			ids = append(ids, existing.ProductID)
		}
	}
	return ids, nil
}

// HasVendor сообщает, создан ли продавец
func (m *MemoryStorage) HasVendor(vendorID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.vendors[vendorID]
	return ok
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStorage) Close() error {
	return nil
}
