package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.EnsureVendor(ctx, "V1"))
	require.NoError(t, store.Insert(ctx, &models.OwnershipRecord{ProductID: "P1", VendorID: "V1"}))

	record, err := store.Find(ctx, "P1", "V1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "V1", record.VendorID)
	assert.False(t, record.CreatedAt.IsZero())

	other, err := store.Find(ctx, "P1", "V2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemoryStorage_EnsureVendorIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.EnsureVendor(ctx, "V1"))
	require.NoError(t, store.EnsureVendor(ctx, "V1"))

	assert.True(t, store.HasVendor("V1"))
	assert.ErrorIs(t, store.EnsureVendor(ctx, ""), utils.ErrEmptyVendorID)
}

func TestMemoryStorage_OneOwnerPerProduct(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.Insert(ctx, &models.OwnershipRecord{ProductID: "P1", VendorID: "V1"}))
	err := store.Insert(ctx, &models.OwnershipRecord{ProductID: "P1", VendorID: "V2"})

	assert.ErrorIs(t, err, utils.ErrOwnershipExists)
}

func TestMemoryStorage_DeleteScopedToVendor(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	require.NoError(t, store.Insert(ctx, &models.OwnershipRecord{ProductID: "P1", VendorID: "V2"}))

	assert.ErrorIs(t, store.Delete(ctx, "P1", "V1"), utils.ErrOwnershipNotFound)
	require.NoError(t, store.Delete(ctx, "P1", "V2"))

	record, err := store.Find(ctx, "P1", "V2")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestMemoryStorage_ListProductIDsKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	for _, id := range []string{"P3", "P1", "P2"} {
		require.NoError(t, store.Insert(ctx, &models.OwnershipRecord{ProductID: id, VendorID: "V1"}))
	}
	require.NoError(t, store.Insert(ctx, &models.OwnershipRecord{ProductID: "P9", VendorID: "V2"}))
	require.NoError(t, store.Delete(ctx, "P1", "V1"))

	ids, err := store.ListProductIDs(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P3", "P2"}, ids)

	empty, err := store.ListProductIDs(ctx, "V3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStorage_ConcurrentInsertSingleOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Insert(ctx, &models.OwnershipRecord{ProductID: "P1", VendorID: fmt.Sprintf("V%d", i)})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestMemoryStorage_CancelledContext(t *testing.T) {
	store := NewMemoryStorage()
	require.NoError(t, store.Insert(context.Background(), &models.OwnershipRecord{ProductID: "P1", VendorID: "V1"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.EnsureVendor(ctx, "V2"), context.Canceled)
	assert.False(t, store.HasVendor("V2"))
	assert.ErrorIs(t, store.Insert(ctx, &models.OwnershipRecord{ProductID: "P2", VendorID: "V1"}), context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx, "P1", "V1"), context.Canceled)

	_, err := store.Find(ctx, "P1", "V1")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.ListProductIDs(ctx, "V1")
	assert.ErrorIs(t, err, context.Canceled)

	ids, err := store.ListProductIDs(context.Background(), "V1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, ids)
}
