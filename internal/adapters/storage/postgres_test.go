package storage

import (
	"context"
	"os"
	"testing"

	"github.com/athebyme/vendor-product-service/internal/adapters/logger"
	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Интеграционные тесты выполняются только при заданной OWNERSHIP_TEST_DSN
func newTestPostgresStorage(t *testing.T) *OwnershipStorage {
	t.Helper()
	dsn := os.Getenv("OWNERSHIP_TEST_DSN")
	if dsn == "" {
		t.Skip("OWNERSHIP_TEST_DSN is not set")
	}

	ctx := context.Background()
	store, err := NewPostgresStorage(ctx, dsn, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.EnsureSchema(ctx))
	return store
}

func TestOwnershipStorage_Lifecycle(t *testing.T) {
	store := newTestPostgresStorage(t)
	ctx := context.Background()

	vendorID := "vendor-" + uuid.NewString()
	otherVendorID := "vendor-" + uuid.NewString()
	productIDs := []string{"product-" + uuid.NewString(), "product-" + uuid.NewString()}

	require.NoError(t, store.EnsureVendor(ctx, vendorID))
	require.NoError(t, store.EnsureVendor(ctx, vendorID))
	require.NoError(t, store.EnsureVendor(ctx, otherVendorID))

	for _, id := range productIDs {
		require.NoError(t, store.Insert(ctx, &models.OwnershipRecord{ProductID: id, VendorID: vendorID}))
	}

	err := store.Insert(ctx, &models.OwnershipRecord{ProductID: productIDs[0], VendorID: otherVendorID})
	assert.ErrorIs(t, err, utils.ErrOwnershipExists)

	ids, err := store.ListProductIDs(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, productIDs, ids)

	record, err := store.Find(ctx, productIDs[0], otherVendorID)
	require.NoError(t, err)
	assert.Nil(t, record)

	assert.ErrorIs(t, store.Delete(ctx, productIDs[0], otherVendorID), utils.ErrOwnershipNotFound)
	require.NoError(t, store.Delete(ctx, productIDs[0], vendorID))

	ids, err = store.ListProductIDs(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, productIDs[1:], ids)
}
