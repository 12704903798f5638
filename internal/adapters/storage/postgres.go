package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/internal/utils"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/athebyme/vendor-product-service/pkg/tx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
		id         TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS vendor_products (
		seq        BIGSERIAL PRIMARY KEY,
		product_id TEXT NOT NULL UNIQUE,
		vendor_id  TEXT NOT NULL REFERENCES vendors (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS vendor_products_vendor_seq_idx ON vendor_products (vendor_id, seq)`,
}

// OwnershipStorage хранилище принадлежности продуктов в PostgreSQL
type OwnershipStorage struct {
	pool      *pgxpool.Pool
	txManager tx.TxManager
	logger    interfaces.LoggerPort
}

var _ interfaces.StoragePort = (*OwnershipStorage)(nil)

// NewPostgresStorage создает пул соединений и проверяет доступность БД
func NewPostgresStorage(ctx context.Context, connectionString string, logger interfaces.LoggerPort) (*OwnershipStorage, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return NewPostgresStorageWithPool(ctx, pool, logger)
}

func NewPostgresStorageWithPool(ctx context.Context, pool *pgxpool.Pool, logger interfaces.LoggerPort) (*OwnershipStorage, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &OwnershipStorage{
		pool:      pool,
		txManager: tx.NewTxManager(pool, logger),
		logger:    logger,
	}, nil
}

// EnsureSchema создает таблицы в одной транзакции
func (r *OwnershipStorage) EnsureSchema(ctx context.Context) error {
	return r.txManager.Do(ctx, func(ctx context.Context) error {
		executor := r.getExecutor(ctx)
		for _, stmt := range schema {
			if _, err := executor.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}

func (r *OwnershipStorage) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close закрывает соединение с БД
func (r *OwnershipStorage) Close() error {
	r.pool.Close()
	return nil
}

type executor interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// getExecutor возвращает транзакцию из контекста или пул
func (r *OwnershipStorage) getExecutor(ctx context.Context) executor {
	if txFromCtx, ok := tx.GetTxFromContext(ctx); ok {
		return txFromCtx
	}
	return r.pool
}

// EnsureVendor создает продавца, если его еще нет
func (r *OwnershipStorage) EnsureVendor(ctx context.Context, vendorID string) error {
	if vendorID == "" {
		return utils.ErrEmptyVendorID
	}

	query := `INSERT INTO vendors (id, created_at) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
	if _, err := r.getExecutor(ctx).Exec(ctx, query, vendorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to ensure vendor: %w", err)
	}
	return nil
}

// Insert сохраняет запись о принадлежности. Повторная запись для продукта возвращает ErrOwnershipExists
func (r *OwnershipStorage) Insert(ctx context.Context, record *models.OwnershipRecord) error {
	if record.ProductID == "" {
		return utils.ErrEmptyProductID
	}
	if record.VendorID == "" {
		return utils.ErrEmptyVendorID
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO vendor_products (product_id, vendor_id, created_at) VALUES ($1, $2, $3)`
	if _, err := r.getExecutor(ctx).Exec(ctx, query, record.ProductID, record.VendorID, record.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return utils.ErrOwnershipExists
		}
		return fmt.Errorf("failed to save ownership record: %w", err)
	}
	return nil
}

// Delete удаляет запись продавца о продукте
func (r *OwnershipStorage) Delete(ctx context.Context, productID, vendorID string) error {
	query := `DELETE FROM vendor_products WHERE product_id = $1 AND vendor_id = $2`
	tag, err := r.getExecutor(ctx).Exec(ctx, query, productID, vendorID)
	if err != nil {
		return fmt.Errorf("failed to delete ownership record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrOwnershipNotFound
	}
	return nil
}

// Find ищет запись по продукту и продавцу
func (r *OwnershipStorage) Find(ctx context.Context, productID, vendorID string) (*models.OwnershipRecord, error) {
	query := `
		SELECT product_id, vendor_id, created_at
		FROM vendor_products
		WHERE product_id = $1 AND vendor_id = $2
	`

	var record models.OwnershipRecord
	err := r.getExecutor(ctx).QueryRow(ctx, query, productID, vendorID).
		Scan(&record.ProductID, &record.VendorID, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ownership record: %w", err)
	}
	return &record, nil
}

// ListProductIDs возвращает продукты продавца в порядке добавления
func (r *OwnershipStorage) ListProductIDs(ctx context.Context, vendorID string) ([]string, error) {
	query := `SELECT product_id FROM vendor_products WHERE vendor_id = $1 ORDER BY seq`

	rows, err := r.getExecutor(ctx).Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor products: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan vendor products: %w", err)
	}
	return ids, nil
}
