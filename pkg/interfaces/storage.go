package interfaces

import (
	"context"
)

// StoragePort определяет интерфейс постоянного хранилища
type StoragePort interface {
	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error

	// Close закрывает соединение с хранилищем
	Close() error
}
