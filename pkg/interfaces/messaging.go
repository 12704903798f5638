package interfaces

import "context"

// MessagingPort определяет интерфейс отправки сообщений в брокер
type MessagingPort interface {
	// Publish отправляет сообщение в тему. Ключ задает партиционирование, может быть пустым
	Publish(ctx context.Context, topic string, key string, message []byte) error

	// Close дожидается доставки буферизованных сообщений и закрывает соединение
	Close() error
}
