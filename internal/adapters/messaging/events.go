package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
)

// DefaultTopic тема событий жизненного цикла продуктов по умолчанию
const DefaultTopic = "vendor-products"

// EventPublisher сериализует события продукта и отправляет их в брокер.
// Ключ сообщения - идентификатор продукта, поэтому события одного продукта идут по порядку.
type EventPublisher struct {
	messaging interfaces.MessagingPort
	topic     string
}

func NewEventPublisher(messaging interfaces.MessagingPort, topic string) *EventPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &EventPublisher{messaging: messaging, topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, event *models.ProductEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	if err := p.messaging.Publish(ctx, p.topic, event.ProductID, payload); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}
