package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProductCreatedEvent     = "product_created"
	ProductUpdatedEvent     = "product_updated"
	ProductDeletedEvent     = "product_deleted"
	ProductUnpublishedEvent = "product_unpublished"
)

// ProductEvent событие жизненного цикла продукта
type ProductEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id"`
	VendorID   string    `json:"vendor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProductEvent создает событие с новым идентификатором
func NewProductEvent(eventType, productID, vendorID string) *ProductEvent {
	return &ProductEvent{
		ID:         uuid.New(),
		Type:       eventType,
		ProductID:  productID,
		VendorID:   vendorID,
		OccurredAt: time.Now().UTC(),
	}
}
