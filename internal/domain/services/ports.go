package services

import (
	"context"
	"encoding/json"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Catalog удаленный каталог продуктов. Методы, возвращающие json.RawMessage,
// отдают поле data ответа целиком; его разбором занимается сервис.
type Catalog interface {
	CreateProduct(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
	AddChannelListing(ctx context.Context, productID string, created json.RawMessage) error
	CreateVariant(ctx context.Context, productID string) (json.RawMessage, error)
	SetVariantPricing(ctx context.Context, variantID string, price decimal.Decimal) error
	AttachDigitalContent(ctx context.Context, variantID string) error

	UpdateProduct(ctx context.Context, query string, variables json.RawMessage) (json.RawMessage, error)
	UpdateChannelListing(ctx context.Context, productID string, listing json.RawMessage) (json.RawMessage, error)
	UpdateVariantChannelListing(ctx context.Context, product json.RawMessage) error

	// DeleteProduct возвращает false, если каталог не подтвердил удаление
	DeleteProduct(ctx context.Context, productID string) (bool, error)
	SetPublishStatus(ctx context.Context, productID, channelID string, published bool) error
	FetchProducts(ctx context.Context, productIDs []string, filter models.ProductFilter) ([]json.RawMessage, error)
}

// OwnershipStore хранилище принадлежности продуктов продавцам
type OwnershipStore interface {
	// EnsureVendor создает продавца, если его еще нет
	EnsureVendor(ctx context.Context, vendorID string) error
	Insert(ctx context.Context, record *models.OwnershipRecord) error
	Delete(ctx context.Context, productID, vendorID string) error
	// Find возвращает nil без ошибки, если записи нет
	Find(ctx context.Context, productID, vendorID string) (*models.OwnershipRecord, error)
	// ListProductIDs возвращает продукты продавца в порядке добавления
	ListProductIDs(ctx context.Context, vendorID string) ([]string, error)
}

// EventPublisher публикует события жизненного цикла продукта
type EventPublisher interface {
	Publish(ctx context.Context, event *models.ProductEvent) error
}
