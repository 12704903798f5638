package services

import (
	"context"
	"encoding/json"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockedIdentity struct {
	mock.Mock
}

func (m *mockedIdentity) ResolveVendor(ctx context.Context, credential string) (string, error) {
	args := m.Called(ctx, credential)
	return args.String(0), args.Error(1)
}

type mockedCatalog struct {
	mock.Mock
}

func rawOrNil(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	return v.(json.RawMessage)
}

func (m *mockedCatalog) CreateProduct(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, query, variables)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *mockedCatalog) AddChannelListing(ctx context.Context, productID string, created json.RawMessage) error {
	return m.Called(ctx, productID, created).Error(0)
}

func (m *mockedCatalog) CreateVariant(ctx context.Context, productID string) (json.RawMessage, error) {
	args := m.Called(ctx, productID)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *mockedCatalog) SetVariantPricing(ctx context.Context, variantID string, price decimal.Decimal) error {
	return m.Called(ctx, variantID, price).Error(0)
}

func (m *mockedCatalog) AttachDigitalContent(ctx context.Context, variantID string) error {
	return m.Called(ctx, variantID).Error(0)
}

func (m *mockedCatalog) UpdateProduct(ctx context.Context, query string, variables json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, query, variables)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *mockedCatalog) UpdateChannelListing(ctx context.Context, productID string, listing json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, productID, listing)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *mockedCatalog) UpdateVariantChannelListing(ctx context.Context, product json.RawMessage) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockedCatalog) DeleteProduct(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *mockedCatalog) SetPublishStatus(ctx context.Context, productID, channelID string, published bool) error {
	return m.Called(ctx, productID, channelID, published).Error(0)
}

func (m *mockedCatalog) FetchProducts(ctx context.Context, productIDs []string, filter models.ProductFilter) ([]json.RawMessage, error) {
	args := m.Called(ctx, productIDs, filter)
	var products []json.RawMessage
	if v := args.Get(0); v != nil {
		products = v.([]json.RawMessage)
	}
	return products, args.Error(1)
}

type mockedPublisher struct {
	mock.Mock
}

func (m *mockedPublisher) Publish(ctx context.Context, event *models.ProductEvent) error {
	return m.Called(ctx, event).Error(0)
}
