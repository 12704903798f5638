package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/internal/domain/services"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

var _ services.Catalog = (*Client)(nil)

type channelListingInput struct {
	ChannelID                string  `json:"channelId"`
	IsPublished              bool    `json:"isPublished"`
	PublicationDate          *string `json:"publicationDate,omitempty"`
	VisibleInListings        bool    `json:"visibleInListings"`
	IsAvailableForPurchase   bool    `json:"isAvailableForPurchase"`
	AvailableForPurchaseDate *string `json:"availableForPurchaseDate,omitempty"`
}

type variantPriceInput struct {
	ChannelID string `json:"channelId"`
	Price     string `json:"price"`
}

// CreateProduct выполняет мутацию создания продукта, переданную клиентом
func (c *Client) CreateProduct(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	return c.execute(ctx, "create_product", c.app, nil, query, variables)
}

// AddChannelListing публикует созданный продукт в канале продаж.
// Если каталог уже вернул продукт в нужном канале, мутация не выполняется.
func (c *Client) AddChannelListing(ctx context.Context, productID string, created json.RawMessage) error {
	if listedInChannel(created, c.cfg.ChannelID) {
		return nil
	}

	variables := map[string]interface{}{
		"id": productID,
		"input": map[string]interface{}{
			"updateChannels": []channelListingInput{{
				ChannelID:              c.cfg.ChannelID,
				IsPublished:            true,
				VisibleInListings:      true,
				IsAvailableForPurchase: true,
			}},
		},
	}

	return c.executeBestEffort(ctx, "add_channel_listing", productChannelListingUpdateMutation, variables)
}

// CreateVariant создает вариант продукта без атрибутов
func (c *Client) CreateVariant(ctx context.Context, productID string) (json.RawMessage, error) {
	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"product":        productID,
			"attributes":     []interface{}{},
			"trackInventory": false,
		},
	}
	return c.execute(ctx, "create_variant", c.app, nil, productVariantCreateMutation, variables)
}

// SetVariantPricing задает цену варианта в канале продаж
func (c *Client) SetVariantPricing(ctx context.Context, variantID string, price decimal.Decimal) error {
	return c.setVariantPrices(ctx, "set_variant_pricing", variantID, []variantPriceInput{{
		ChannelID: c.cfg.ChannelID,
		Price:     price.String(),
	}})
}

// AttachDigitalContent связывает вариант с цифровым контентом
func (c *Client) AttachDigitalContent(ctx context.Context, variantID string) error {
	variables := map[string]interface{}{
		"id": variantID,
		"input": []map[string]string{
			{"key": "digital_content_url", "value": c.cfg.DigitalContentURL},
			{"key": "automatic_fulfillment", "value": "true"},
		},
	}
	_, err := c.execute(ctx, "attach_digital_content", c.app, nil, digitalContentMetadataMutation, variables)
	return err
}

// UpdateProduct выполняет мутацию изменения продукта, переданную клиентом
func (c *Client) UpdateProduct(ctx context.Context, query string, variables json.RawMessage) (json.RawMessage, error) {
	var vars interface{}
	if len(variables) > 0 {
		vars = variables
	}
	return c.execute(ctx, "update_product", c.app, nil, query, vars)
}

// UpdateChannelListing повторно применяет запись о канале к продукту
func (c *Client) UpdateChannelListing(ctx context.Context, productID string, listing json.RawMessage) (json.RawMessage, error) {
	parsed, err := models.ParseChannelListing(listing)
	if err != nil {
		return nil, err
	}

	variables := map[string]interface{}{
		"id": productID,
		"input": map[string]interface{}{
			"updateChannels": []channelListingInput{{
				ChannelID:                parsed.Channel.ID,
				IsPublished:              parsed.IsPublished,
				PublicationDate:          parsed.PublicationDate,
				VisibleInListings:        parsed.VisibleInListings,
				IsAvailableForPurchase:   parsed.IsAvailableForPurchase,
				AvailableForPurchaseDate: parsed.AvailableForPurchaseDate,
			}},
		},
	}
	return c.execute(ctx, "update_channel_listing", c.app, nil, productChannelListingUpdateMutation, variables)
}

// UpdateVariantChannelListing переносит цены вариантов продукта в их каналы
func (c *Client) UpdateVariantChannelListing(ctx context.Context, product json.RawMessage) error {
	parsed, err := models.ParseListedProduct(product)
	if err != nil {
		return err
	}

	for _, variant := range parsed.Variants {
		prices := make([]variantPriceInput, 0, len(variant.ChannelListings))
		for _, listing := range variant.ChannelListings {
			if listing.Price == nil || listing.Channel.ID == "" {
				continue
			}
			prices = append(prices, variantPriceInput{
				ChannelID: listing.Channel.ID,
				Price:     listing.Price.Amount.String(),
			})
		}
		if len(prices) == 0 {
			continue
		}
		if err := c.setVariantPrices(ctx, "update_variant_channel_listing", variant.ID, prices); err != nil {
			return err
		}
	}
	return nil
}

// DeleteProduct удаляет продукт. false означает, что каталог не вернул удаленный продукт
func (c *Client) DeleteProduct(ctx context.Context, productID string) (bool, error) {
	data, err := c.execute(ctx, "delete_product", c.app, nil, productDeleteMutation, map[string]interface{}{"id": productID})
	if err != nil {
		return false, err
	}

	var out struct {
		ProductDelete *struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
		} `json:"productDelete"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return false, fmt.Errorf("failed to decode delete_product response: %w", err)
	}
	return out.ProductDelete != nil && out.ProductDelete.Product != nil && out.ProductDelete.Product.ID != "", nil
}

// SetPublishStatus меняет флаг публикации продукта в канале
func (c *Client) SetPublishStatus(ctx context.Context, productID, channelID string, published bool) error {
	variables := map[string]interface{}{
		"id": productID,
		"input": map[string]interface{}{
			"updateChannels": []map[string]interface{}{{
				"channelId":   channelID,
				"isPublished": published,
			}},
		},
	}
	return c.executeBestEffort(ctx, "set_publish_status", productChannelListingUpdateMutation, variables)
}

// FetchProducts загружает продукты по идентификаторам в порядке их перечисления
func (c *Client) FetchProducts(ctx context.Context, productIDs []string, filter models.ProductFilter) ([]json.RawMessage, error) {
	variables := filter.ToMap()
	variables["ids"] = productIDs
	if c.cfg.ChannelSlug != "" {
		variables["channel"] = c.cfg.ChannelSlug
	}

	data, err := c.execute(ctx, "fetch_products", c.app, nil, productsQuery, variables)
	if err != nil {
		return nil, err
	}

	var out struct {
		Products *struct {
			Edges []struct {
				Node json.RawMessage `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode fetch_products response: %w", err)
	}
	if out.Products == nil {
		return nil, &models.MissingFieldError{Path: "products"}
	}

	nodes := make([]json.RawMessage, 0, len(out.Products.Edges))
	for _, edge := range out.Products.Edges {
		nodes = append(nodes, edge.Node)
	}
	return orderByIDs(nodes, productIDs), nil
}

// Me возвращает идентификатор пользователя, которому принадлежит токен.
// Пустая строка без ошибки означает, что пользователь не найден.
func (c *Client) Me(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil
	}

	data, err := c.execute(ctx, "me", c.user, &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, meQuery, nil)
	if err != nil {
		return "", err
	}

	var out struct {
		Me *struct {
			ID string `json:"id"`
		} `json:"me"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode me response: %w", err)
	}
	if out.Me == nil {
		return "", nil
	}
	return out.Me.ID, nil
}

func (c *Client) setVariantPrices(ctx context.Context, operation, variantID string, prices []variantPriceInput) error {
	variables := map[string]interface{}{
		"id":    variantID,
		"input": prices,
	}
	_, err := c.execute(ctx, operation, c.app, nil, productVariantChannelListingUpdateMutation, variables)
	return err
}

func listedInChannel(created json.RawMessage, channelID string) bool {
	var out struct {
		ProductCreate *struct {
			Product *struct {
				ChannelListings []struct {
					Channel struct {
						ID string `json:"id"`
					} `json:"channel"`
				} `json:"channelListings"`
			} `json:"product"`
		} `json:"productCreate"`
	}
	if err := json.Unmarshal(created, &out); err != nil || out.ProductCreate == nil || out.ProductCreate.Product == nil {
		return false
	}
	for _, listing := range out.ProductCreate.Product.ChannelListings {
		if listing.Channel.ID == channelID {
			return true
		}
	}
	return false
}

// orderByIDs упорядочивает узлы по списку идентификаторов, неизвестные идут в конце
func orderByIDs(nodes []json.RawMessage, ids []string) []json.RawMessage {
	position := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, ok := position[id]; !ok {
			position[id] = i
		}
	}

	buckets := make([]json.RawMessage, len(ids))
	var rest []json.RawMessage
	for _, node := range nodes {
		var head struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(node, &head)
		if i, ok := position[head.ID]; ok && buckets[i] == nil {
			buckets[i] = node
			continue
		}
		rest = append(rest, node)
	}

	ordered := make([]json.RawMessage, 0, len(nodes))
	for _, node := range buckets {
		if node != nil {
			ordered = append(ordered, node)
		}
	}
	return append(ordered, rest...)
}
