package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MissingFieldError поле ответа каталога отсутствует или имеет неожиданный вид
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("catalog response is missing %s", e.Path)
}

// CreatedProduct ответ мутации создания продукта
type CreatedProduct struct {
	ProductID string
	Raw       json.RawMessage
}

// ParseCreatedProduct извлекает productCreate.product.id
func ParseCreatedProduct(raw json.RawMessage) (*CreatedProduct, error) {
	id, err := lookupString(raw, "productCreate", "product", "id")
	if err != nil {
		return nil, err
	}
	return &CreatedProduct{ProductID: id, Raw: raw}, nil
}

// ParseCreatedVariant извлекает productVariantCreate.productVariant.id
func ParseCreatedVariant(raw json.RawMessage) (string, error) {
	return lookupString(raw, "productVariantCreate", "productVariant", "id")
}

// UpdatedProduct ответ мутации изменения продукта
type UpdatedProduct struct {
	ProductID      string
	ChannelListing json.RawMessage
	Fields         map[string]json.RawMessage
}

// ParseUpdatedProduct извлекает идентификатор продукта из productVariantUpdate
// и первую запись productUpdate.product.channelListings
func ParseUpdatedProduct(raw json.RawMessage) (*UpdatedProduct, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, &MissingFieldError{Path: "data"}
	}

	id, err := lookupString(raw, "productVariantUpdate", "productVariant", "product", "id")
	if err != nil {
		return nil, err
	}

	listing, err := lookup(raw, "productUpdate", "product", "channelListings", "0")
	if err != nil {
		return nil, err
	}

	return &UpdatedProduct{ProductID: id, ChannelListing: listing, Fields: fields}, nil
}

// ParseChannelListingUpdate извлекает productChannelListingUpdate.product
func ParseChannelListingUpdate(raw json.RawMessage) (json.RawMessage, error) {
	return lookup(raw, "productChannelListingUpdate", "product")
}

// ChannelListing запись о продукте в канале продаж
type ChannelListing struct {
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
	IsPublished              bool    `json:"isPublished"`
	PublicationDate          *string `json:"publicationDate,omitempty"`
	VisibleInListings        bool    `json:"visibleInListings"`
	IsAvailableForPurchase   bool    `json:"isAvailableForPurchase"`
	AvailableForPurchaseDate *string `json:"availableForPurchase,omitempty"`
}

// ParseChannelListing разбирает запись о канале и проверяет наличие идентификатора канала
func ParseChannelListing(raw json.RawMessage) (*ChannelListing, error) {
	var listing ChannelListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, &MissingFieldError{Path: "channelListings[0]"}
	}
	if listing.Channel.ID == "" {
		return nil, &MissingFieldError{Path: "channelListings[0].channel.id"}
	}
	return &listing, nil
}

// ListedProduct продукт с вариантами и их ценами по каналам
type ListedProduct struct {
	ID       string `json:"id"`
	Variants []struct {
		ID              string `json:"id"`
		ChannelListings []struct {
			Channel struct {
				ID string `json:"id"`
			} `json:"channel"`
			Price *struct {
				Amount json.Number `json:"amount"`
			} `json:"price"`
		} `json:"channelListings"`
	} `json:"variants"`
}

// ParseListedProduct разбирает объект продукта из ответа изменения канала
func ParseListedProduct(raw json.RawMessage) (*ListedProduct, error) {
	var product ListedProduct
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, &MissingFieldError{Path: "product"}
	}
	if product.ID == "" {
		return nil, &MissingFieldError{Path: "product.id"}
	}
	return &product, nil
}

// lookup проходит по пути из ключей объектов и индексов массивов
func lookup(raw json.RawMessage, path ...string) (json.RawMessage, error) {
	current := raw
	for i, key := range path {
		trimmed := bytes.TrimSpace(current)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			if i == 0 {
				return nil, &MissingFieldError{Path: "data"}
			}
			return nil, &MissingFieldError{Path: strings.Join(path[:i], ".")}
		}

		if index, err := strconv.Atoi(key); err == nil {
			var items []json.RawMessage
			if err := json.Unmarshal(trimmed, &items); err != nil || index < 0 || index >= len(items) {
				return nil, &MissingFieldError{Path: strings.Join(path[:i+1], ".")}
			}
			current = items[index]
			continue
		}

		var object map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return nil, &MissingFieldError{Path: strings.Join(path[:i+1], ".")}
		}
		next, ok := object[key]
		if !ok {
			return nil, &MissingFieldError{Path: strings.Join(path[:i+1], ".")}
		}
		current = next
	}

	if trimmed := bytes.TrimSpace(current); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &MissingFieldError{Path: strings.Join(path, ".")}
	}
	return current, nil
}

func lookupString(raw json.RawMessage, path ...string) (string, error) {
	value, err := lookup(raw, path...)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil || s == "" {
		return "", &MissingFieldError{Path: strings.Join(path, ".")}
	}
	return s, nil
}
