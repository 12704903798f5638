package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingSellingPrice = errors.New("variables.input.selling_price is required")
	ErrInvalidSellingPrice = errors.New("variables.input.selling_price must be a non-negative number")
	ErrMissingQuery        = errors.New("query is required")
)

// CreateProductRequest запрос на создание продукта: мутация каталога и ее переменные.
// Переменные обязаны содержать input.selling_price.
type CreateProductRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// SplitSellingPrice возвращает копию переменных без input.selling_price и саму цену.
// Исходные переменные не изменяются.
func (r *CreateProductRequest) SplitSellingPrice() (map[string]interface{}, decimal.Decimal, error) {
	input, ok := r.Variables["input"].(map[string]interface{})
	if !ok {
		return nil, decimal.Zero, ErrMissingSellingPrice
	}
	rawPrice, ok := input["selling_price"]
	if !ok || rawPrice == nil {
		return nil, decimal.Zero, ErrMissingSellingPrice
	}

	price, err := parsePrice(rawPrice)
	if err != nil {
		return nil, decimal.Zero, err
	}

	strippedInput := make(map[string]interface{}, len(input)-1)
	for k, v := range input {
		if k != "selling_price" {
			strippedInput[k] = v
		}
	}

	stripped := make(map[string]interface{}, len(r.Variables))
	for k, v := range r.Variables {
		stripped[k] = v
	}
	stripped["input"] = strippedInput

	return stripped, price, nil
}

func parsePrice(raw interface{}) (decimal.Decimal, error) {
	var (
		price decimal.Decimal
		err   error
	)

	switch v := raw.(type) {
	case json.Number:
		price, err = decimal.NewFromString(v.String())
	case string:
		price, err = decimal.NewFromString(v)
	case float64:
		price = decimal.NewFromFloat(v)
	case int:
		price = decimal.NewFromInt(int64(v))
	case int64:
		price = decimal.NewFromInt(v)
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrInvalidSellingPrice, raw)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidSellingPrice, err)
	}
	if price.IsNegative() {
		return decimal.Zero, ErrInvalidSellingPrice
	}

	return price, nil
}

// EditProductRequest запрос на изменение продукта. Переменные передаются в каталог без изменений
type EditProductRequest struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables"`
}

// ProductRequest запрос, адресованный одному продукту (удаление, снятие с публикации)
type ProductRequest struct {
	ProductID string `json:"product_id"`
}

// ListProductsQuery параметры запроса списка в том виде, в каком они пришли
type ListProductsQuery struct {
	PageNumber  string
	IsPublished string
}

// CreateProductResult ответ каталога на создание продукта
type CreateProductResult struct {
	ProductID string
	Product   json.RawMessage
}

// EditProductResult ответ каталога на изменение продукта
type EditProductResult struct {
	Response map[string]json.RawMessage
}

// ProductPage страница продуктов продавца
type ProductPage struct {
	PageNumber int               `json:"page_number"`
	TotalPages int               `json:"total_pages"`
	Data       []json.RawMessage `json:"data"`
}
