package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/internal/domain/services"
	"github.com/athebyme/vendor-product-service/pkg/auth"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/go-chi/render"
)

const (
	msgProductCreated        = "Product created successfully."
	msgProductUpdated        = "Product updated successfully."
	msgProductDeleted        = "Product deleted successfully."
	msgChannelListingChanged = "Product channel listing status changed."
	msgNoProductsFound       = "No products found."
	msgUserNotFound          = "User not found or logged out."
	msgNoAccess              = "Product does not exist or you do not have access to it."
	msgInvalidBody           = "invalid request body"
)

// ProductHandler обработчик запросов для продуктов продавца
type ProductHandler struct {
	productService services.ProductServiceInterface
	logger         interfaces.LoggerPort
}

// NewProductHandler создает новый обработчик продуктов
func NewProductHandler(productService services.ProductServiceInterface, logger interfaces.LoggerPort) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Message        string   `json:"message"`
	Success        string   `json:"success"`
	CompletedSteps []string `json:"completed_steps,omitempty"`
}

// messageResponse тело успешного ответа без данных
type messageResponse struct {
	Message string `json:"message"`
	Success string `json:"success"`
}

type createResponse struct {
	Message   string          `json:"message"`
	Success   string          `json:"success"`
	ProductID string          `json:"product_id"`
	Product   json.RawMessage `json:"product"`
}

type listResponse struct {
	Message    string            `json:"message,omitempty"`
	Success    string            `json:"success"`
	PageNumber int               `json:"page_number"`
	TotalPages int               `json:"total_pages"`
	Data       []json.RawMessage `json:"data"`
}

// CreateProduct создает продукт в каталоге и закрепляет его за продавцом
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Catalog user token"
// @Param request body models.CreateProductRequest true "Catalog mutation and variables with input.selling_price"
// @Success 200 {object} createResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadBody(w, r, err)
		return
	}

	result, err := h.productService.CreateProduct(r.Context(), auth.CredentialFromContext(r.Context()), &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, createResponse{
		Message:   msgProductCreated,
		Success:   "true",
		ProductID: result.ProductID,
		Product:   result.Product,
	})
}

// EditProduct передает мутацию изменения в каталог и синхронизирует каналы продаж
// @Summary Edit product
// @Tags products
// @Accept json
// @Produce json
// @Param request body models.EditProductRequest true "Catalog mutation and variables"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errorResponse
// @Router /api/v1/products/edit [post]
func (h *ProductHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	var req models.EditProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadBody(w, r, err)
		return
	}

	result, err := h.productService.EditProduct(r.Context(), &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	body := make(map[string]interface{}, len(result.Response)+2)
	for k, v := range result.Response {
		body[k] = v
	}
	body["success"] = "true"
	body["message"] = msgProductUpdated

	render.Status(r, http.StatusOK)
	render.JSON(w, r, body)
}

// DeleteProduct удаляет продукт продавца
// @Summary Delete product
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Catalog user token"
// @Param request body models.ProductRequest true "Product id"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /api/v1/products [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadBody(w, r, err)
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), auth.CredentialFromContext(r.Context()), req.ProductID); err != nil {
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, messageResponse{Message: msgProductDeleted, Success: "true"})
}

// UnpublishProduct снимает продукт продавца с публикации в канале
// @Summary Unpublish product
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Catalog user token"
// @Param request body models.ProductRequest true "Product id"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /api/v1/products/unpublish [post]
func (h *ProductHandler) UnpublishProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondBadBody(w, r, err)
		return
	}

	if err := h.productService.UnpublishProduct(r.Context(), auth.CredentialFromContext(r.Context()), req.ProductID); err != nil {
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, messageResponse{Message: msgChannelListingChanged, Success: "true"})
}

// ListProducts возвращает страницу продуктов продавца
// @Summary List vendor products
// @Tags products
// @Produce json
// @Param Authorization header string true "Catalog user token"
// @Param page_number query int false "Page number, starts at 1"
// @Param isPublished query bool false "Publication filter, defaults to true"
// @Success 200 {object} listResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := models.ListProductsQuery{
		PageNumber:  r.URL.Query().Get("page_number"),
		IsPublished: r.URL.Query().Get("isPublished"),
	}

	page, err := h.productService.ListProducts(r.Context(), auth.CredentialFromContext(r.Context()), query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := listResponse{
		Success:    "true",
		PageNumber: page.PageNumber,
		TotalPages: page.TotalPages,
		Data:       page.Data,
	}
	if len(page.Data) == 0 {
		resp.Message = msgNoProductsFound
		resp.Data = []json.RawMessage{}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(v)
}

func (h *ProductHandler) respondBadBody(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnWithContext(r.Context(), "Некорректное тело запроса",
		interfaces.LogField{Key: "path", Value: r.URL.Path},
		interfaces.LogField{Key: "error", Value: err.Error()})

	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Message: msgInvalidBody, Success: "false"})
}

// respondError переводит ошибку сценария в HTTP-ответ
func (h *ProductHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorToResponse(err)

	h.logger.WarnWithContext(r.Context(), "Запрос завершился ошибкой",
		interfaces.LogField{Key: "path", Value: r.URL.Path},
		interfaces.LogField{Key: "status", Value: status},
		interfaces.LogField{Key: "error", Value: err.Error()})

	render.Status(r, status)
	render.JSON(w, r, resp)
}

func errorToResponse(err error) (int, errorResponse) {
	resp := errorResponse{Message: err.Error(), Success: "false"}

	var partial *services.PartialCompletionError
	if errors.As(err, &partial) {
		resp.CompletedSteps = make([]string, len(partial.Completed))
		for i, step := range partial.Completed {
			resp.CompletedSteps[i] = string(step)
		}
	}

	var badRequest *services.BadRequestError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		resp.Message = msgUserNotFound
		return http.StatusForbidden, resp
	case errors.Is(err, services.ErrNotFoundOrForbidden):
		resp.Message = msgNoAccess
		return http.StatusBadRequest, resp
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, resp
	}

	if step, ok := services.FailedOperation(err); ok && step == services.StepCreateProduct {
		return http.StatusInternalServerError, resp
	}
	return http.StatusBadRequest, resp
}
