package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/athebyme/vendor-product-service/pkg/auth"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/athebyme/vendor-product-service/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	workflowCreate    = "create"
	workflowEdit      = "edit"
	workflowDelete    = "delete"
	workflowUnpublish = "unpublish"
	workflowList      = "list"
)

// ProductServiceInterface сценарии жизненного цикла продукта
type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, credential string, req *models.CreateProductRequest) (*models.CreateProductResult, error)
	EditProduct(ctx context.Context, req *models.EditProductRequest) (*models.EditProductResult, error)
	DeleteProduct(ctx context.Context, credential, productID string) error
	UnpublishProduct(ctx context.Context, credential, productID string) error
	ListProducts(ctx context.Context, credential string, query models.ListProductsQuery) (*models.ProductPage, error)
}

// Options параметры сервиса, общие для всех запросов
type Options struct {
	// PageSize размер страницы списка, он же передается каталогу
	PageSize int
	// ChannelID канал продаж, в котором снимается публикация
	ChannelID string
}

// ProductService согласует вызовы каталога с локальным учетом принадлежности продуктов
type ProductService struct {
	identity interfaces.IdentityResolver
	store    OwnershipStore
	catalog  Catalog
	events   EventPublisher
	logger   interfaces.LoggerPort
	tracer   trace.Tracer
	opts     Options
}

var _ ProductServiceInterface = (*ProductService)(nil)

// NewProductService создает новый экземпляр ProductService
func NewProductService(
	identity interfaces.IdentityResolver,
	store OwnershipStore,
	catalog Catalog,
	events EventPublisher,
	logger interfaces.LoggerPort,
	opts Options,
) (*ProductService, error) {
	if opts.PageSize < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", opts.PageSize)
	}
	if opts.ChannelID == "" {
		return nil, errors.New("channel id is required")
	}

	return &ProductService{
		identity: identity,
		store:    store,
		catalog:  catalog,
		events:   events,
		logger:   logger,
		tracer:   otel.Tracer("vendor-product-service/services"),
		opts:     opts,
	}, nil
}

// progress запоминает выполненные шаги сценария
type progress struct {
	workflow  string
	completed []Step
}

func (p *progress) done(step Step) {
	p.completed = append(p.completed, step)
}

// fail оборачивает ошибку в PartialCompletionError, если до сбоя уже были побочные эффекты
func (p *progress) fail(step Step, err error) error {
	if len(p.completed) == 0 {
		return err
	}
	return &PartialCompletionError{
		Workflow:  p.workflow,
		Failed:    step,
		Completed: append([]Step(nil), p.completed...),
		Err:       err,
	}
}

func (s *ProductService) start(ctx context.Context, workflow string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "products."+workflow, trace.WithAttributes(attrs...))
}

// finish фиксирует результат сценария в метриках, трассировке и логе
func (s *ProductService) finish(ctx context.Context, span trace.Span, workflow string, err error) {
	defer span.End()

	result := outcome(err)
	workflowsTotal.WithLabelValues(workflow, result).Inc()

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	fields := []interface{}{
		interfaces.LogField{Key: "workflow", Value: workflow},
		interfaces.LogField{Key: "outcome", Value: result},
		interfaces.LogField{Key: "error", Value: err.Error()},
	}
	var partial *PartialCompletionError
	if errors.As(err, &partial) {
		fields = append(fields,
			interfaces.LogField{Key: "failed_step", Value: string(partial.Failed)},
			interfaces.LogField{Key: "completed_steps", Value: partial.Completed})
	}

	switch result {
	case "upstream_error", "partial_completion", "error":
		s.logger.ErrorWithContext(ctx, "Сценарий завершился ошибкой", fields...)
	default:
		s.logger.InfoWithContext(ctx, "Сценарий отклонен", fields...)
	}
}

// resolveVendor определяет продавца и добавляет его в контекст
func (s *ProductService) resolveVendor(ctx context.Context, credential string) (context.Context, string, error) {
	vendorID, err := s.identity.ResolveVendor(ctx, credential)
	if err != nil {
		return ctx, "", &UpstreamError{Operation: StepResolveIdentity, Err: err}
	}
	if vendorID == "" {
		return ctx, "", ErrUnauthorized
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("vendor.id", vendorID))
	return auth.WithVendorID(ctx, vendorID), vendorID, nil
}

// publish отправляет событие. Ошибка публикации не влияет на результат сценария
func (s *ProductService) publish(ctx context.Context, event *models.ProductEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnWithContext(ctx, "Не удалось опубликовать событие",
			interfaces.LogField{Key: "event_type", Value: event.Type},
			interfaces.LogField{Key: "product_id", Value: event.ProductID},
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
}

// CreateProduct создает продукт в каталоге, закрепляет его за продавцом,
// затем создает вариант, назначает цену и цифровой контент
func (s *ProductService) CreateProduct(ctx context.Context, credential string, req *models.CreateProductRequest) (result *models.CreateProductResult, err error) {
	ctx, span := s.start(ctx, workflowCreate)
	defer func() { s.finish(ctx, span, workflowCreate, err) }()

	ctx, vendorID, err := s.resolveVendor(ctx, credential)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Query) == "" {
		return nil, &BadRequestError{Field: "query", Reason: models.ErrMissingQuery.Error()}
	}
	variables, price, err := req.SplitSellingPrice()
	if err != nil {
		return nil, &BadRequestError{Field: "selling_price", Reason: err.Error()}
	}

	p := &progress{workflow: workflowCreate}

	raw, err := s.catalog.CreateProduct(ctx, req.Query, variables)
	if err != nil {
		return nil, &UpstreamError{Operation: StepCreateProduct, Err: err}
	}
	created, err := models.ParseCreatedProduct(raw)
	if err != nil {
		return nil, &UpstreamError{Operation: StepCreateProduct, Err: err}
	}
	p.done(StepCreateProduct)
	span.SetAttributes(attribute.String("product.id", created.ProductID))

	if err := s.store.EnsureVendor(ctx, vendorID); err != nil {
		return nil, p.fail(StepRecordOwnership, fmt.Errorf("failed to ensure vendor: %w", err))
	}
	record := &models.OwnershipRecord{ProductID: created.ProductID, VendorID: vendorID}
	if err := s.store.Insert(ctx, record); err != nil {
		return nil, p.fail(StepRecordOwnership, fmt.Errorf("failed to save ownership record: %w", err))
	}
	p.done(StepRecordOwnership)
	s.logger.InfoWithContext(ctx, "Продукт закреплен за продавцом",
		interfaces.LogField{Key: "product_id", Value: created.ProductID})

	if err := s.catalog.AddChannelListing(ctx, created.ProductID, created.Raw); err != nil {
		return nil, p.fail(StepAddChannelListing, &UpstreamError{Operation: StepAddChannelListing, Err: err})
	}
	p.done(StepAddChannelListing)

	rawVariant, err := s.catalog.CreateVariant(ctx, created.ProductID)
	if err != nil {
		return nil, p.fail(StepCreateVariant, &UpstreamError{Operation: StepCreateVariant, Err: err})
	}
	variantID, err := models.ParseCreatedVariant(rawVariant)
	if err != nil {
		return nil, p.fail(StepCreateVariant, &UpstreamError{Operation: StepCreateVariant, Err: err})
	}
	p.done(StepCreateVariant)

	if err := s.catalog.SetVariantPricing(ctx, variantID, price); err != nil {
		return nil, p.fail(StepSetVariantPricing, &UpstreamError{Operation: StepSetVariantPricing, Err: err})
	}
	p.done(StepSetVariantPricing)

	if err := s.catalog.AttachDigitalContent(ctx, variantID); err != nil {
		return nil, p.fail(StepAttachDigitalContent, &UpstreamError{Operation: StepAttachDigitalContent, Err: err})
	}

	s.publish(ctx, models.NewProductEvent(models.ProductCreatedEvent, created.ProductID, vendorID))

	return &models.CreateProductResult{ProductID: created.ProductID, Product: created.Raw}, nil
}

// EditProduct применяет изменение продукта и переносит его на канал продаж и варианты.
// Принадлежность продукта продавцу здесь не проверяется.
func (s *ProductService) EditProduct(ctx context.Context, req *models.EditProductRequest) (result *models.EditProductResult, err error) {
	ctx, span := s.start(ctx, workflowEdit)
	defer func() { s.finish(ctx, span, workflowEdit, err) }()

	if strings.TrimSpace(req.Query) == "" {
		return nil, &BadRequestError{Field: "query", Reason: models.ErrMissingQuery.Error()}
	}

	p := &progress{workflow: workflowEdit}

	raw, err := s.catalog.UpdateProduct(ctx, req.Query, req.Variables)
	if err != nil {
		return nil, &UpstreamError{Operation: StepUpdateProduct, Err: err}
	}
	p.done(StepUpdateProduct)

	updated, err := models.ParseUpdatedProduct(raw)
	if err != nil {
		return nil, p.fail(StepUpdateProduct, &UpstreamError{Operation: StepUpdateProduct, Err: err})
	}
	span.SetAttributes(attribute.String("product.id", updated.ProductID))

	rawListing, err := s.catalog.UpdateChannelListing(ctx, updated.ProductID, updated.ChannelListing)
	if err != nil {
		return nil, p.fail(StepUpdateChannelListing, &UpstreamError{Operation: StepUpdateChannelListing, Err: err})
	}
	p.done(StepUpdateChannelListing)

	product, err := models.ParseChannelListingUpdate(rawListing)
	if err != nil {
		return nil, p.fail(StepUpdateChannelListing, &UpstreamError{Operation: StepUpdateChannelListing, Err: err})
	}

	if err := s.catalog.UpdateVariantChannelListing(ctx, product); err != nil {
		return nil, p.fail(StepUpdateVariantChannelListing, &UpstreamError{Operation: StepUpdateVariantChannelListing, Err: err})
	}

	s.publish(ctx, models.NewProductEvent(models.ProductUpdatedEvent, updated.ProductID, ""))

	return &models.EditProductResult{Response: updated.Fields}, nil
}

// checkOwnership возвращает ErrNotFoundOrForbidden, если продукт не принадлежит продавцу
func (s *ProductService) checkOwnership(ctx context.Context, productID, vendorID string) error {
	record, err := s.store.Find(ctx, productID, vendorID)
	if err != nil {
		return fmt.Errorf("failed to find ownership record: %w", err)
	}
	if record == nil {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// DeleteProduct удаляет продукт из каталога, затем локальную запись о принадлежности.
// Если каталог не подтвердил удаление, запись сохраняется, а сценарий считается успешным.
func (s *ProductService) DeleteProduct(ctx context.Context, credential, productID string) (err error) {
	ctx, span := s.start(ctx, workflowDelete, attribute.String("product.id", productID))
	defer func() { s.finish(ctx, span, workflowDelete, err) }()

	ctx, vendorID, err := s.resolveVendor(ctx, credential)
	if err != nil {
		return err
	}
	if strings.TrimSpace(productID) == "" {
		return &BadRequestError{Field: "product_id", Reason: "is required"}
	}

	if err := s.checkOwnership(ctx, productID, vendorID); err != nil {
		return err
	}

	// TODO: проверять отсутствие открытых заказов по продукту, когда появится доступ к заказам
	p := &progress{workflow: workflowDelete}

	deleted, err := s.catalog.DeleteProduct(ctx, productID)
	if err != nil {
		return &UpstreamError{Operation: StepDeleteProduct, Err: err}
	}
	if !deleted {
		s.logger.WarnWithContext(ctx, "Каталог не подтвердил удаление, запись о принадлежности сохранена",
			interfaces.LogField{Key: "product_id", Value: productID})
		return nil
	}
	p.done(StepDeleteProduct)

	if err := s.store.Delete(ctx, productID, vendorID); err != nil {
		return p.fail(StepDeleteOwnership, fmt.Errorf("failed to delete ownership record: %w", err))
	}

	s.publish(ctx, models.NewProductEvent(models.ProductDeletedEvent, productID, vendorID))

	return nil
}

// UnpublishProduct снимает продукт продавца с публикации в настроенном канале продаж
func (s *ProductService) UnpublishProduct(ctx context.Context, credential, productID string) (err error) {
	ctx, span := s.start(ctx, workflowUnpublish, attribute.String("product.id", productID))
	defer func() { s.finish(ctx, span, workflowUnpublish, err) }()

	ctx, vendorID, err := s.resolveVendor(ctx, credential)
	if err != nil {
		return err
	}
	if strings.TrimSpace(productID) == "" {
		return &BadRequestError{Field: "product_id", Reason: "is required"}
	}

	if err := s.checkOwnership(ctx, productID, vendorID); err != nil {
		return err
	}

	if err := s.catalog.SetPublishStatus(ctx, productID, s.opts.ChannelID, false); err != nil {
		return &UpstreamError{Operation: StepSetPublishStatus, Err: err}
	}

	s.publish(ctx, models.NewProductEvent(models.ProductUnpublishedEvent, productID, vendorID))

	return nil
}

// ListProducts возвращает страницу продуктов продавца, запрашивая их данные у каталога
func (s *ProductService) ListProducts(ctx context.Context, credential string, query models.ListProductsQuery) (page *models.ProductPage, err error) {
	ctx, span := s.start(ctx, workflowList)
	defer func() { s.finish(ctx, span, workflowList, err) }()

	ctx, vendorID, err := s.resolveVendor(ctx, credential)
	if err != nil {
		return nil, err
	}

	pageNumber, isPublished, err := parseListQuery(query)
	if err != nil {
		return nil, err
	}

	productIDs, err := s.store.ListProductIDs(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor products: %w", err)
	}

	ids, totalPages, effectivePage := utils.Paginate(productIDs, pageNumber, s.opts.PageSize)
	span.SetAttributes(
		attribute.Int("page.number", effectivePage),
		attribute.Int("page.total", totalPages))

	if len(ids) == 0 {
		return &models.ProductPage{PageNumber: effectivePage, TotalPages: totalPages, Data: []json.RawMessage{}}, nil
	}

	filter := models.ProductFilter{PageSize: s.opts.PageSize, IsPublished: isPublished}
	products, err := s.catalog.FetchProducts(ctx, ids, filter)
	if err != nil {
		return nil, &UpstreamError{Operation: StepFetchProducts, Err: err}
	}
	if products == nil {
		products = []json.RawMessage{}
	}

	return &models.ProductPage{PageNumber: effectivePage, TotalPages: totalPages, Data: products}, nil
}

// parseListQuery проверяет page_number (целое >= 1, по умолчанию 1) и isPublished (по умолчанию true)
func parseListQuery(query models.ListProductsQuery) (int, bool, error) {
	pageNumber := 1
	if raw := strings.TrimSpace(query.PageNumber); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false, &BadRequestError{Field: "page_number", Reason: "must be an integer"}
		}
		if n < 1 {
			return 0, false, &BadRequestError{Field: "page_number", Reason: "must be greater than or equal to 1"}
		}
		pageNumber = n
	}

	isPublished := true
	if raw := strings.TrimSpace(query.IsPublished); raw != "" {
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return 0, false, &BadRequestError{Field: "isPublished", Reason: "must be true or false"}
		}
		isPublished = b
	}

	return pageNumber, isPublished, nil
}
