package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized учетные данные не соответствуют ни одному продавцу
	ErrUnauthorized = errors.New("user not found or logged out")

	// ErrNotFoundOrForbidden продукта нет или он принадлежит другому продавцу.
	// Эти случаи намеренно не различаются.
	ErrNotFoundOrForbidden = errors.New("product does not exist or you do not have access to it")
)

// Step шаг сценария
type Step string

const (
	StepResolveIdentity             Step = "resolve_identity"
	StepCreateProduct               Step = "create_product"
	StepRecordOwnership             Step = "record_ownership"
	StepAddChannelListing           Step = "add_channel_listing"
	StepCreateVariant               Step = "create_variant"
	StepSetVariantPricing           Step = "set_variant_pricing"
	StepAttachDigitalContent        Step = "attach_digital_content"
	StepUpdateProduct               Step = "update_product"
	StepUpdateChannelListing        Step = "update_channel_listing"
	StepUpdateVariantChannelListing Step = "update_variant_channel_listing"
	StepDeleteProduct               Step = "delete_product"
	StepDeleteOwnership             Step = "delete_ownership"
	StepSetPublishStatus            Step = "set_publish_status"
	StepFetchProducts               Step = "fetch_products"
)

// BadRequestError некорректные входные данные
type BadRequestError struct {
	Field  string
	Reason string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamError сбой вызова каталога или неожиданный вид его ответа
type UpstreamError struct {
	Operation Step
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog %s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PartialCompletionError сценарий прерван после шагов с побочными эффектами.
// Выполненные шаги не откатываются.
type PartialCompletionError struct {
	Workflow  string
	Failed    Step
	Completed []Step
	Err       error
}

func (e *PartialCompletionError) Error() string {
	completed := make([]string, len(e.Completed))
	for i, step := range e.Completed {
		completed[i] = string(step)
	}
	return fmt.Sprintf("%s failed at %s after completing [%s]: %v",
		e.Workflow, e.Failed, strings.Join(completed, ", "), e.Err)
}

func (e *PartialCompletionError) Unwrap() error {
	return e.Err
}

// FailedOperation возвращает шаг каталога, на котором произошел сбой, если он есть
func FailedOperation(err error) (Step, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Operation, true
	}
	return "", false
}
