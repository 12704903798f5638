package interfaces

import (
	"context"
)

// IdentityResolver сопоставляет учетные данные запроса с идентификатором продавца
type IdentityResolver interface {
	// ResolveVendor возвращает идентификатор продавца для учетных данных.
	// Пустая строка без ошибки означает, что пользователь не найден или вышел из системы.
	// Ошибка возвращается только при сбое самого механизма проверки.
	ResolveVendor(ctx context.Context, credential string) (string, error)
}
