package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	credentialKey contextKey = "credential"
	vendorIDKey   contextKey = "vendor_id"
)

// CredentialMiddleware сохраняет заголовок Authorization в контексте запроса как есть.
// Проверка учетных данных выполняется сервисом, а не здесь.
func CredentialMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := r.Header.Get("Authorization")
		ctx := context.WithValue(r.Context(), credentialKey, credential)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CredentialFromContext возвращает учетные данные, сохраненные CredentialMiddleware
func CredentialFromContext(ctx context.Context) string {
	credential, _ := ctx.Value(credentialKey).(string)
	return credential
}

// WithVendorID добавляет идентификатор продавца в контекст
func WithVendorID(ctx context.Context, vendorID string) context.Context {
	return context.WithValue(ctx, vendorIDKey, vendorID)
}

// VendorIDFromContext возвращает идентификатор продавца из контекста
func VendorIDFromContext(ctx context.Context) (string, bool) {
	vendorID, ok := ctx.Value(vendorIDKey).(string)
	return vendorID, ok && vendorID != ""
}

// NormalizeCredential убирает схему авторизации и пробелы из значения заголовка
func NormalizeCredential(credential string) string {
	credential = strings.TrimSpace(credential)
	for _, scheme := range []string{"Bearer ", "JWT "} {
		if len(credential) >= len(scheme) && strings.EqualFold(credential[:len(scheme)], scheme) {
			return strings.TrimSpace(credential[len(scheme):])
		}
	}
	return credential
}
