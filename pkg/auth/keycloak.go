package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/patrickmn/go-cache"
)

// KeycloakConfig конфигурация для Keycloak
type KeycloakConfig struct {
	ServerURL   string
	Realm       string
	ClientID    string
	VendorClaim string
}

// KeycloakClaims claims токена Keycloak, нужные для определения продавца
type KeycloakClaims struct {
	UserID   string `json:"sub"`
	Username string `json:"preferred_username"`
	Email    string `json:"email"`
	VendorID string `json:"vendor_id"`
}

// tokenVerifier проверяет подпись и срок действия токена
type tokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// KeycloakClient определяет продавца по токену, выпущенному Keycloak
type KeycloakClient struct {
	verifier    tokenVerifier
	tokenCache  *cache.Cache
	vendorClaim string
	logger      interfaces.LoggerPort
}

var _ interfaces.IdentityResolver = (*KeycloakClient)(nil)

// NewKeycloakClient создает новый клиент Keycloak
func NewKeycloakClient(ctx context.Context, cfg KeycloakConfig, logger interfaces.LoggerPort) (*KeycloakClient, error) {
	providerURL := fmt.Sprintf("%s/realms/%s", cfg.ServerURL, cfg.Realm)

	provider, err := oidc.NewProvider(ctx, providerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create oidc provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID:        cfg.ClientID,
		SkipIssuerCheck: true,
	})

	return newKeycloakClient(verifier, cfg.VendorClaim, logger), nil
}

func newKeycloakClient(verifier tokenVerifier, vendorClaim string, logger interfaces.LoggerPort) *KeycloakClient {
	return &KeycloakClient{
		verifier:    verifier,
		tokenCache:  cache.New(5*time.Minute, 10*time.Minute),
		vendorClaim: vendorClaim,
		logger:      logger,
	}
}

// ValidateToken проверяет JWT токен и возвращает claims
func (k *KeycloakClient) ValidateToken(ctx context.Context, tokenString string) (*KeycloakClaims, error) {
	if cachedClaims, found := k.tokenCache.Get(tokenString); found {
		return cachedClaims.(*KeycloakClaims), nil
	}

	idToken, err := k.verifier.Verify(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	var claims KeycloakClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to extract claims: %w", err)
	}

	expiresIn := time.Until(idToken.Expiry)
	if expiresIn > 0 {
		k.tokenCache.Set(tokenString, &claims, expiresIn)
	}

	return &claims, nil
}

// ResolveVendor реализует IdentityResolver.
// Недействительный токен означает отсутствие пользователя, а не ошибку.
func (k *KeycloakClient) ResolveVendor(ctx context.Context, credential string) (string, error) {
	token := NormalizeCredential(credential)
	if token == "" {
		return "", nil
	}

	claims, err := k.ValidateToken(ctx, token)
	if err != nil {
		k.logger.WarnWithContext(ctx, "Токен не прошел проверку",
			interfaces.LogField{Key: "error", Value: err.Error()})
		return "", nil
	}

	if k.vendorClaim == "vendor_id" && claims.VendorID != "" {
		return claims.VendorID, nil
	}
	return claims.UserID, nil
}
