package config

import (
	"github.com/athebyme/vendor-product-service/pkg/auth"
)

// KeycloakConfig конфигурация Keycloak как альтернативного источника личности продавца
type KeycloakConfig struct {
	ServerURL   string `mapstructure:"server_url"`
	Realm       string `mapstructure:"realm"`
	ClientID    string `mapstructure:"client_id"`
	VendorClaim string `mapstructure:"vendor_claim"` // sub или vendor_id
}

// GetKeycloakConfig возвращает конфигурацию для auth.KeycloakClient
func (k *KeycloakConfig) GetKeycloakConfig() auth.KeycloakConfig {
	return auth.KeycloakConfig{
		ServerURL:   k.ServerURL,
		Realm:       k.Realm,
		ClientID:    k.ClientID,
		VendorClaim: k.VendorClaim,
	}
}
