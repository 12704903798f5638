package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingConfig = "vendor-product-service-missing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CATALOG_URL", "https://catalog.example.com/graphql/")
	t.Setenv("CATALOG_CHANNEL_ID", "Q2hhbm5lbDox")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(missingConfig)

	require.NoError(t, err)
	assert.Equal(t, "vendor-product-service", cfg.AppName)
	assert.Equal(t, "development", cfg.ENV)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Products.PageSize)
	assert.Equal(t, IdentityProviderCatalog, cfg.Identity.Provider)
	assert.Equal(t, 5*time.Minute, cfg.Identity.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "default-channel", cfg.Catalog.ChannelSlug)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "sub", cfg.Keycloak.VendorClaim)
}

func TestLoad_Environment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PRODUCTS_PAGE_SIZE", "25")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("CATALOG_APP_TOKEN", "app-token")
	t.Setenv("CATALOG_TIMEOUT", "5s")
	t.Setenv("IDENTITY_CACHE_TTL", "1m")
	t.Setenv("APP_ENV", "production")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_TOPIC", "products.lifecycle")

	cfg, err := Load(missingConfig)

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Products.PageSize)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "app-token", cfg.Catalog.AppToken)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, time.Minute, cfg.Identity.CacheTTL)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, "products.lifecycle", cfg.Kafka.Topic)
}

func TestLoad_MissingCatalogURL(t *testing.T) {
	t.Setenv("CATALOG_URL", "")
	t.Setenv("CATALOG_CHANNEL_ID", "Q2hhbm5lbDox")

	_, err := Load(missingConfig)

	assert.ErrorContains(t, err, "catalog.url")
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.Products.PageSize = 10
	cfg.Catalog.URL = "https://catalog.example.com/graphql/"
	cfg.Catalog.ChannelID = "Q2hhbm5lbDox"
	cfg.Storage.Driver = StorageDriverMemory
	cfg.Identity.Provider = IdentityProviderCatalog
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero page size", func(c *Config) { c.Products.PageSize = 0 }, "products.pageSize"},
		{"negative page size", func(c *Config) { c.Products.PageSize = -1 }, "products.pageSize"},
		{"empty channel", func(c *Config) { c.Catalog.ChannelID = " " }, "catalog.channelID"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }, "storage.driver"},
		{"unknown provider", func(c *Config) { c.Identity.Provider = "ldap" }, "identity.provider"},
		{"keycloak without realm", func(c *Config) {
			c.Identity.Provider = IdentityProviderKeycloak
			c.Keycloak.ServerURL = "https://sso.example.com"
		}, "keycloak"},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true }, "kafka.brokers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestKeycloakConfig_GetKeycloakConfig(t *testing.T) {
	k := KeycloakConfig{ServerURL: "https://sso", Realm: "vendors", ClientID: "api", VendorClaim: "vendor_id"}

	got := k.GetKeycloakConfig()

	assert.Equal(t, "https://sso", got.ServerURL)
	assert.Equal(t, "vendors", got.Realm)
	assert.Equal(t, "vendor_id", got.VendorClaim)
}
