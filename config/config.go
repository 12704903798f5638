package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	IdentityProviderCatalog  = "catalog"
	IdentityProviderKeycloak = "keycloak"
)

// Config содержит все настройки сервиса
type Config struct {
	AppName  string
	Version  string
	LogLevel string
	ENV      string

	Server struct {
		Host            string
		Port            int
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		RequestTimeout  time.Duration
	}

	Storage struct {
		Driver string // postgres или memory
	}

	Postgres struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
		Timeout  time.Duration
		PoolSize int // размер пула соединений
	}

	Redis struct {
		Enabled           bool
		Host              string
		Port              int
		Password          string
		DB                int
		PoolSize          int           // размер пула соединений
		MinIdleConns      int           // минимальное количество неактивных соединений
		ConnectTimeout    time.Duration // таймаут соединения
		ReadTimeout       time.Duration // таймаут чтения
		WriteTimeout      time.Duration // таймаут записи
		MaxRetries        int           // максимальное количество повторных попыток
		DefaultExpiration time.Duration // срок действия кэша по умолчанию
		KeyPrefix         string
	}

	Kafka struct {
		Enabled         bool
		Brokers         []string
		Topic           string
		ClientID        string
		CompressionType string
	}

	Metrics struct {
		Enabled  bool
		Endpoint string
	}

	Security struct {
		CORSAllowOrigins []string
	}

	Catalog struct {
		URL               string
		AppToken          string
		Timeout           time.Duration
		ChannelID         string
		ChannelSlug       string
		DigitalContentURL string
	}

	Products struct {
		PageSize int // размер страницы списка, он же first в запросе к каталогу
	}

	Identity struct {
		Provider string // catalog или keycloak
		CacheTTL time.Duration
	}

	Keycloak KeycloakConfig
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	configFile := "config"
	if configPath != "" {
		configFile = configPath
	}

	var cfg Config

	v := viper.New()
	v.SetConfigName(configFile)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("../../config")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Чтение конфигурационного файла
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// файла нет, используются только значения по умолчанию и переменные окружения
	}

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ENV == "" {
		cfg.ENV = "development"
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Identity.Provider = strings.ToLower(strings.TrimSpace(cfg.Identity.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction сообщает, запущен ли сервис в боевом окружении
func (c *Config) IsProduction() bool {
	return c.ENV == "production"
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Products.PageSize <= 0 {
		return fmt.Errorf("products.pageSize must be positive, got %d", c.Products.PageSize)
	}
	if strings.TrimSpace(c.Catalog.URL) == "" {
		return errors.New("catalog.url is required")
	}
	if strings.TrimSpace(c.Catalog.ChannelID) == "" {
		return errors.New("catalog.channelID is required")
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	switch c.Identity.Provider {
	case IdentityProviderCatalog:
	case IdentityProviderKeycloak:
		if c.Keycloak.ServerURL == "" || c.Keycloak.Realm == "" {
			return errors.New("keycloak.server_url and keycloak.realm are required for keycloak identity provider")
		}
	default:
		return fmt.Errorf("unknown identity.provider %q", c.Identity.Provider)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers is required when kafka is enabled")
	}

	return nil
}

// setDefaults устанавливает значения по умолчанию
func setDefaults(v *viper.Viper) {
	// Основные настройки
	v.SetDefault("appName", "vendor-product-service")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("logLevel", "info")
	v.SetDefault("env", "development")

	// Настройки сервера
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "90s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("server.requestTimeout", "60s")

	v.SetDefault("storage.driver", StorageDriverPostgres)

	// Настройки Postgres
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.dbname", "postgres")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timeout", "5s")
	v.SetDefault("postgres.poolSize", 10)

	// Настройки Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.minIdleConns", 2)
	v.SetDefault("redis.connectTimeout", "1s")
	v.SetDefault("redis.readTimeout", "1s")
	v.SetDefault("redis.writeTimeout", "1s")
	v.SetDefault("redis.maxRetries", 3)
	v.SetDefault("redis.defaultExpiration", "5m")
	v.SetDefault("redis.keyPrefix", "vendor-products:")

	// Настройки Kafka
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "vendor-products")
	v.SetDefault("kafka.clientID", "vendor-product-service")
	v.SetDefault("kafka.compressionType", "snappy")

	// Настройки метрик
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.endpoint", "/metrics")

	v.SetDefault("security.corsAllowOrigins", []string{"*"})

	// Настройки каталога
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.appToken", "")
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.channelID", "")
	v.SetDefault("catalog.channelSlug", "default-channel")
	v.SetDefault("catalog.digitalContentURL", "")

	v.SetDefault("products.pageSize", 10)

	v.SetDefault("identity.provider", IdentityProviderCatalog)
	v.SetDefault("identity.cacheTTL", "5m")

	// Настройки Keycloak
	v.SetDefault("keycloak.server_url", "")
	v.SetDefault("keycloak.realm", "")
	v.SetDefault("keycloak.client_id", "vendor-product-service")
	v.SetDefault("keycloak.vendor_claim", "sub")
}

// bindEnvVariables привязывает переменные окружения к конфигурации
func bindEnvVariables(v *viper.Viper) {
	bindings := map[string]string{
		// Основные настройки
		"appName":  "APP_NAME",
		"version":  "APP_VERSION",
		"logLevel": "LOG_LEVEL",
		"env":      "APP_ENV",

		// Настройки сервера
		"server.host":            "SERVER_HOST",
		"server.port":            "SERVER_PORT",
		"server.readTimeout":     "SERVER_READ_TIMEOUT",
		"server.writeTimeout":    "SERVER_WRITE_TIMEOUT",
		"server.shutdownTimeout": "SERVER_SHUTDOWN_TIMEOUT",
		"server.requestTimeout":  "SERVER_REQUEST_TIMEOUT",

		"storage.driver": "STORAGE_DRIVER",

		// Настройки Postgres
		"postgres.host":     "POSTGRES_HOST",
		"postgres.port":     "POSTGRES_PORT",
		"postgres.user":     "POSTGRES_USER",
		"postgres.password": "POSTGRES_PASSWORD",
		"postgres.dbname":   "POSTGRES_DBNAME",
		"postgres.sslmode":  "POSTGRES_SSLMODE",
		"postgres.timeout":  "POSTGRES_TIMEOUT",
		"postgres.poolSize": "POSTGRES_POOL_SIZE",

		// Настройки Redis
		"redis.enabled":           "REDIS_ENABLED",
		"redis.host":              "REDIS_HOST",
		"redis.port":              "REDIS_PORT",
		"redis.password":          "REDIS_PASSWORD",
		"redis.db":                "REDIS_DB",
		"redis.poolSize":          "REDIS_POOL_SIZE",
		"redis.minIdleConns":      "REDIS_MIN_IDLE_CONNS",
		"redis.connectTimeout":    "REDIS_CONNECT_TIMEOUT",
		"redis.readTimeout":       "REDIS_READ_TIMEOUT",
		"redis.writeTimeout":      "REDIS_WRITE_TIMEOUT",
		"redis.maxRetries":        "REDIS_MAX_RETRIES",
		"redis.defaultExpiration": "REDIS_DEFAULT_EXPIRATION",
		"redis.keyPrefix":         "REDIS_KEY_PREFIX",

		// Настройки Kafka
		"kafka.enabled":         "KAFKA_ENABLED",
		"kafka.brokers":         "KAFKA_BROKERS",
		"kafka.topic":           "KAFKA_TOPIC",
		"kafka.clientID":        "KAFKA_CLIENT_ID",
		"kafka.compressionType": "KAFKA_COMPRESSION_TYPE",

		// Настройки метрик
		"metrics.enabled":  "METRICS_ENABLED",
		"metrics.endpoint": "METRICS_ENDPOINT",

		"security.corsAllowOrigins": "CORS_ALLOW_ORIGINS",

		// Настройки каталога
		"catalog.url":               "CATALOG_URL",
		"catalog.appToken":          "CATALOG_APP_TOKEN",
		"catalog.timeout":           "CATALOG_TIMEOUT",
		"catalog.channelID":         "CATALOG_CHANNEL_ID",
		"catalog.channelSlug":       "CATALOG_CHANNEL_SLUG",
		"catalog.digitalContentURL": "CATALOG_DIGITAL_CONTENT_URL",

		"products.pageSize": "PRODUCTS_PAGE_SIZE",

		"identity.provider": "IDENTITY_PROVIDER",
		"identity.cacheTTL": "IDENTITY_CACHE_TTL",

		// Настройки Keycloak
		"keycloak.server_url":   "KEYCLOAK_SERVER_URL",
		"keycloak.realm":        "KEYCLOAK_REALM",
		"keycloak.client_id":    "KEYCLOAK_CLIENT_ID",
		"keycloak.vendor_claim": "KEYCLOAK_VENDOR_CLAIM",
	}

	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}
