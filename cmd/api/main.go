package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/athebyme/vendor-product-service/config"
	_ "github.com/athebyme/vendor-product-service/docs"
	"github.com/athebyme/vendor-product-service/internal/adapters/cache"
	"github.com/athebyme/vendor-product-service/internal/adapters/catalog"
	"github.com/athebyme/vendor-product-service/internal/adapters/logger"
	"github.com/athebyme/vendor-product-service/internal/adapters/messaging"
	"github.com/athebyme/vendor-product-service/internal/adapters/storage"
	"github.com/athebyme/vendor-product-service/internal/api"
	"github.com/athebyme/vendor-product-service/internal/domain/services"
	"github.com/athebyme/vendor-product-service/internal/security"
	"github.com/athebyme/vendor-product-service/internal/utils"
	"github.com/athebyme/vendor-product-service/pkg/auth"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
)

// ownershipStorage хранилище принадлежности вместе с проверкой доступности
type ownershipStorage interface {
	services.OwnershipStore
	interfaces.StoragePort
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Инициализация сервиса",
		interfaces.LogField{Key: "app_name", Value: cfg.AppName},
		interfaces.LogField{Key: "version", Value: cfg.Version},
		interfaces.LogField{Key: "env", Value: cfg.ENV},
	)

	db, err := newOwnershipStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Ошибка инициализации хранилища", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Хранилище инициализировано", interfaces.LogField{Key: "driver", Value: cfg.Storage.Driver})

	cacheClient, err := newCache(ctx, cfg)
	if err != nil {
		log.Fatal("Ошибка инициализации кэша", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Кэш инициализирован", interfaces.LogField{Key: "redis", Value: cfg.Redis.Enabled})

	catalogClient, err := catalog.NewClient(catalog.Config{
		URL:               cfg.Catalog.URL,
		AppToken:          cfg.Catalog.AppToken,
		Timeout:           cfg.Catalog.Timeout,
		ChannelID:         cfg.Catalog.ChannelID,
		ChannelSlug:       cfg.Catalog.ChannelSlug,
		DigitalContentURL: cfg.Catalog.DigitalContentURL,
	}, log)
	if err != nil {
		log.Fatal("Ошибка инициализации клиента каталога", interfaces.LogField{Key: "error", Value: err.Error()})
	}

	identity, err := newIdentityResolver(ctx, cfg, catalogClient, cacheClient, log)
	if err != nil {
		log.Fatal("Ошибка инициализации проверки личности", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Проверка личности настроена", interfaces.LogField{Key: "provider", Value: cfg.Identity.Provider})

	messagingClient, err := newMessaging(cfg, log)
	if err != nil {
		log.Fatal("Ошибка инициализации системы обмена сообщениями", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Система обмена сообщениями инициализирована", interfaces.LogField{Key: "kafka", Value: cfg.Kafka.Enabled})

	productService, err := services.NewProductService(
		identity,
		db,
		catalogClient,
		messaging.NewEventPublisher(messagingClient, cfg.Kafka.Topic),
		log,
		services.Options{
			PageSize:  cfg.Products.PageSize,
			ChannelID: cfg.Catalog.ChannelID,
		},
	)
	if err != nil {
		log.Fatal("Ошибка инициализации сервиса продуктов", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	log.Info("Сервис продуктов инициализирован")

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Endpoint
	}
	router := api.SetupRouter(productService, db, log, api.RouterOptions{
		CORSAllowedOrigins: cfg.Security.CORSAllowOrigins,
		RequestTimeout:     cfg.Server.RequestTimeout,
		MetricsPath:        metricsPath,
	})
	log.Info("Маршрутизатор настроен")

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Сервер запущен", interfaces.LogField{Key: "address", Value: server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", interfaces.LogField{Key: "error", Value: err.Error()})
		}
	}()

	go func() {
		<-quit
		log.Info("Получен сигнал завершения, выполняется graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Ошибка при graceful shutdown", interfaces.LogField{Key: "error", Value: err.Error()})
		}
		log.Info("HTTP сервер остановлен")

		log.Info("Закрытие соединений с зависимостями...")

		if err := messagingClient.Close(); err != nil {
			log.Error("Ошибка при закрытии Kafka", interfaces.LogField{Key: "error", Value: err.Error()})
		}

		if err := cacheClient.Close(); err != nil {
			log.Error("Ошибка при закрытии кэша", interfaces.LogField{Key: "error", Value: err.Error()})
		}

		if err := db.Close(); err != nil {
			log.Error("Ошибка при закрытии БД", interfaces.LogField{Key: "error", Value: err.Error()})
		}

		close(done)
	}()

	<-done
	log.Info("Сервер корректно завершил работу")
}

func newOwnershipStorage(ctx context.Context, cfg *config.Config, log interfaces.LoggerPort) (ownershipStorage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Используется хранилище в памяти, данные не сохраняются между перезапусками")
		return storage.NewMemoryStorage(), nil
	}

	conn, err := utils.GenerateConnectionString(
		cfg.Postgres.Host,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
		cfg.Postgres.Port,
		cfg.Postgres.PoolSize,
		cfg.Postgres.Timeout,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres settings: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := storage.NewPostgresStorage(connectCtx, conn, log)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(connectCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return db, nil
}

func newCache(ctx context.Context, cfg *config.Config) (interfaces.CachePort, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(cfg.Identity.CacheTTL, 10*time.Minute), nil
	}

	return cache.NewRedisCache(ctx, cache.RedisOptions{
		Host:              cfg.Redis.Host,
		Port:              cfg.Redis.Port,
		Password:          cfg.Redis.Password,
		DB:                cfg.Redis.DB,
		PoolSize:          cfg.Redis.PoolSize,
		MinIdleConns:      cfg.Redis.MinIdleConns,
		DialTimeout:       cfg.Redis.ConnectTimeout,
		ReadTimeout:       cfg.Redis.ReadTimeout,
		WriteTimeout:      cfg.Redis.WriteTimeout,
		MaxRetries:        cfg.Redis.MaxRetries,
		DefaultExpiration: cfg.Redis.DefaultExpiration,
		KeyPrefix:         cfg.Redis.KeyPrefix,
	})
}

func newIdentityResolver(
	ctx context.Context,
	cfg *config.Config,
	catalogClient *catalog.Client,
	cacheClient interfaces.CachePort,
	log interfaces.LoggerPort,
) (interfaces.IdentityResolver, error) {
	if cfg.Identity.Provider == config.IdentityProviderKeycloak {
		return auth.NewKeycloakClient(ctx, cfg.Keycloak.GetKeycloakConfig(), log)
	}
	return security.NewCatalogIdentityResolver(catalogClient, cacheClient, cfg.Identity.CacheTTL, log), nil
}

func newMessaging(cfg *config.Config, log interfaces.LoggerPort) (interfaces.MessagingPort, error) {
	if !cfg.Kafka.Enabled {
		return messaging.NopMessaging{}, nil
	}

	return messaging.NewKafkaMessaging(messaging.KafkaOptions{
		Brokers:         strings.Join(cfg.Kafka.Brokers, ","),
		ClientID:        cfg.Kafka.ClientID,
		CompressionType: cfg.Kafka.CompressionType,
	}, log)
}
