package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laza-storefront/config"
	"laza-storefront/internal/delivery/http/middleware"
	v1 "laza-storefront/internal/delivery/http/v1"
	"laza-storefront/internal/domain"
	"laza-storefront/internal/infrastructure/cache"
	"laza-storefront/internal/infrastructure/kafka"
	fsrepo "laza-storefront/internal/repository/firestore"
	"laza-storefront/internal/repository/memory"
	pgrepo "laza-storefront/internal/repository/postgres"
	"laza-storefront/internal/usecase"
	"laza-storefront/pkg/logger"
	"laza-storefront/pkg/storage"
	"laza-storefront/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const serviceName = "laza-storefront"

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.SessionSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- Catalog Gateway ---
	gateway, closeGateway := newCatalogGateway(rootCtx, cfg)
	defer closeGateway()

	catalogOpts := []usecase.CatalogOption{usecase.WithGatewayTimeout(cfg.GatewayTimeout)}

	// --- Catalog change fan-out (Kafka) ---
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		catalogOpts = append(catalogOpts, usecase.WithEventPublisher(producer, cfg.InstanceID))
	}

	catalogRepo := usecase.NewCatalogRepository(gateway, catalogOpts...)

	if _, err := catalogRepo.Refresh(rootCtx); err != nil {
		// The mirror stays empty until the next successful refresh.
		log.Error().Err(err).Msg("Initial catalog refresh failed")
	} else {
		log.Info().Int("items", catalogRepo.Mirror().Len()).Msg("Catalog mirror loaded")
	}

	var consumer *kafka.Consumer
	if producer != nil {
		consumer = kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, "storefront-"+cfg.InstanceID)
		go func() {
			if err := consumer.Consume(rootCtx, kafka.CatalogEventHandler(catalogRepo)); err != nil && rootCtx.Err() == nil {
				log.Error().Err(err).Msg("Catalog event consumer stopped")
			}
		}()
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("Catalog fan-out enabled")
	}

	// --- Sessions (In-Memory) ---
	sessionStore := cache.NewMemoryCache("session", cfg.SessionTTL, cfg.SessionCleanupInterval)
	sessionUC := usecase.NewSessionUsecase(catalogRepo, sessionStore, cfg.SessionTTL)

	// --- Storage Module (R2) ---
	var imageStore v1.ImageStore
	var uploadHandler *v1.UploadHandler
	if cfg.UploadsEnabled() {
		r2Storage, err := storage.NewR2Storage(
			rootCtx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		imageStore = r2Storage
		uploadHandler = v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)
	}

	// --- Handlers ---
	router := &v1.Router{
		Sessions:  sessionUC,
		Session:   v1.NewSessionHandler(sessionUC, cfg.SessionTTL),
		Catalog:   v1.NewCatalogHandler(catalogRepo),
		Cart:      v1.NewCartHandler(catalogRepo, cfg.MaxCartLines),
		Favorites: v1.NewFavoritesHandler(),
		AdminEdit: v1.NewAdminEditHandler(catalogRepo, imageStore),
		Upload:    uploadHandler,
	}

	mux := http.NewServeMux()
	router.Register(mux)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"backend":  cfg.CatalogBackend,
			"items":    catalogRepo.Mirror().Len(),
			"sessions": sessionUC.Active(),
		})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)

	rateLimiter := middleware.NewRateLimiter(
		rootCtx,
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // visitor TTL
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, cfg.InstanceID, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close catalog event consumer")
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close catalog event producer")
		}
	}

	logger.ServiceStop(serviceName)
}

// newCatalogGateway connects the configured backend and returns its cleanup.
func newCatalogGateway(ctx context.Context, cfg *config.Config) (domain.CatalogGateway, func()) {
	log := logger.Get()

	switch cfg.CatalogBackend {
	case config.BackendPostgres:
		pool, err := pgrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := pgrepo.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("Failed to prepare catalog schema")
		}
		log.Info().Msg("Catalog backed by PostgreSQL")
		return pgrepo.NewCatalogGateway(pool), pool.Close

	case config.BackendFirestore:
		client, err := fsrepo.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Firestore")
		}
		log.Info().Str("collection", cfg.FirestoreCollection).Msg("Catalog backed by Firestore")
		return fsrepo.NewCatalogGateway(client, cfg.FirestoreCollection), func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Firestore client")
			}
		}

	default:
		gw := memory.NewCatalogGateway()
		if cfg.SeedCatalog {
			if err := gw.Seed(ctx, memory.SeedItems...); err != nil {
				logger.Fatal().Err(err).Msg("Failed to seed catalog")
			}
		}
		log.Warn().Msg("Catalog backed by in-process memory store; data is lost on restart")
		return gw, func() {}
	}
}
