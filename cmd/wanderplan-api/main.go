// README: Entry point; loads config, wires stores, AI provider and photo enrichment, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"wanderplan/internal/ai"
	"wanderplan/internal/config"
	httptransport "wanderplan/internal/http"
	"wanderplan/internal/infra"
	"wanderplan/internal/logging"
	"wanderplan/internal/maps"
	"wanderplan/internal/modules/aiusage"
	"wanderplan/internal/modules/trip"
	"wanderplan/internal/photos"
	"wanderplan/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := cfg.RequireMaps(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	if !cfg.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("WANDER_FIREBASE_PROJECT_ID is required")
	}
	app, err := infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, app)
	if err != nil {
		logger.Fatal("firebase auth init", zap.Error(err))
	}

	var (
		dbPool    *pgxpool.Pool
		tripStore trip.Store
		usageSvc  *aiusage.Service
	)
	switch cfg.Store.Backend {
	case config.StorePostgres:
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init", zap.Error(err))
		}
		defer dbPool.Close()
		if cfg.DB.AutoMigrate {
			if err := migrate(ctx, dbPool, cfg.DB.MigrationsDir); err != nil {
				logger.Fatal("migrations", zap.Error(err))
			}
		}
		tripStore = trip.NewPostgresStore(dbPool)
		usageSvc = aiusage.NewService(aiusage.NewStore(dbPool), cfg.Quota.MonthlyPlans)
	case config.StoreFirestore:
		fs, err := infra.NewFirestore(ctx, app)
		if err != nil {
			logger.Fatal("firestore init", zap.Error(err))
		}
		defer fs.Close()
		tripStore = trip.NewFirestoreStore(fs, cfg.Store.FirestoreCollection)
	default:
		logger.Warn("using in-memory trip store; trips are lost on restart")
		tripStore = trip.NewMemoryStore()
	}
	if usageSvc == nil {
		logger.Warn("plan quota disabled: requires the postgres store")
	}

	places, err := maps.NewPlacesService(cfg.Maps.APIKey, maps.PlacesOptions{
		MaxWidth: cfg.Maps.PhotoMaxWidth,
		Language: cfg.Maps.Language,
	})
	if err != nil {
		logger.Fatal("places init", zap.Error(err))
	}
	var lookup photos.Lookup = places
	if redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr); err != nil {
		logger.Warn("photo cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		lookup = photos.NewCachedLookup(places, redisClient, cfg.Maps.CacheTTL, cfg.Maps.MissTTL, logger)
	}

	provider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("ai provider init", zap.Error(err))
	}
	defer provider.Close()

	tripSvc := trip.NewService(tripStore, logger)
	planner := service.NewTripPlanner(service.TripPlannerDeps{
		Provider:        provider,
		Enricher:        photos.NewEnricher(lookup, logger),
		Trips:           tripSvc,
		Credits:         creditLedger(usageSvc),
		Logger:          logger,
		GenerateTimeout: cfg.AI.Timeout,
	})

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:        planner,
		Trips:          tripSvc,
		Usage:          usageSvc,
		Verifier:       verifier,
		Logger:         logger,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})
	server := httptransport.NewHTTPServer(cfg.HTTP.Addr, handler.Routes())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("store", cfg.Store.Backend),
		zap.String("provider", provider.Name()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}

func migrate(ctx context.Context, db *pgxpool.Pool, dir string) error {
	if dir == "" {
		found, err := infra.FindMigrationsDir()
		if err != nil {
			return err
		}
		dir = found
	}
	return infra.ApplyMigrations(ctx, db, dir)
}

// creditLedger avoids handing the planner a typed nil.
func creditLedger(s *aiusage.Service) service.CreditLedger {
	if s == nil {
		return nil
	}
	return s
}
