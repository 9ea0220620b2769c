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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/config"
	"github.com/harentsoaR/dental-booking/internal/handlers"
	"github.com/harentsoaR/dental-booking/internal/logger"
	"github.com/harentsoaR/dental-booking/internal/middleware"
	"github.com/harentsoaR/dental-booking/internal/services"
	"github.com/harentsoaR/dental-booking/internal/store"
	"github.com/harentsoaR/dental-booking/internal/store/memstore"
	"github.com/harentsoaR/dental-booking/internal/store/mongostore"
	"github.com/harentsoaR/dental-booking/internal/utils"
)

// backend is everything the services need from a store.
type backend interface {
	services.UserStore
	services.DentistStore
	services.BookingStore
}

func main() {
	cfg, loadedFile, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	if !loadedFile {
		zl.Info("No .env file found, relying on environment variables")
	}
	zl.Info("Config loaded",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("sms_enabled", cfg.TextbeltKey != ""),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Store ---
	var db backend
	switch cfg.StorageDriver {
	case store.DriverMemory:
		zl.Warn("Using in-memory store, data is lost on restart")
		db = memstore.New()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			cancel()
			zl.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		if err := client.Ping(ctx, nil); err != nil {
			cancel()
			zl.Fatal("Failed to ping MongoDB", zap.Error(err))
		}
		ms := mongostore.New(client.Database(cfg.MongoDatabase))
		if err := ms.EnsureIndexes(ctx); err != nil {
			cancel()
			zl.Fatal("Failed to create indexes", zap.Error(err))
		}
		cancel()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()
		zl.Info("Successfully connected to MongoDB", zap.String("database", cfg.MongoDatabase))
		db = ms
	}

	tokens, err := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire)
	if err != nil {
		zl.Fatal("Failed to configure tokens", zap.Error(err))
	}

	// --- Services ---
	notifier := services.NewSMSNotifier(cfg.TextbeltKey, zl)
	dentists := services.NewDentistRegistry(db, db)
	bookings := services.NewBookingLedger(db, db, db, notifier, zl)
	accounts := services.NewAccounts(db, tokens, cfg.BcryptCost)

	if cfg.AdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := accounts.SeedAdmin(ctx, services.RegisterInput{
			Name:      cfg.AdminName,
			Email:     cfg.AdminEmail,
			Telephone: cfg.AdminTelephone,
			Password:  cfg.AdminPassword,
		})
		cancel()
		if err != nil {
			zl.Fatal("Failed to seed admin account", zap.String("email", cfg.AdminEmail), zap.Error(err))
		}
		if created {
			zl.Info("Admin account created", zap.String("email", cfg.AdminEmail))
		}
	}

	h := handlers.NewHandler(dentists, bookings, accounts, zl, cfg.JWTExpire, cfg.CookieSecure)
	auth := middleware.NewAuthenticator(tokens, db, zl)
	r := handlers.NewRouter(h, auth, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	zl.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Graceful shutdown failed", zap.Error(err))
	}
}
