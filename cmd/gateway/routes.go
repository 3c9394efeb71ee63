package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"manufacturing-system/config"
	"manufacturing-system/internal/database"
	"manufacturing-system/internal/gateway"
	"manufacturing-system/internal/health"
	"manufacturing-system/internal/logger"
	"manufacturing-system/internal/services/manufacturing/handler"
)

func main() {
	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.DB)
	if err != nil {
		appLog.Fatal("Failed to connect to db", "driver", cfg.DB.Driver, "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLog.Warn("Failed to close db", "error", err)
		}
	}()

	if err := database.MigrateManufacturingDB(db); err != nil {
		appLog.Fatal("Failed to migrate manufacturing database", "error", err)
	}

	var redisClient *redis.Client
	var cache handler.Cache = handler.NoopCache{}
	if cfg.Redis.Enabled {
		redisClient, err = config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLog.Warn("Redis unavailable, continuing without cache", "addr", cfg.Redis.Addr(), "error", err)
		} else {
			defer redisClient.Close()
			cache = handler.NewRedisCache(redisClient, cfg.CacheTTL)
			appLog.Info("Redis connected", "addr", cfg.Redis.Addr())
		}
	}

	manufacturingHandler := handler.NewManufacturingHandler(db, cache, appLog)
	checker := health.NewChecker(db, redisClient)

	router, err := gateway.NewRouter(gateway.RouterConfig{
		RateLimit:      cfg.HTTP.RateLimit,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, manufacturingHandler, checker, appLog)
	if err != nil {
		appLog.Fatal("Failed to build router", "error", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthServer := health.NewGRPCServer()
	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		appLog.Fatal("Failed to listen", "port", cfg.GRPC.Port, "error", err)
	}
	go checker.Watch(ctx, healthServer, 15*time.Second, appLog)

	go func() {
		appLog.Info("gRPC health listening", "port", cfg.GRPC.Port)
		if err := grpcServer.Serve(lis); err != nil {
			appLog.Error("gRPC server stopped", "error", err)
		}
	}()

	go func() {
		appLog.Info("Starting server", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
}
