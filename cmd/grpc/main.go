package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/protrack-service/config"
	"github.com/fekuna/protrack-service/internal/broker"
	"github.com/fekuna/protrack-service/internal/cache"
	"github.com/fekuna/protrack-service/internal/database"
	"github.com/fekuna/protrack-service/internal/i18n"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/middleware"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/product/csvimport"

	movH "github.com/fekuna/protrack-service/internal/movement/handler"
	movListenerPkg "github.com/fekuna/protrack-service/internal/movement/listener"
	movRepoPkg "github.com/fekuna/protrack-service/internal/movement/repository"
	movUCPkg "github.com/fekuna/protrack-service/internal/movement/usecase"

	prodH "github.com/fekuna/protrack-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/protrack-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/protrack-service/internal/product/usecase"

	staffH "github.com/fekuna/protrack-service/internal/staff/handler"
	staffRepoPkg "github.com/fekuna/protrack-service/internal/staff/repository"
	staffUCPkg "github.com/fekuna/protrack-service/internal/staff/usecase"

	whH "github.com/fekuna/protrack-service/internal/warehouse/handler"
	whRepoPkg "github.com/fekuna/protrack-service/internal/warehouse/repository"
	whUCPkg "github.com/fekuna/protrack-service/internal/warehouse/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FilePath:          cfg.Logger.File,
		MaxSizeMB:         cfg.Logger.MaxSizeMB,
		MaxBackups:        cfg.Logger.MaxBackups,
	})
	defer appLogger.Sync()

	// 3. Database
	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		appLogger.Fatal("could not apply schema", zap.Error(err))
	}
	appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Kafka
	salesConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SalesTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer salesConsumer.Close()
	restockProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.RestockTopic,
	})
	defer restockProducer.Close()
	appLogger.Info("kafka configured",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("sales_topic", cfg.Kafka.SalesTopic),
		zap.String("restock_topic", cfg.Kafka.RestockTopic),
	)

	// 6. Import messages
	bundle, err := i18n.NewBundle()
	if err != nil {
		appLogger.Fatal("could not load import messages", zap.Error(err))
	}
	translator := i18n.NewTranslator(bundle, cfg.Import.Locale)

	// 7. Repositories and use cases
	clk := clock.RealClock{}

	prodRepo := prodRepoPkg.NewPGRepository(db)
	movRepo := movRepoPkg.NewPGRepository(db)
	whRepo := whRepoPkg.NewPGRepository(db)
	staffRepo := staffRepoPkg.NewPGRepository(db)

	importer := csvimport.NewImporter(prodRepo, translator, appLogger,
		csvimport.WithClock(clk),
		csvimport.WithMaxBytes(cfg.Import.MaxFileBytes),
	)
	listTTL := time.Duration(cfg.Redis.ListTTL) * time.Second

	prodUC := prodUCPkg.NewProductUseCase(prodRepo, importer, redisClient, listTTL, clk, appLogger)
	movUC := movUCPkg.NewMovementUseCase(movRepo, redisClient, restockProducer, clk, appLogger)
	whUC := whUCPkg.NewWarehouseUseCase(whRepo, redisClient, clk, appLogger)
	staffUC := staffUCPkg.NewStaffUseCase(staffRepo, clk, appLogger)

	// 8. Listeners
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	salesListener := movListenerPkg.NewSalesListener(salesConsumer, movUC, appLogger)
	go salesListener.Start(ctx)

	// 9. gRPC server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(appLogger),
		),
	)

	prodH.RegisterProductServiceServer(grpcServer, prodH.NewProductHandler(prodUC, appLogger))
	movH.RegisterMovementServiceServer(grpcServer, movH.NewMovementHandler(movUC, appLogger))
	whH.RegisterWarehouseServiceServer(grpcServer, whH.NewWarehouseHandler(whUC, appLogger))
	staffH.RegisterStaffServiceServer(grpcServer, staffH.NewStaffHandler(staffUC, appLogger))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	appLogger.Info("starting gRPC server", zap.String("port", port))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	healthServer.Shutdown()
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("server stopped")
}
