package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos-service/config"
	"pos-service/internal/ai"
	"pos-service/internal/api"
	"pos-service/internal/broker"
	"pos-service/internal/catalog"
	"pos-service/internal/ledger"
	"pos-service/internal/people"
	"pos-service/internal/redisclient"
	"pos-service/internal/service"
	"pos-service/internal/settings"
	"pos-service/internal/util"
	"pos-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting POS service")

	tp, err := util.InitTracer("pos-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	catalogStore := catalog.NewSeededStore()
	txLedger := ledger.New()
	if cfg.Server.SeedDemo {
		ledger.SeedDemo(txLedger, 20)
		log.Printf("Demo sales history seeded: %d transactions", txLedger.Len())
	}
	settingsStore := settings.NewStore(cfg.Pricing, cfg.Receipt)
	peopleStore := people.NewStore()

	// Redis and Kafka are optional: the register keeps working without them.
	var insightCache service.InsightCache
	if cfg.Redis.Enabled() {
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Redis unavailable, running without insight cache: %v", err)
		} else {
			defer redisClient.Close()
			insightCache = redisClient
			log.Println("Redis connected")
		}
	}

	var eventPublisher *broker.EventPublisher
	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicSales)
		defer producer.Close()
		eventPublisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")
	}

	aiClient := ai.NewClient(cfg.AI)

	posService := service.NewPosService(
		catalogStore,
		txLedger,
		settingsStore,
		aiClient,
		insightCache,
		eventPublisher,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Worker.InsightTTLMinutes)*time.Minute,
	)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	insightWorker := worker.NewInsightWorker(posService,
		time.Duration(cfg.Worker.InsightIntervalMinutes)*time.Minute)
	go func() {
		if err := insightWorker.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Insight worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(posService, catalogStore, settingsStore, peopleStore)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()

	log.Println("Server exited")
}
