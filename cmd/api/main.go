package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"video-paywall-demo/internal/client"
	"video-paywall-demo/internal/config"
	"video-paywall-demo/internal/logger"
	"video-paywall-demo/internal/repository"
	"video-paywall-demo/internal/server"
	"video-paywall-demo/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	db, err := client.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("init database", zap.Error(err))
	}

	videoRepo := repository.NewVideoRepository(db)
	if err := videoRepo.Seed(ctx); err != nil {
		log.Fatal("seed videos", zap.Error(err))
	}

	purchaseRepo := repository.NewPurchaseRepository(db)
	checkoutRepo := repository.NewCheckoutRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	itemRepo := repository.NewMemoryItemRepository()

	paystackClient := client.NewPaystackClient(&cfg.Paystack)

	var braintreeClient client.BraintreeClient
	if cfg.BrainTree.Enabled() {
		braintreeClient = client.NewBraintreeClient(&cfg.BrainTree)
	} else {
		log.Info("braintree credentials not set, braintree checkout disabled")
	}

	ledgerService := service.NewLedgerService(purchaseRepo, videoRepo, cfg.Storage.ProtectedDir)
	checkoutService := service.NewCheckoutService(
		db, log,
		paystackClient, braintreeClient, cfg.BaseURL,
		ledgerService,
		videoRepo,
		checkoutRepo,
		webhookEventRepo,
	)

	srv := server.NewServer(log, cfg.Storage.MaxUpload, server.Services{
		Auth:     service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Catalog:  service.NewCatalogService(videoRepo),
		Comment:  service.NewCommentService(commentRepo, cfg.Comments.AllowedDomain),
		Media:    service.NewMediaService(cfg.Storage.UploadDir),
		Ledger:   ledgerService,
		Checkout: checkoutService,
		Items:    itemRepo,
	})

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("starting HTTP server", zap.String("addr", serverAddr), zap.String("env", cfg.Environment.Name))
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
}
