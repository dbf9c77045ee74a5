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

	"nagarsetu-backend/internal/auth"
	"nagarsetu-backend/internal/cache"
	"nagarsetu-backend/internal/config"
	"nagarsetu-backend/internal/database"
	"nagarsetu-backend/internal/db"
	"nagarsetu-backend/internal/handlers"
	"nagarsetu-backend/internal/health"
	h "nagarsetu-backend/internal/http"
	"nagarsetu-backend/internal/middleware"
	"nagarsetu-backend/internal/repositories"
	"nagarsetu-backend/internal/services"
	"nagarsetu-backend/internal/sms"
	"nagarsetu-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("[Migrations] Failed: %v", err)
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	adminRepo := repositories.NewAdminRepository(pool)
	complaintRepo := repositories.NewComplaintRepository(pool)
	requestRepo := repositories.NewServiceRequestRepository(pool)
	billRepo := repositories.NewBillRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	statusEventRepo := repositories.NewStatusEventRepository(pool)
	otpRepo := repositories.NewOTPRepository(pool)
	smsLogRepo := repositories.NewSMSLogRepository(pool)

	// SMS provider: Twilio when configured, console mock otherwise
	var smsProvider sms.Provider
	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" {
		smsProvider = sms.NewTwilioService(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
		log.Println("[SMS] Twilio provider configured")
	} else {
		smsProvider = sms.NewMockService()
		log.Println("[SMS] No Twilio credentials, using mock provider")
	}
	smsProvider.SetLogRepository(smsLogRepo)

	documents, err := storage.NewDocumentStore(cfg)
	if err != nil {
		log.Fatalf("[Storage] Failed to initialize document store: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Services
	otpService := services.NewOTPService(userRepo, otpRepo, smsProvider)
	complaintService := services.NewComplaintService(complaintRepo, notificationRepo, smsProvider)
	requestService := services.NewRequestService(requestRepo, userRepo, documents)
	billService := services.NewBillService(billRepo, notificationRepo, smsProvider)
	razorpayService := services.NewRazorpayService(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret, billRepo)
	receiptService := services.NewReceiptService(billRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	adminService := services.NewAdminService(adminRepo, userRepo, complaintRepo, requestRepo,
		statusEventRepo, jwtManager)

	if err := adminService.EnsureDefaultAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("[Admin] Failed to seed default admin: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	// Handlers
	authHandler := handlers.NewAuthHandler(otpService, jwtManager)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	requestHandler := handlers.NewRequestHandler(requestService, int64(cfg.Uploads.MaxSizeMB)<<20)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	billHandler := handlers.NewBillHandler(billService, razorpayService, receiptService)
	adminHandler := handlers.NewAdminHandler(adminService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		complaintHandler,
		requestHandler,
		notificationHandler,
		billHandler,
		adminHandler,
		healthHandler,
		authMiddleware,
		cfg.Uploads.Dir,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("[Server] Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[Server] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
}
