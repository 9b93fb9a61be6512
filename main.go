package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"softwave-landing/pkg/api"
	"softwave-landing/pkg/clients/brevo"
	"softwave-landing/pkg/clients/twilio"
	"softwave-landing/pkg/config"
	"softwave-landing/pkg/logger"
	"softwave-landing/pkg/models"
	"softwave-landing/pkg/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logg, err := logger.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logg.Sync()

	if err := run(cfg, logg); err != nil {
		logg.Fatal(err)
	}
}

func run(cfg *config.Config, logg *zap.SugaredLogger) error {
	// Initialize API clients
	var provider services.ContactProvider
	if cfg.BrevoConfigured() {
		provider = brevo.NewClient(cfg.BrevoAPIKey, cfg.BrevoBaseURL, logg.Named("brevo"))
	} else {
		logg.Warn("BREVO_API_KEY not set, voucher submissions will be refused")
	}

	var sms services.SMSSender
	if cfg.TwilioConfigured() {
		sms = twilio.NewClient(cfg.TwilioAccountSid, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logg.Named("twilio"))
	}

	if cfg.GoogleMapsAPIKey == "" {
		logg.Warn("GOOGLE_MAPS_API_KEY not set, map requests will fail")
	}

	// Initialize services
	validator, err := services.NewSubmissionValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	notifier := services.NewNotifier(provider, sms, notifierConfig(cfg), logg.Named("notifier"))
	submissionService := services.NewVoucherSubmissionService(
		validator,
		services.NewNormalizer(),
		notifier,
		logg.Named("submission"),
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize handlers
	handlers := api.NewHandlers(submissionService, services.NewMapService(cfg.GoogleMapsAPIKey), logg.Named("api"))
	router := api.NewRouter(handlers, cfg.CORSAllowedOrigins, logg.Named("http"))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
	}

	// Shutdown server gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logg.Info("Server stopped properly")
	return nil
}

func notifierConfig(cfg *config.Config) services.NotifierConfig {
	admins := make([]models.Address, 0, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins = append(admins, models.Address{Email: email})
	}

	return services.NotifierConfig{
		Sender:             models.Address{Name: cfg.SenderName, Email: cfg.SenderEmail},
		AdminRecipients:    admins,
		AdminNotifications: cfg.AdminNotifications,
		ListIDs:            cfg.BrevoListIDs,
		EffectTimeout:      cfg.NotifyTimeout,
		Clinic: services.ClinicInfo{
			Name:         cfg.ClinicName,
			Address:      cfg.ClinicAddress,
			Phone:        cfg.ClinicPhone,
			VoucherValue: cfg.VoucherValue,
		},
	}
}
