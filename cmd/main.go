// @title GroupGo Backend API
// @version 1.0
// @description GroupGo Backend API for shared trip planning
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	_ "GROUPGO_BACK-END/docs" // This is required for swagger
	"GROUPGO_BACK-END/internal/config"
	"GROUPGO_BACK-END/internal/handlers"
	"GROUPGO_BACK-END/internal/middleware"
	"GROUPGO_BACK-END/internal/payments"
	"GROUPGO_BACK-END/internal/routes"
	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
	"GROUPGO_BACK-END/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx := context.Background()
	clients, err := store.NewClients(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logg.Fatalf("connect firebase: %v", err)
	}
	defer clients.Close()

	// Stores
	tripStore := store.NewTripStore(clients, logg)
	invitationStore := store.NewInvitationStore(clients, logg)
	profileStore := store.NewProfileStore(clients, logg)

	// Outbound services
	emailService := utils.NewEmailService(&cfg.Email)
	paymentClient := payments.NewClient(cfg.PaymentBackend.BaseURL, logg)

	// Handlers
	authenticator := middleware.NewAuthenticator(clients)
	authHandler := handlers.NewAuthHandler(clients.Auth, profileStore, emailService, cfg, logg)
	healthHandler := handlers.NewHealthHandler(clients.Firestore)
	tripsHandler := handlers.NewTripsHandler(tripStore, invitationStore, logg)
	invitationsHandler := handlers.NewInvitationsHandler(invitationStore, emailService, cfg, logg)
	profileHandler := handlers.NewProfileHandler(profileStore, logg)
	paymentsHandler := handlers.NewPaymentsHandler(paymentClient, logg)

	// Setup all routes
	routes.SetupRoutes(authenticator, authHandler, healthHandler, tripsHandler, invitationsHandler, profileHandler, paymentsHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	// Wrap the default mux with CORS
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	go func() {
		logg.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logg.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.WithError(err).Warn("Server shutdown error")
	}
	logg.Info("Server stopped.")
}
