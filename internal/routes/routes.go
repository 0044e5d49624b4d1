package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"GROUPGO_BACK-END/internal/handlers"
	"GROUPGO_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	tripsHandler *handlers.TripsHandler,
	invitationsHandler *handlers.InvitationsHandler,
	profileHandler *handlers.ProfileHandler,
	paymentsHandler *handlers.PaymentsHandler,
) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", authHandler.Register)
	http.HandleFunc("/api/auth/forgot-password", authHandler.ForgotPassword)
	http.HandleFunc("/api/auth/me", auth.Middleware(authHandler.Me))

	// Trip routes
	http.HandleFunc("/api/trips", auth.Middleware(tripsHandler.Trips))
	http.HandleFunc("/api/trips/", auth.Middleware(tripsHandler.TripSubtree))

	// Invitation routes
	http.HandleFunc("/api/invitations", auth.Middleware(invitationsHandler.SendInvitation))
	http.HandleFunc("/api/invitations/", auth.Middleware(invitationsHandler.InvitationSubtree))

	// Profile routes
	http.HandleFunc("/api/profile", auth.Middleware(profileHandler.Profile))

	// Payment routes
	http.HandleFunc("/api/payments/", auth.Middleware(paymentsHandler.PaymentSubtree))

	// Swagger documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("GroupGo backend is running."))
}
