package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"slotplanner/internal/delivery/http/controllers"
	"slotplanner/internal/delivery/http/middleware"
	"slotplanner/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	participantController *controllers.ParticipantController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Slot catalog
	mux.HandleFunc("GET /slots", eventController.ListSlots)

	// Events
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/calendar.ics", eventController.ExportICS)

	// Participants
	mux.HandleFunc("GET /events/{eventID}/participants", participantController.ListParticipants)
	mux.HandleFunc("POST /events/{eventID}/participants", auth(participantController.Join))
	mux.HandleFunc("DELETE /events/{eventID}/participants", auth(participantController.Leave))
	mux.HandleFunc("POST /events/join/{joinCode}", auth(participantController.JoinByCode))
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(participantController.Invite))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
