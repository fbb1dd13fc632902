package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/somnahealth/somna-backend/internal/api/recovery"
	"github.com/somnahealth/somna-backend/internal/auth"
	"github.com/somnahealth/somna-backend/internal/config"
	"github.com/somnahealth/somna-backend/internal/services"
	"github.com/somnahealth/somna-backend/internal/store"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(cfg *config.Config, log zerolog.Logger, s store.Store) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares. CORSMethodMiddleware must run before the CORS
	// handler so the method list is set before preflights short-circuit,
	// and every route registers OPTIONS so preflights match.
	router.Use(recovery.Middleware)
	router.Use(mux.CORSMethodMiddleware(router))
	router.Use(corsMiddleware(cfg.CORSOrigins))

	// Domain services
	issuer := auth.NewTokenIssuer(cfg.SecretKey, cfg.AccessTokenExpireMinutes)
	userService := services.NewUserService(s)
	authService := services.NewAuthService(s, issuer, log)
	diaryService := services.NewDiaryService(s)
	goalsService := services.NewGoalsService(s)
	programService := services.NewProgramService(s)
	prefsService := services.NewPreferencesService(s)

	// Handlers
	var pinger store.HealthPinger
	if p, ok := s.(store.HealthPinger); ok {
		pinger = p
	}
	healthHandler := NewHealthHandler(pinger)
	userHandler := NewUserHandler(userService)
	authHandler := NewAuthHandler(authService)
	diaryHandler := NewDiaryHandler(diaryService)
	goalsHandler := NewGoalsHandler(goalsService)
	programHandler := NewProgramHandler(programService)
	prefsHandler := NewPreferencesHandler(prefsService)

	// Root banner lives outside the API prefix
	router.HandleFunc("/", WelcomeHandler(cfg.ProjectName)).Methods("GET")

	api := router.PathPrefix(cfg.APIPrefix).Subrouter()

	// Health endpoint
	api.HandleFunc("/health", healthHandler.Health).Methods("GET", "OPTIONS")

	// User endpoints
	api.HandleFunc("/users", userHandler.CreateUser).Methods("POST", "OPTIONS")
	api.HandleFunc("/users/{userId}", userHandler.GetUser).Methods("GET", "OPTIONS")
	api.HandleFunc("/users/{userId}", userHandler.UpdateUser).Methods("PUT", "OPTIONS")
	api.HandleFunc("/users/{userId}", userHandler.DeleteUser).Methods("DELETE", "OPTIONS")

	// Auth endpoint
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Sleep diary endpoints
	api.HandleFunc("/sleep-diary/{userId}", diaryHandler.CreateEntry).Methods("POST", "OPTIONS")
	api.HandleFunc("/sleep-diary/{userId}", diaryHandler.ListEntries).Methods("GET", "OPTIONS")
	api.HandleFunc("/sleep-diary/{userId}/{diaryId:[0-9a-fA-F-]{36}}", diaryHandler.GetEntry).Methods("GET", "OPTIONS")
	api.HandleFunc("/sleep-diary/{userId}/{diaryId:[0-9a-fA-F-]{36}}", diaryHandler.UpdateEntry).Methods("PUT", "OPTIONS")
	api.HandleFunc("/sleep-diary/{userId}/{diaryId:[0-9a-fA-F-]{36}}", diaryHandler.DeleteEntry).Methods("DELETE", "OPTIONS")

	// Sleep goals endpoints
	api.HandleFunc("/sleep-goals/{userId}", goalsHandler.GetGoals).Methods("GET", "OPTIONS")
	api.HandleFunc("/sleep-goals/{userId}", goalsHandler.SetGoals).Methods("PUT", "OPTIONS")

	// Notification preferences endpoints
	api.HandleFunc("/notification-preferences/{userId}", prefsHandler.GetPreferences).Methods("GET", "OPTIONS")
	api.HandleFunc("/notification-preferences/{userId}", prefsHandler.UpdatePreferences).Methods("PUT", "OPTIONS")

	// Weekly program endpoints
	api.HandleFunc("/program/{userId}", programHandler.ListProgress).Methods("GET", "OPTIONS")
	api.HandleFunc("/program/{userId}/weeks/{week:[0-9]+}", programHandler.StartWeek).Methods("POST", "OPTIONS")
	api.HandleFunc("/program/{userId}/weeks/{week:[0-9]+}/activities", programHandler.RecordActivity).Methods("POST", "OPTIONS")
	api.HandleFunc("/program/{userId}/weeks/{week:[0-9]+}/complete", programHandler.CompleteWeek).Methods("PUT", "OPTIONS")

	return router
}
