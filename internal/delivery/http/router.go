package http

import (
	"net/http"

	"masterbook/internal/delivery/http/handler"
	"masterbook/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	webhookHandler   *handler.WebhookHandler
	authHandler      *handler.AuthHandler
	masterHandler    *handler.MasterHandler
	serviceHandler   *handler.ServiceHandler
	priceHandler     *handler.PriceHandler
	blackoutHandler  *handler.BlackoutHandler
	dashboardHandler *handler.DashboardHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	webhookHandler *handler.WebhookHandler,
	authHandler *handler.AuthHandler,
	masterHandler *handler.MasterHandler,
	serviceHandler *handler.ServiceHandler,
	priceHandler *handler.PriceHandler,
	blackoutHandler *handler.BlackoutHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		webhookHandler:   webhookHandler,
		authHandler:      authHandler,
		masterHandler:    masterHandler,
		serviceHandler:   serviceHandler,
		priceHandler:     priceHandler,
		blackoutHandler:  blackoutHandler,
		dashboardHandler: dashboardHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Telegram webhook stays outside the versioned API; its auth is the
	// secret token header, not a session.
	r.router.HandleFunc("/webhook", r.webhookHandler.Handle).Methods(http.MethodPost)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/telegram", r.authHandler.TelegramLogin).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Admin routes (protected)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)

	// Master profile
	admin.HandleFunc("/master", r.masterHandler.GetProfile).Methods(http.MethodGet)
	admin.HandleFunc("/master", r.masterHandler.UpdateProfile).Methods(http.MethodPut)

	// Service catalogue
	admin.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services", r.serviceHandler.GetAllServices).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.DeleteService).Methods(http.MethodDelete)

	// Prices
	admin.HandleFunc("/prices", r.priceHandler.CreatePrice).Methods(http.MethodPost)
	admin.HandleFunc("/prices", r.priceHandler.GetAllPrices).Methods(http.MethodGet)

	// Blackouts
	admin.HandleFunc("/blackouts", r.blackoutHandler.CreateBlackout).Methods(http.MethodPost)
	admin.HandleFunc("/blackouts", r.blackoutHandler.GetAllBlackouts).Methods(http.MethodGet)
	admin.HandleFunc("/blackouts/{id}", r.blackoutHandler.DeleteBlackout).Methods(http.MethodDelete)

	// Dashboard
	admin.HandleFunc("/dashboard", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/clients", r.dashboardHandler.GetAllClients).Methods(http.MethodGet)
	admin.HandleFunc("/events", r.dashboardHandler.GetEvents).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
