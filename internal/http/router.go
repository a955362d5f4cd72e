package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"installment-backend/internal/handlers"
	"installment-backend/internal/middleware"
	"installment-backend/internal/models"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	saleHandler *handlers.SaleHandler,
	paymentHandler *handlers.PaymentHandler,
	portalHandler *handlers.PortalHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Admin API routes - user management
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")

	// Admin API routes - sales and installment plans
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.Use(authMiddleware.Authenticate)
	salesAPI.Use(authMiddleware.RequireAdmin)
	salesAPI.HandleFunc("", saleHandler.ListSales).Methods("GET")
	salesAPI.HandleFunc("", saleHandler.CreateSale).Methods("POST")
	salesAPI.HandleFunc("/{id}", saleHandler.GetSale).Methods("GET")

	// Admin API routes - payment ledger
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.Use(authMiddleware.RequireAdmin)
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("/{id}/mark-paid", paymentHandler.MarkPaid).Methods("PATCH")

	// Admin API routes - exports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.Use(authMiddleware.RequireAdmin)
	reportsAPI.HandleFunc("/sales/{id}/schedule.pdf", reportHandler.SchedulePDF).Methods("GET")
	reportsAPI.HandleFunc("/payments.csv", reportHandler.PaymentsCSV).Methods("GET")

	// Client portal routes - any authenticated account
	portalAPI := r.PathPrefix("/api/portal").Subrouter()
	portalAPI.Use(authMiddleware.Authenticate)
	portalAPI.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleClient))
	portalAPI.HandleFunc("/dashboard", portalHandler.Dashboard).Methods("GET")

	return r
}
