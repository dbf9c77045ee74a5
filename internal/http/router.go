package http

import (
	"net/http"

	"nagarsetu-backend/internal/handlers"
	"nagarsetu-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	complaintHandler *handlers.ComplaintHandler,
	requestHandler *handlers.RequestHandler,
	notificationHandler *handlers.NotificationHandler,
	billHandler *handlers.BillHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) *mux.Router {
	r := mux.NewRouter()

	// Uploaded service-request documents
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - citizen auth
	r.HandleFunc("/api/send-otp", authHandler.SendOTP).Methods("POST")
	r.HandleFunc("/api/verify-otp", authHandler.VerifyOTP).Methods("POST")

	// Public API routes - complaints
	r.HandleFunc("/api/complaints/submit", complaintHandler.Submit).Methods("POST")
	r.HandleFunc("/api/complaints/user/{phone}", complaintHandler.UserComplaints).Methods("GET")

	// Public API routes - service requests
	r.HandleFunc("/api/submit", requestHandler.Submit).Methods("POST")
	r.HandleFunc("/api/user-requests/{phone}", requestHandler.UserRequests).Methods("GET")
	r.HandleFunc("/api/track/{srn}", requestHandler.Track).Methods("GET")

	// Public API routes - notifications (read side)
	r.HandleFunc("/api/notifications", notificationHandler.List).Methods("GET")

	// Public API routes - billing
	r.HandleFunc("/api/bills/user/{phone}", billHandler.UserBills).Methods("GET")
	r.HandleFunc("/api/history/{phone}", billHandler.History).Methods("GET")
	r.HandleFunc("/api/create-order", billHandler.CreateOrder).Methods("POST")
	r.HandleFunc("/api/verify-payment", billHandler.VerifyPayment).Methods("POST")
	r.HandleFunc("/api/bills/{id}/receipt", billHandler.Receipt).Methods("GET")

	// Admin auth (public endpoints of the admin flow)
	r.HandleFunc("/api/admin/login", adminHandler.Login).Methods("POST")
	r.HandleFunc("/api/admin/totp/verify", adminHandler.TOTPVerify).Methods("POST")

	// Protected admin routes
	adminAPI := r.PathPrefix("/api").Subrouter()
	adminAPI.Use(authMiddleware.AuthenticateAdmin)
	adminAPI.HandleFunc("/admin/totp/setup", adminHandler.TOTPSetup).Methods("POST")
	adminAPI.HandleFunc("/admin/totp/enable", adminHandler.TOTPEnable).Methods("POST")
	adminAPI.HandleFunc("/admin/users", adminHandler.Users).Methods("GET")
	adminAPI.HandleFunc("/admin/stats", adminHandler.Stats).Methods("GET")
	adminAPI.HandleFunc("/admin/status-events", adminHandler.StatusEvents).Methods("GET")
	adminAPI.HandleFunc("/complaints/admin/all", complaintHandler.ListAll).Methods("GET")
	adminAPI.HandleFunc("/complaints/update-status", complaintHandler.UpdateStatus).Methods("PATCH")
	adminAPI.HandleFunc("/admin/all-requests", requestHandler.ListAll).Methods("GET")
	adminAPI.HandleFunc("/admin/update-status", requestHandler.UpdateStatus).Methods("POST")
	adminAPI.HandleFunc("/search/user-details", requestHandler.SearchUserDetails).Methods("POST")
	adminAPI.HandleFunc("/send-notification", notificationHandler.Create).Methods("POST")
	adminAPI.HandleFunc("/notifications/{id}", notificationHandler.Update).Methods("PUT")
	adminAPI.HandleFunc("/notifications/{id}", notificationHandler.Delete).Methods("DELETE")
	adminAPI.HandleFunc("/bills/create", billHandler.Create).Methods("POST")

	return r
}
