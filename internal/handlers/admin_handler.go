package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"nagarsetu-backend/internal/middleware"
	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/services"
	"nagarsetu-backend/pkg/utils"
)

type AdminHandler struct {
	Service *services.AdminService
}

func NewAdminHandler(s *services.AdminService) *AdminHandler {
	return &AdminHandler{Service: s}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.Login(context.Background(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.Message(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if result.Requires2FA {
		utils.OK(w, map[string]interface{}{
			"requires_2fa": true,
			"temp_token":   result.TempToken,
		})
		return
	}

	utils.OK(w, map[string]interface{}{
		"token": result.Token,
		"admin": map[string]interface{}{
			"email": result.Admin.Email,
			"role":  result.Admin.Role,
		},
	})
}

// TOTPSetup issues a fresh authenticator secret for the logged-in admin.
func (h *AdminHandler) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.Message(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	setup, err := h.Service.SetupTOTP(context.Background(), claims.AdminID, claims.Email)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to set up two-factor")
		return
	}

	utils.OK(w, map[string]interface{}{"totp": setup})
}

// TOTPEnable confirms the pending secret with a live code.
func (h *AdminHandler) TOTPEnable(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.Message(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req models.TOTPCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Service.EnableTOTP(context.Background(), claims.Email, req.Code)
	switch {
	case errors.Is(err, services.ErrNoTOTPSecret):
		utils.Error(w, http.StatusBadRequest, "Two-factor setup not started")
	case errors.Is(err, services.ErrInvalidTOTPCode):
		utils.Error(w, http.StatusBadRequest, "Invalid authenticator code")
	case err != nil:
		utils.Error(w, http.StatusInternalServerError, "Failed to enable two-factor")
	default:
		utils.OK(w, map[string]interface{}{"message": "Two-factor enabled"})
	}
}

// TOTPVerify completes a two-factor login with the temp token and a code.
func (h *AdminHandler) TOTPVerify(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.VerifyTOTPLogin(context.Background(), req.TempToken, req.Code)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Message(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	case errors.Is(err, services.ErrInvalidTOTPCode):
		utils.Error(w, http.StatusBadRequest, "Invalid authenticator code")
		return
	case err != nil:
		utils.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	utils.OK(w, map[string]interface{}{
		"token": result.Token,
		"admin": map[string]interface{}{
			"email": result.Admin.Email,
			"role":  result.Admin.Role,
		},
	})
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	utils.OK(w, map[string]interface{}{"users": users})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	utils.OK(w, map[string]interface{}{
		"userCount":      stats.TotalUsers,
		"complaintCount": stats.PendingComplaints,
		"serviceCount":   stats.PendingRequests,
	})
}

// StatusEvents returns the audit trail for a record, oldest first.
func (h *AdminHandler) StatusEvents(w http.ResponseWriter, r *http.Request) {
	srn := r.URL.Query().Get("srn")
	if srn == "" {
		utils.Error(w, http.StatusBadRequest, "srn parameter is required")
		return
	}
	recordType := r.URL.Query().Get("type")
	if recordType == "" {
		recordType = models.RecordTypeComplaint
	}

	events, err := h.Service.Timeline(context.Background(), recordType, srn)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch status events")
		return
	}
	if events == nil {
		events = []*models.StatusEvent{}
	}

	utils.OK(w, map[string]interface{}{"events": events})
}
