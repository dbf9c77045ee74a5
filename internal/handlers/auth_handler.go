package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"nagarsetu-backend/internal/auth"
	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/services"
	"nagarsetu-backend/pkg/utils"
)

type AuthHandler struct {
	OTP *services.OTPService
	JWT *auth.JWTManager
}

func NewAuthHandler(otp *services.OTPService, jwt *auth.JWTManager) *AuthHandler {
	return &AuthHandler{OTP: otp, JWT: jwt}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PhoneNumber == "" {
		utils.Error(w, http.StatusBadRequest, "Phone number is required")
		return
	}

	err := h.OTP.SendOTP(context.Background(), &req)
	switch {
	case errors.Is(err, services.ErrAlreadyRegistered):
		utils.Error(w, http.StatusBadRequest, "Already registered")
	case errors.Is(err, services.ErrUserNotFound):
		utils.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrTooManyAttempts):
		utils.Error(w, http.StatusTooManyRequests, "Too many OTP requests. Try again later.")
	case err != nil:
		utils.Error(w, http.StatusInternalServerError, "Failed to send OTP")
	default:
		utils.OK(w, map[string]interface{}{"message": "OTP sent"})
	}
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.OTP.VerifyOTP(context.Background(), &req)
	switch {
	case errors.Is(err, services.ErrInvalidOTP):
		utils.Error(w, http.StatusBadRequest, "Invalid OTP")
		return
	case errors.Is(err, services.ErrOTPExpired):
		utils.Error(w, http.StatusBadRequest, "OTP expired")
		return
	case errors.Is(err, services.ErrTooManyAttempts):
		utils.Error(w, http.StatusTooManyRequests, "Too many attempts")
		return
	case errors.Is(err, services.ErrUserNotFound):
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		utils.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	token, err := h.JWT.GenerateCitizenToken(user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	utils.OK(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
