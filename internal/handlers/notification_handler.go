package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/services"
	"nagarsetu-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(s *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Service.List(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}

	utils.OK(w, map[string]interface{}{"notifications": notifications})
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Body == "" {
		utils.Error(w, http.StatusBadRequest, "title and body are required")
		return
	}

	n, err := h.Service.Create(context.Background(), &req)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to send notification")
		return
	}

	utils.OK(w, map[string]interface{}{"notification": n})
}

func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid notification id")
		return
	}

	var req models.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	n, err := h.Service.Update(context.Background(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.OK(w, map[string]interface{}{"notification": n})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid notification id")
		return
	}

	if err := h.Service.Delete(context.Background(), id); err != nil {
		utils.Error(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.OK(w, map[string]interface{}{"message": "Notification deleted"})
}
