package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/services"
	"nagarsetu-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ComplaintHandler struct {
	Service *services.ComplaintService
}

func NewComplaintHandler(s *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{Service: s}
}

func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	complaint, err := h.Service.Submit(context.Background(), &req)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Complaint submission failed")
		return
	}

	utils.OK(w, map[string]interface{}{
		"srn":       complaint.SRN,
		"complaint": complaint,
	})
}

func (h *ComplaintHandler) UserComplaints(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	complaints, err := h.Service.ListByPhone(context.Background(), phone)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaints")
		return
	}
	if complaints == nil {
		complaints = []*models.Complaint{}
	}

	utils.OK(w, map[string]interface{}{"complaints": complaints})
}

func (h *ComplaintHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.Service.ListAll(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch complaints")
		return
	}
	if complaints == nil {
		complaints = []*models.Complaint{}
	}

	utils.OK(w, map[string]interface{}{"complaints": complaints})
}

func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SRN == "" || req.Status == "" {
		utils.Error(w, http.StatusBadRequest, "srn and status are required")
		return
	}

	complaint, err := h.Service.UpdateStatus(context.Background(), &req, "admin")
	if errors.Is(err, services.ErrSRNNotFound) {
		utils.Error(w, http.StatusNotFound, "SRN not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	utils.OK(w, map[string]interface{}{"complaint": complaint})
}
