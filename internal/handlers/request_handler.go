package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/services"
	"nagarsetu-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type RequestHandler struct {
	Service *services.RequestService

	// MaxUploadBytes caps the multipart body on /api/submit.
	MaxUploadBytes int64
}

func NewRequestHandler(s *services.RequestService, maxUploadBytes int64) *RequestHandler {
	return &RequestHandler{Service: s, MaxUploadBytes: maxUploadBytes}
}

// Submit accepts the citizen service form: formType, a details JSON blob (or
// flat form fields) and an optional pdfFile part.
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	formType := r.FormValue("formType")
	if formType == "" {
		utils.Error(w, http.StatusBadRequest, "formType is required")
		return
	}

	details := map[string]string{}
	if raw := r.FormValue("details"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &details); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid details payload")
			return
		}
	} else {
		// Some form configs post flat fields instead of a details blob.
		for key, vals := range r.MultipartForm.Value {
			if key == "formType" || len(vals) == 0 {
				continue
			}
			details[key] = vals[0]
		}
	}

	var pdf io.Reader
	var pdfName string
	if file, header, err := r.FormFile("pdfFile"); err == nil {
		defer file.Close()
		pdf = file
		pdfName = header.Filename
	}

	request, err := h.Service.Submit(context.Background(), formType, details, pdf, pdfName)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Request submission failed")
		return
	}

	utils.OK(w, map[string]interface{}{
		"srn":     request.SRN,
		"request": request,
	})
}

func (h *RequestHandler) UserRequests(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	summaries, err := h.Service.ListForPhone(context.Background(), phone)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	if summaries == nil {
		summaries = []models.RequestSummary{}
	}

	utils.OK(w, map[string]interface{}{"requests": summaries})
}

func (h *RequestHandler) Track(w http.ResponseWriter, r *http.Request) {
	srn := mux.Vars(r)["srn"]

	status, remarks, err := h.Service.Track(context.Background(), srn)
	if errors.Is(err, services.ErrSRNNotFound) {
		utils.Error(w, http.StatusNotFound, "SRN not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to track request")
		return
	}

	utils.OK(w, map[string]interface{}{
		"status":  status,
		"remarks": remarks,
	})
}

func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListAll(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	if requests == nil {
		requests = []*models.ServiceRequest{}
	}

	utils.OK(w, map[string]interface{}{"requests": requests})
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.AdminUpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SRN == "" || req.NewStatus == "" {
		utils.Error(w, http.StatusBadRequest, "srn and newStatus are required")
		return
	}

	request, err := h.Service.UpdateStatus(context.Background(), &req, "admin")
	if errors.Is(err, services.ErrSRNNotFound) {
		utils.Error(w, http.StatusNotFound, "SRN not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	utils.OK(w, map[string]interface{}{"request": request})
}

func (h *RequestHandler) SearchUserDetails(w http.ResponseWriter, r *http.Request) {
	var req models.UserSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		utils.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	user, requests, err := h.Service.SearchUserDetails(context.Background(), req.Query)
	if errors.Is(err, services.ErrNoRecords) {
		utils.Message(w, http.StatusNotFound, "No records found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if requests == nil {
		requests = []*models.ServiceRequest{}
	}

	utils.OK(w, map[string]interface{}{
		"user":     user,
		"requests": requests,
	})
}
