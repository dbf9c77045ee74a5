package services

import (
	"context"
	"fmt"
	"io"

	"nagarsetu-backend/internal/cache"
	"nagarsetu-backend/internal/metrics"
	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/storage"
)

type RequestStore interface {
	Create(ctx context.Context, req *models.ServiceRequest) error
	GetBySRN(ctx context.Context, srn string) (*models.ServiceRequest, error)
	ListForPhone(ctx context.Context, userID *int, phone string) ([]*models.ServiceRequest, error)
	ListByUserID(ctx context.Context, userID int) ([]*models.ServiceRequest, error)
	ListBySRN(ctx context.Context, srn string) ([]*models.ServiceRequest, error)
	ListAll(ctx context.Context) ([]*models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, srn, status, remarks, actor string) (*models.ServiceRequest, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// SearchUserStore is the user lookup surface the search screen needs.
type SearchUserStore interface {
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByPhoneOrAadhaar(ctx context.Context, query string) (*models.User, error)
}

type RequestService struct {
	Requests  RequestStore
	Users     SearchUserStore
	Documents *storage.DocumentStore
}

func NewRequestService(requests RequestStore, users SearchUserStore, documents *storage.DocumentStore) *RequestService {
	return &RequestService{Requests: requests, Users: users, Documents: documents}
}

// Submit files a service-request form. The optional PDF is stored first; a
// storage failure fails the whole submission. The request is linked to a
// registered user when the form details carry a known phone number.
func (s *RequestService) Submit(ctx context.Context, formType string, details map[string]string, pdf io.Reader, pdfName string) (*models.ServiceRequest, error) {
	req := &models.ServiceRequest{
		SRN:      GenerateSRN(),
		FormType: formType,
		Details:  details,
		Status:   models.StatusPending,
		Remarks:  models.DefaultRequestRemarks,
	}

	if phone := req.ContactPhone(); phone != "" {
		if user, err := s.Users.GetByPhone(ctx, phone); err == nil {
			req.UserID = &user.ID
		}
	}

	if pdf != nil {
		path, err := s.Documents.Save(pdf, pdfName)
		if err != nil {
			return nil, err
		}
		req.PDFPath = &path
	}

	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("submission failed: %w", err)
	}

	metrics.RequestsSubmitted.Inc()
	cache.InvalidateStats(ctx)
	return req, nil
}

// ListForPhone returns the slim per-citizen rows.
func (s *RequestService) ListForPhone(ctx context.Context, phone string) ([]models.RequestSummary, error) {
	var userID *int
	if user, err := s.Users.GetByPhone(ctx, phone); err == nil {
		userID = &user.ID
	}

	requests, err := s.Requests.ListForPhone(ctx, userID, phone)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RequestSummary, 0, len(requests))
	for _, r := range requests {
		summaries = append(summaries, models.RequestSummary{
			SRN:      r.SRN,
			Status:   r.Status,
			FormType: r.FormType,
			Remarks:  r.Remarks,
		})
	}
	return summaries, nil
}

// Track returns only the current status and remarks for an SRN. No history
// is returned here; the audit log is an admin surface.
func (s *RequestService) Track(ctx context.Context, srn string) (status, remarks string, err error) {
	req, err := s.Requests.GetBySRN(ctx, srn)
	if err != nil {
		return "", "", ErrSRNNotFound
	}
	return req.Status, req.Remarks, nil
}

func (s *RequestService) ListAll(ctx context.Context) ([]*models.ServiceRequest, error) {
	return s.Requests.ListAll(ctx)
}

// UpdateStatus overwrites status and remarks unconditionally.
func (s *RequestService) UpdateStatus(ctx context.Context, req *models.AdminUpdateStatusRequest, actor string) (*models.ServiceRequest, error) {
	updated, err := s.Requests.UpdateStatus(ctx, req.SRN, req.NewStatus, req.Remarks, actor)
	if err != nil {
		return nil, ErrSRNNotFound
	}
	cache.InvalidateStats(ctx)
	return updated, nil
}

// SearchUserDetails resolves a query (phone, Aadhaar, or bare SRN) to a user
// and their requests for the admin search screen.
func (s *RequestService) SearchUserDetails(ctx context.Context, query string) (*models.User, []*models.ServiceRequest, error) {
	user, err := s.Users.GetByPhoneOrAadhaar(ctx, query)
	if err == nil {
		requests, err := s.Requests.ListByUserID(ctx, user.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("search failed: %w", err)
		}
		if len(requests) == 0 {
			return nil, nil, ErrNoRecords
		}
		return user, requests, nil
	}

	// Fallback to SRN search
	requests, err := s.Requests.ListBySRN(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("search failed: %w", err)
	}
	if len(requests) == 0 {
		return nil, nil, ErrNoRecords
	}
	return nil, requests, nil
}
