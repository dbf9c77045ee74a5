package services

import (
	"context"
	"fmt"
	"log"

	"nagarsetu-backend/internal/cache"
	"nagarsetu-backend/internal/metrics"
	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/sms"
	"nagarsetu-backend/internal/timeutil"
)

type ComplaintStore interface {
	Create(ctx context.Context, c *models.Complaint) error
	GetBySRN(ctx context.Context, srn string) (*models.Complaint, error)
	ListByPhone(ctx context.Context, phone string) ([]*models.Complaint, error)
	ListAll(ctx context.Context) ([]*models.Complaint, error)
	UpdateStatus(ctx context.Context, srn, status, remarks, actor string) (*models.Complaint, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context) ([]*models.Notification, error)
	Update(ctx context.Context, id int, title, body, target string) (*models.Notification, error)
	Delete(ctx context.Context, id int) error
}

type ComplaintService struct {
	Complaints    ComplaintStore
	Notifications NotificationStore
	SMS           sms.Provider
}

func NewComplaintService(complaints ComplaintStore, notifications NotificationStore, smsProvider sms.Provider) *ComplaintService {
	return &ComplaintService{Complaints: complaints, Notifications: notifications, SMS: smsProvider}
}

// Submit files a new complaint with a fresh SRN, initial status Pending and
// the default remarks. The confirmation SMS is best-effort: a provider
// failure is logged and swallowed so the submission still succeeds.
func (s *ComplaintService) Submit(ctx context.Context, req *models.SubmitComplaintRequest) (*models.Complaint, error) {
	c := &models.Complaint{
		SRN:         GenerateSRN(),
		Citizen:     req.Citizen,
		Phone:       req.Phone,
		Dept:        req.Dept,
		Category:    req.Category,
		Status:      models.StatusPending,
		Date:        timeutil.Now().Format(timeutil.DateLayout),
		Location:    req.Location,
		Coordinates: req.Coordinates,
		Remarks:     models.DefaultComplaintRemarks,
		Description: req.Description,
	}

	if err := s.Complaints.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("complaint submission failed: %w", err)
	}

	metrics.ComplaintsSubmitted.Inc()
	cache.InvalidateStats(ctx)

	if c.Phone != "" {
		message := fmt.Sprintf("Nagar-Setu: Complaint Logged! SRN: %s. Status: Pending.", c.SRN)
		if err := s.SMS.SendSMS(c.Phone, message, models.SMSTypeComplaint); err != nil {
			log.Printf("[Complaint] SMS failed, but complaint saved: %v", err)
		}
	}

	return c, nil
}

func (s *ComplaintService) ListByPhone(ctx context.Context, phone string) ([]*models.Complaint, error) {
	return s.Complaints.ListByPhone(ctx, phone)
}

func (s *ComplaintService) ListAll(ctx context.Context) ([]*models.Complaint, error) {
	return s.Complaints.ListAll(ctx)
}

// UpdateStatus overwrites status and remarks for the SRN, fans out a direct
// notification to the citizen's phone, and attempts an SMS. Both side
// effects are best-effort; the status write is what matters.
func (s *ComplaintService) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest, actor string) (*models.Complaint, error) {
	c, err := s.Complaints.UpdateStatus(ctx, req.SRN, req.Status, req.Remarks, actor)
	if err != nil {
		return nil, ErrSRNNotFound
	}

	cache.InvalidateStats(ctx)

	if c.Phone != "" {
		notif := &models.Notification{
			Title:  fmt.Sprintf("Complaint %s updated", c.SRN),
			Body:   fmt.Sprintf("Status: %s. %s", c.Status, c.Remarks),
			Target: c.Phone,
		}
		if err := s.Notifications.Create(ctx, notif); err != nil {
			log.Printf("[Complaint] Notification fan-out failed for %s: %v", c.SRN, err)
		} else {
			cache.InvalidateNotifications(ctx)
		}

		message := fmt.Sprintf("Nagar-Setu: Complaint %s is now %s. %s", c.SRN, c.Status, c.Remarks)
		if err := s.SMS.SendSMS(c.Phone, message, models.SMSTypeStatusUpdate); err != nil {
			log.Printf("[Complaint] Status SMS failed for %s: %v", c.SRN, err)
		}
	}

	return c, nil
}
