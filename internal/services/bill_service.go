package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"nagarsetu-backend/internal/cache"
	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/sms"
	"nagarsetu-backend/internal/timeutil"
)

type BillStore interface {
	Create(ctx context.Context, b *models.Bill) error
	Get(ctx context.Context, id int) (*models.Bill, error)
	ListByPhone(ctx context.Context, phone string) ([]*models.Bill, error)
	ListPaidByPhone(ctx context.Context, phone string) ([]*models.Bill, error)
	MarkPaid(ctx context.Context, id int, orderID, paymentID string, amount float64, paidAt time.Time) (*models.Bill, error)
}

type BillService struct {
	Bills         BillStore
	Notifications NotificationStore
	SMS           sms.Provider

	// now is swappable for tests of the read-time fine derivation.
	now func() time.Time
}

func NewBillService(bills BillStore, notifications NotificationStore, smsProvider sms.Provider) *BillService {
	return &BillService{
		Bills:         bills,
		Notifications: notifications,
		SMS:           smsProvider,
		now:           timeutil.Now,
	}
}

// Create releases a bill to a citizen. The due date is a civil date in IST;
// the bill stays fine-free until the end of that day. A direct notification
// and a best-effort SMS tell the payer.
func (s *BillService) Create(ctx context.Context, req *models.CreateBillRequest) (*models.Bill, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	lastDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.LastDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}

	b := &models.Bill{
		UserPhone:   req.UserPhone,
		Type:        req.Type,
		Amount:      req.Amount,
		ReleaseDate: s.now(),
		LastDate:    timeutil.EndOfDay(lastDate),
		Status:      models.BillStatusUnpaid,
	}
	if err := s.Bills.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	notif := &models.Notification{
		Title:  fmt.Sprintf("%s bill released", b.Type),
		Body:   fmt.Sprintf("Amount ₹%.0f due by %s.", b.Amount, b.LastDate.Format(timeutil.DateLayout)),
		Target: b.UserPhone,
	}
	if err := s.Notifications.Create(ctx, notif); err != nil {
		log.Printf("[Bill] Notification fan-out failed for bill %d: %v", b.ID, err)
	} else {
		cache.InvalidateNotifications(ctx)
	}

	message := fmt.Sprintf("Nagar-Setu: %s bill of ₹%.0f released. Pay by %s to avoid a 10%% fine.",
		b.Type, b.Amount, b.LastDate.Format(timeutil.DateLayout))
	if err := s.SMS.SendSMS(b.UserPhone, message, models.SMSTypeBill); err != nil {
		log.Printf("[Bill] Release SMS failed for bill %d: %v", b.ID, err)
	}

	return b, nil
}

// ListByPhone returns the citizen's bills with the overdue flag and amount
// due derived at this instant. Nothing is persisted: the same bill can show
// a different amount on the next read if the due date passes in between.
func (s *BillService) ListByPhone(ctx context.Context, phone string) ([]models.BillView, error) {
	bills, err := s.Bills.ListByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]models.BillView, 0, len(bills))
	for _, b := range bills {
		views = append(views, models.NewBillView(b, now))
	}
	return views, nil
}

// History returns paid bills, most recent payment first.
func (s *BillService) History(ctx context.Context, phone string) ([]*models.Bill, error) {
	return s.Bills.ListPaidByPhone(ctx, phone)
}

func (s *BillService) Get(ctx context.Context, id int) (*models.Bill, error) {
	b, err := s.Bills.Get(ctx, id)
	if err != nil {
		return nil, ErrBillNotFound
	}
	return b, nil
}
