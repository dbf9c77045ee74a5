package services

import (
	"context"
	"time"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/sms"

	"github.com/stretchr/testify/mock"
)

type mockComplaintStore struct {
	mock.Mock
}

func (m *mockComplaintStore) Create(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockComplaintStore) GetBySRN(ctx context.Context, srn string) (*models.Complaint, error) {
	args := m.Called(ctx, srn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *mockComplaintStore) ListByPhone(ctx context.Context, phone string) ([]*models.Complaint, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Complaint), args.Error(1)
}

func (m *mockComplaintStore) ListAll(ctx context.Context) ([]*models.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Complaint), args.Error(1)
}

func (m *mockComplaintStore) UpdateStatus(ctx context.Context, srn, status, remarks, actor string) (*models.Complaint, error) {
	args := m.Called(ctx, srn, status, remarks, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *mockComplaintStore) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type mockNotificationStore struct {
	mock.Mock
}

func (m *mockNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationStore) List(ctx context.Context) ([]*models.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *mockNotificationStore) Update(ctx context.Context, id int, title, body, target string) (*models.Notification, error) {
	args := m.Called(ctx, id, title, body, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *mockNotificationStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRequestStore struct {
	mock.Mock
}

func (m *mockRequestStore) Create(ctx context.Context, req *models.ServiceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRequestStore) GetBySRN(ctx context.Context, srn string) (*models.ServiceRequest, error) {
	args := m.Called(ctx, srn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestStore) ListForPhone(ctx context.Context, userID *int, phone string) ([]*models.ServiceRequest, error) {
	args := m.Called(ctx, userID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestStore) ListByUserID(ctx context.Context, userID int) ([]*models.ServiceRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestStore) ListBySRN(ctx context.Context, srn string) ([]*models.ServiceRequest, error) {
	args := m.Called(ctx, srn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestStore) ListAll(ctx context.Context) ([]*models.ServiceRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestStore) UpdateStatus(ctx context.Context, srn, status, remarks, actor string) (*models.ServiceRequest, error) {
	args := m.Called(ctx, srn, status, remarks, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRequest), args.Error(1)
}

func (m *mockRequestStore) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type mockBillStore struct {
	mock.Mock
}

func (m *mockBillStore) Create(ctx context.Context, b *models.Bill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBillStore) Get(ctx context.Context, id int) (*models.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

func (m *mockBillStore) ListByPhone(ctx context.Context, phone string) ([]*models.Bill, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bill), args.Error(1)
}

func (m *mockBillStore) ListPaidByPhone(ctx context.Context, phone string) ([]*models.Bill, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bill), args.Error(1)
}

func (m *mockBillStore) MarkPaid(ctx context.Context, id int, orderID, paymentID string, amount float64, paidAt time.Time) (*models.Bill, error) {
	args := m.Called(ctx, id, orderID, paymentID, amount, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

// mockUserStore satisfies UserStore, SearchUserStore and DirectoryStore.
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByPhoneOrAadhaar(ctx context.Context, query string) (*models.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockOTPStore struct {
	mock.Mock
}

func (m *mockOTPStore) Create(ctx context.Context, otp *models.OTPCode) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *mockOTPStore) GetLatest(ctx context.Context, phone string) (*models.OTPCode, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OTPCode), args.Error(1)
}

func (m *mockOTPStore) IncrementAttempts(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOTPStore) MarkVerified(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOTPStore) CountRecentRequests(ctx context.Context, phone string, window time.Duration) (int, error) {
	args := m.Called(ctx, phone, window)
	return args.Int(0), args.Error(1)
}

type mockAdminStore struct {
	mock.Mock
}

func (m *mockAdminStore) Create(ctx context.Context, a *models.Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *mockAdminStore) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	args := m.Called(ctx, id, secret)
	return args.Error(0)
}

func (m *mockAdminStore) EnableTOTP(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockSMS records sent messages; Err makes every send fail.
type mockSMS struct {
	Err  error
	Sent []sentSMS
}

type sentSMS struct {
	Phone   string
	Message string
	Type    string
}

var _ sms.Provider = (*mockSMS)(nil)

func (m *mockSMS) SendSMS(phone, message, messageType string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, sentSMS{Phone: phone, Message: message, Type: messageType})
	return nil
}

func (m *mockSMS) SetLogRepository(repo sms.LogRepo) {}
