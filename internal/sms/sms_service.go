package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nagarsetu-backend/internal/metrics"
	"nagarsetu-backend/internal/models"
)

// Provider is an interface for sending SMS messages.
type Provider interface {
	SendSMS(phone, message, messageType string) error
	SetLogRepository(repo LogRepo)
}

// LogRepo interface for logging outbound messages.
type LogRepo interface {
	Create(ctx context.Context, log *models.SMSLog) error
}

// TwilioService implements Provider over the Twilio Messaging REST API.
type TwilioService struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	LogRepo    LogRepo

	client *http.Client
}

// NewTwilioService creates a Twilio-backed SMS sender.
func NewTwilioService(accountSID, authToken, fromNumber string) *TwilioService {
	return &TwilioService{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// SetLogRepository sets the SMS log repository.
func (s *TwilioService) SetLogRepository(repo LogRepo) {
	s.LogRepo = repo
}

// SendSMS sends a single SMS message. The call is synchronous with no retry;
// callers on citizen-facing paths swallow the error.
func (s *TwilioService) SendSMS(phone, message, messageType string) error {
	smsLog := &models.SMSLog{
		Phone:       phone,
		MessageType: messageType,
		Message:     message,
		Status:      models.SMSStatusSent,
	}

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.FromNumber)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.AccountSID)
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return s.fail(smsLog, fmt.Errorf("failed to create SMS request: %w", err))
	}
	req.SetBasicAuth(s.AccountSID, s.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return s.fail(smsLog, fmt.Errorf("failed to send SMS: %w", err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 300 {
		var apiResp map[string]interface{}
		json.Unmarshal(body, &apiResp)
		msg := string(body)
		if m, ok := apiResp["message"].(string); ok {
			msg = m
		}
		return s.fail(smsLog, fmt.Errorf("SMS API error (status %d): %s", resp.StatusCode, msg))
	}

	metrics.SMSSent.WithLabelValues(models.SMSStatusSent).Inc()
	s.logSMS(smsLog)
	return nil
}

func (s *TwilioService) fail(smsLog *models.SMSLog, err error) error {
	smsLog.Status = models.SMSStatusFailed
	smsLog.ErrorMessage = err.Error()
	metrics.SMSSent.WithLabelValues(models.SMSStatusFailed).Inc()
	s.logSMS(smsLog)
	return err
}

// logSMS logs the SMS to database, non-blocking.
func (s *TwilioService) logSMS(l *models.SMSLog) {
	if s.LogRepo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.LogRepo.Create(ctx, l)
	}()
}

// MockService prints messages to the console instead of sending them. Used
// when no Twilio credentials are configured.
type MockService struct {
	LogRepo LogRepo
}

func NewMockService() *MockService {
	return &MockService{}
}

func (s *MockService) SetLogRepository(repo LogRepo) {
	s.LogRepo = repo
}

func (s *MockService) SendSMS(phone, message, messageType string) error {
	fmt.Printf("\n========== MOCK SMS ==========\n")
	fmt.Printf("To: %s\n", phone)
	fmt.Printf("Type: %s\n", messageType)
	fmt.Printf("Message: %s\n", message)
	fmt.Printf("==============================\n\n")

	metrics.SMSSent.WithLabelValues(models.SMSStatusSent).Inc()

	if s.LogRepo != nil {
		smsLog := &models.SMSLog{
			Phone:       phone,
			MessageType: messageType,
			Message:     message,
			Status:      models.SMSStatusSent,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.LogRepo.Create(ctx, smsLog)
		}()
	}

	return nil
}
