package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"nagarsetu-backend/internal/metrics"
	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/timeutil"

	razorpay "github.com/razorpay/razorpay-go"
)

type RazorpayService struct {
	Bills BillStore

	keyID         string
	keySecret     string
	webhookSecret string

	client *razorpay.Client
	now    func() time.Time
}

func NewRazorpayService(keyID, keySecret, webhookSecret string, bills BillStore) *RazorpayService {
	s := &RazorpayService{
		Bills:         bills,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		now:           timeutil.Now,
	}
	if keyID != "" && keySecret != "" {
		s.client = razorpay.NewClient(keyID, keySecret)
	}
	return s
}

// KeyID is exposed to the frontend for the checkout widget.
func (s *RazorpayService) KeyID() string {
	return s.keyID
}

// CreateOrder validates the amount, converts it to paise and creates a
// gateway order. The gateway call is synchronous with no retry; an outage
// surfaces directly as a failed response.
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.client == nil {
		return nil, fmt.Errorf("payment gateway not configured")
	}

	amountPaise := int(math.Round(req.Amount * 100))

	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("rcpt_bill_%d", s.now().Unix()),
	}
	if req.BillID != 0 {
		orderData["notes"] = map[string]interface{}{"bill_id": req.BillID}
	}

	order, err := s.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("payment gateway communication failed: %w", err)
	}

	orderID, _ := order["id"].(string)
	return &models.CreateOrderResponse{
		OrderID:  orderID,
		Currency: "INR",
		Amount:   amountPaise,
	}, nil
}

// VerifyPayment checks the gateway signature and, in a single transaction,
// marks the bill paid with both gateway ids and the payment timestamp. A
// bad signature rejects the callback outright.
func (s *RazorpayService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.Bill, error) {
	if !VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.keySecret) {
		return nil, ErrInvalidSignature
	}

	bill, err := s.Bills.MarkPaid(ctx, req.BillID, req.RazorpayOrderID, req.RazorpayPaymentID,
		req.Amount, s.now())
	if err != nil {
		return nil, ErrBillNotFound
	}

	metrics.PaymentsCaptured.Inc()
	return bill, nil
}

// VerifySignature checks the HMAC-SHA256 payment signature Razorpay attaches
// to a successful checkout: hex(HMAC(orderID + "|" + paymentID, keySecret)).
func VerifySignature(orderID, paymentID, signature, keySecret string) bool {
	if keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the signature on webhook deliveries.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
