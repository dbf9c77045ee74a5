package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"nagarsetu-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signPayment(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	sig := signPayment("order_abc", "pay_xyz", secret)

	assert.True(t, VerifySignature("order_abc", "pay_xyz", sig, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", sig, "other_secret"))
	assert.False(t, VerifySignature("order_abc", "pay_other", sig, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "deadbeef", secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", sig, ""), "empty secret never verifies")
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	store := new(mockBillStore)
	svc := NewRazorpayService("key", "secret", "", store)

	_, err := svc.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: "tampered",
		BillID:            1,
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	store.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPaymentMarksBillPaid(t *testing.T) {
	store := new(mockBillStore)
	svc := NewRazorpayService("key", "secret", "", store)

	paid := time.Now()
	paidBill := &models.Bill{
		ID:                5,
		Status:            models.BillStatusPaid,
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		DatePaid:          &paid,
	}
	store.On("MarkPaid", mock.Anything, 5, "order_abc", "pay_xyz", 1100.0, mock.AnythingOfType("time.Time")).
		Return(paidBill, nil)

	bill, err := svc.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: signPayment("order_abc", "pay_xyz", "secret"),
		BillID:            5,
		Amount:            1100,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BillStatusPaid, bill.Status)
	assert.Equal(t, "order_abc", bill.RazorpayOrderID)
	assert.Equal(t, "pay_xyz", bill.RazorpayPaymentID)
	assert.NotNil(t, bill.DatePaid)
	store.AssertExpectations(t)
}

func TestCreateOrderRejectsInvalidAmount(t *testing.T) {
	svc := NewRazorpayService("key", "secret", "", new(mockBillStore))

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
