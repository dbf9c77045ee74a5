package models

import (
	"math"
	"time"
)

const (
	BillStatusUnpaid = "Unpaid"
	BillStatusPaid   = "Paid"

	// OverdueFineRate is the surcharge applied to a bill past its due date.
	OverdueFineRate = 0.10
)

// Bill is an amount owed by a citizen to a utility department. The overdue
// fine is never persisted: it is derived from (amount, lastDate, now) on
// every read, so the stored amount stays the base amount until payment.
type Bill struct {
	ID                int        `json:"id"`
	UserPhone         string     `json:"userPhone"`
	Type              string     `json:"type"` // Electricity, Water, etc.
	Amount            float64    `json:"amount"`
	ReleaseDate       time.Time  `json:"releaseDate"`
	LastDate          time.Time  `json:"lastDate"`
	Status            string     `json:"status"`
	RazorpayOrderID   string     `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string     `json:"razorpay_payment_id,omitempty"`
	DatePaid          *time.Time `json:"datePaid,omitempty"`
}

// IsOverdue reports whether the bill is unpaid past its due date.
func (b *Bill) IsOverdue(now time.Time) bool {
	return b.Status == BillStatusUnpaid && b.LastDate.Before(now)
}

// AmountDue returns the amount payable at the given instant: the base amount,
// or base plus the 10% fine once the due date has passed.
func (b *Bill) AmountDue(now time.Time) float64 {
	if b.IsOverdue(now) {
		return math.Round(b.Amount * (1 + OverdueFineRate))
	}
	return b.Amount
}

// BillView is a Bill plus the read-time derived overdue fields.
type BillView struct {
	Bill
	Overdue   bool    `json:"overdue"`
	AmountDue float64 `json:"amountDue"`
}

// NewBillView derives the view at the given instant.
func NewBillView(b *Bill, now time.Time) BillView {
	return BillView{
		Bill:      *b,
		Overdue:   b.IsOverdue(now),
		AmountDue: b.AmountDue(now),
	}
}

type CreateBillRequest struct {
	UserPhone string  `json:"userPhone"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	LastDate  string  `json:"lastDate"` // "2006-01-02", IST civil date
}

type CreateOrderRequest struct {
	Amount float64 `json:"amount"`
	BillID int     `json:"billId"`
}

type CreateOrderResponse struct {
	OrderID  string `json:"id"`
	Currency string `json:"currency"`
	Amount   int    `json:"amount"` // paise
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string  `json:"razorpay_order_id"`
	RazorpayPaymentID string  `json:"razorpay_payment_id"`
	RazorpaySignature string  `json:"razorpay_signature"`
	BillID            int     `json:"billId"`
	Amount            float64 `json:"amount"`
}
