package services

import (
	"bytes"
	"context"
	"fmt"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders payment receipts for paid bills.
type ReceiptService struct {
	Bills BillStore
}

func NewReceiptService(bills BillStore) *ReceiptService {
	return &ReceiptService{Bills: bills}
}

// Receipt generates the PDF receipt for a bill. Only paid bills have
// receipts; an unpaid bill returns ErrBillNotPaid.
func (s *ReceiptService) Receipt(ctx context.Context, billID int) ([]byte, error) {
	bill, err := s.Bills.Get(ctx, billID)
	if err != nil {
		return nil, ErrBillNotFound
	}
	if bill.Status != models.BillStatusPaid {
		return nil, ErrBillNotPaid
	}
	return GenerateReceiptPDF(bill)
}

// GenerateReceiptPDF renders a one-page A4 receipt for a paid bill.
func GenerateReceiptPDF(bill *models.Bill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Nagar-Setu - Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Bill Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Bill Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Bill No: %d", bill.ID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Type: %s", bill.Type), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", bill.UserPhone), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Released: %s", timeutil.ToIST(bill.ReleaseDate).Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Due Date: %s", timeutil.ToIST(bill.LastDate).Format("02-Jan-2006")), "LB", 0, "L", false, 0, "")
	paidOn := ""
	if bill.DatePaid != nil {
		paidOn = timeutil.ToIST(*bill.DatePaid).Format("02-Jan-2006 03:04 PM")
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Paid On: %s", paidOn), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Payment Details
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Order ID: %s", bill.RazorpayOrderID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Payment ID: %s", bill.RazorpayPaymentID), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Amount - highlighted
	pdf.SetFillColor(200, 255, 200)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, fmt.Sprintf("Amount Paid: Rs. %.2f", bill.Amount), "1", 1, "C", true, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
