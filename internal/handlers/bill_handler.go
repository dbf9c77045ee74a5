package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/services"
	"nagarsetu-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BillHandler struct {
	Bills    *services.BillService
	Payments *services.RazorpayService
	Receipts *services.ReceiptService
}

func NewBillHandler(bills *services.BillService, payments *services.RazorpayService,
	receipts *services.ReceiptService) *BillHandler {
	return &BillHandler{Bills: bills, Payments: payments, Receipts: receipts}
}

func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Bills.Create(context.Background(), &req)
	if errors.Is(err, services.ErrInvalidAmount) {
		utils.Error(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to create bill")
		return
	}

	utils.OK(w, map[string]interface{}{"bill": bill})
}

func (h *BillHandler) UserBills(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	bills, err := h.Bills.ListByPhone(context.Background(), phone)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch bills")
		return
	}
	if bills == nil {
		bills = []models.BillView{}
	}

	utils.OK(w, map[string]interface{}{"bills": bills})
}

func (h *BillHandler) History(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	bills, err := h.Bills.History(context.Background(), phone)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch payment history")
		return
	}
	if bills == nil {
		bills = []*models.Bill{}
	}

	utils.OK(w, map[string]interface{}{"history": bills})
}

func (h *BillHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Payments.CreateOrder(context.Background(), &req)
	if errors.Is(err, services.ErrInvalidAmount) {
		utils.Error(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to create payment order")
		return
	}

	utils.JSON(w, http.StatusOK, order)
}

func (h *BillHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Payments.VerifyPayment(context.Background(), &req)
	if errors.Is(err, services.ErrInvalidSignature) {
		utils.Error(w, http.StatusBadRequest, "Payment verification failed")
		return
	}
	if errors.Is(err, services.ErrBillNotFound) {
		utils.Error(w, http.StatusNotFound, "Bill not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Payment verification failed")
		return
	}

	utils.OK(w, map[string]interface{}{
		"message": "Payment verified",
		"bill":    bill,
	})
}

func (h *BillHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	pdf, err := h.Receipts.Receipt(context.Background(), id)
	if errors.Is(err, services.ErrBillNotFound) {
		utils.Error(w, http.StatusNotFound, "Bill not found")
		return
	}
	if errors.Is(err, services.ErrBillNotPaid) {
		utils.Error(w, http.StatusBadRequest, "Receipt is available only for paid bills")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.pdf", id))
	w.Write(pdf)
}
