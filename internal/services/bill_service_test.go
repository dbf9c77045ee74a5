package services

import (
	"context"
	"testing"
	"time"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBillCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := NewBillService(new(mockBillStore), new(mockNotificationStore), &mockSMS{})

	_, err := svc.Create(context.Background(), &models.CreateBillRequest{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(context.Background(), &models.CreateBillRequest{Amount: -50})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestBillCreateDueAtEndOfCivilDay(t *testing.T) {
	store := new(mockBillStore)
	notifs := new(mockNotificationStore)
	svc := NewBillService(store, notifs, &mockSMS{})

	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Bill")).Return(nil)
	notifs.On("Create", mock.Anything, mock.Anything).Return(nil)

	bill, err := svc.Create(context.Background(), &models.CreateBillRequest{
		UserPhone: "9876543210",
		Type:      "Electricity",
		Amount:    1200,
		LastDate:  "2026-09-15",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BillStatusUnpaid, bill.Status)
	assert.Equal(t, 15, bill.LastDate.Day())
	assert.Equal(t, 23, bill.LastDate.Hour())
	assert.Equal(t, 59, bill.LastDate.Minute())
	assert.Equal(t, timeutil.IST.String(), bill.LastDate.Location().String())
}

func TestBillListDerivesOverdueFineAtReadTime(t *testing.T) {
	store := new(mockBillStore)
	svc := NewBillService(store, new(mockNotificationStore), &mockSMS{})

	due := time.Date(2026, 9, 10, 23, 59, 59, 0, timeutil.IST)
	bills := []*models.Bill{
		{ID: 1, Amount: 1000, LastDate: due, Status: models.BillStatusUnpaid},
		{ID: 2, Amount: 1000, LastDate: due, Status: models.BillStatusPaid},
		{ID: 3, Amount: 333, LastDate: due, Status: models.BillStatusUnpaid},
	}
	store.On("ListByPhone", mock.Anything, "9876543210").Return(bills, nil)

	// Before the due date nothing is overdue.
	svc.now = fixedClock(time.Date(2026, 9, 10, 12, 0, 0, 0, timeutil.IST))
	views, err := svc.ListByPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.False(t, views[0].Overdue)
	assert.Equal(t, 1000.0, views[0].AmountDue)

	// After the due date the unpaid bills carry the rounded 10% fine.
	svc.now = fixedClock(time.Date(2026, 9, 11, 0, 0, 1, 0, timeutil.IST))
	views, err = svc.ListByPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.True(t, views[0].Overdue)
	assert.Equal(t, 1100.0, views[0].AmountDue)
	assert.False(t, views[1].Overdue, "paid bills never accrue a fine")
	assert.Equal(t, 1000.0, views[1].AmountDue)
	assert.Equal(t, 366.0, views[2].AmountDue, "fine is rounded to the nearest rupee")
}

func TestBillGetNotFound(t *testing.T) {
	store := new(mockBillStore)
	svc := NewBillService(store, new(mockNotificationStore), &mockSMS{})

	store.On("Get", mock.Anything, 42).Return(nil, assert.AnError)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBillNotFound)
}
