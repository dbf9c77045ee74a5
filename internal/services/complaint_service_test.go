package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"nagarsetu-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var srnPattern = regexp.MustCompile(`^SRN-\d{8}$`)

func TestComplaintSubmitAssignsSRNAndDefaults(t *testing.T) {
	store := new(mockComplaintStore)
	notifs := new(mockNotificationStore)
	provider := &mockSMS{}
	svc := NewComplaintService(store, notifs, provider)

	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Complaint")).Return(nil)

	c, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{
		Citizen:     "Ramesh Kumar",
		Phone:       "9876543210",
		Dept:        "Water",
		Category:    "Leakage",
		Location:    "Ward 12",
		Description: "Pipe burst near market",
	})
	require.NoError(t, err)

	assert.Regexp(t, srnPattern, c.SRN)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, models.DefaultComplaintRemarks, c.Remarks)
	require.Len(t, provider.Sent, 1)
	assert.Contains(t, provider.Sent[0].Message, c.SRN)
	store.AssertExpectations(t)
}

func TestComplaintSubmitSucceedsWhenSMSFails(t *testing.T) {
	store := new(mockComplaintStore)
	notifs := new(mockNotificationStore)
	provider := &mockSMS{Err: errors.New("twilio down")}
	svc := NewComplaintService(store, notifs, provider)

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{
		Citizen: "Sita Devi",
		Phone:   "9876543211",
		Dept:    "Electricity",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.SRN)
}

func TestComplaintSubmitStoreFailure(t *testing.T) {
	store := new(mockComplaintStore)
	notifs := new(mockNotificationStore)
	svc := NewComplaintService(store, notifs, &mockSMS{})

	store.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate key"))

	_, err := svc.Submit(context.Background(), &models.SubmitComplaintRequest{Phone: "9876543212"})
	assert.Error(t, err)
}

func TestComplaintUpdateStatusUnknownSRN(t *testing.T) {
	store := new(mockComplaintStore)
	notifs := new(mockNotificationStore)
	svc := NewComplaintService(store, notifs, &mockSMS{})

	store.On("UpdateStatus", mock.Anything, "SRN-99999999", "Completed", "done", "admin").
		Return(nil, errors.New("no rows"))

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		SRN:     "SRN-99999999",
		Status:  "Completed",
		Remarks: "done",
	}, "admin")
	assert.ErrorIs(t, err, ErrSRNNotFound)
}

func TestComplaintUpdateStatusFansOut(t *testing.T) {
	store := new(mockComplaintStore)
	notifs := new(mockNotificationStore)
	provider := &mockSMS{}
	svc := NewComplaintService(store, notifs, provider)

	updated := &models.Complaint{
		SRN:     "SRN-12345678",
		Phone:   "9876543210",
		Status:  models.StatusAssigned,
		Remarks: "Crew dispatched",
	}
	store.On("UpdateStatus", mock.Anything, "SRN-12345678", models.StatusAssigned, "Crew dispatched", "admin").
		Return(updated, nil)
	notifs.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Target == "9876543210"
	})).Return(nil)

	c, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		SRN:     "SRN-12345678",
		Status:  models.StatusAssigned,
		Remarks: "Crew dispatched",
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, c.Status)

	require.Len(t, provider.Sent, 1)
	assert.Contains(t, provider.Sent[0].Message, models.StatusAssigned)
	notifs.AssertExpectations(t)
}

func TestGenerateSRNFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		srn := GenerateSRN()
		assert.Regexp(t, srnPattern, srn)
		seen[srn] = true
	}
	// 100 draws from a 90M space should not collide
	assert.Greater(t, len(seen), 95)
}
