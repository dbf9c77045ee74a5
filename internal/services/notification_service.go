package services

import (
	"context"
	"encoding/json"

	"nagarsetu-backend/internal/cache"
	"nagarsetu-backend/internal/models"
)

// NotificationService manages the announcement board. Broadcasts and direct
// notices share one table; the target column tells them apart.
type NotificationService struct {
	Store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{Store: store}
}

func (s *NotificationService) Create(ctx context.Context, req *models.NotificationRequest) (*models.Notification, error) {
	target := models.ParseTarget(req.Target)
	n := &models.Notification{
		Title:  req.Title,
		Body:   req.Body,
		Target: target.String(),
	}
	if err := s.Store.Create(ctx, n); err != nil {
		return nil, err
	}
	cache.InvalidateNotifications(ctx)
	return n, nil
}

// List returns every notification, newest first. Citizens filter broadcasts
// versus their own direct notices client-side, so one cached payload serves
// all of them.
func (s *NotificationService) List(ctx context.Context) ([]*models.Notification, error) {
	if data, ok := cache.GetCached(ctx, cache.NotificationsKey); ok {
		var cached []*models.Notification
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(list); err == nil {
		cache.SetCached(ctx, cache.NotificationsKey, data, cache.NotificationsTTL)
	}
	return list, nil
}

func (s *NotificationService) Update(ctx context.Context, id int, req *models.NotificationRequest) (*models.Notification, error) {
	target := models.ParseTarget(req.Target)
	n, err := s.Store.Update(ctx, id, req.Title, req.Body, target.String())
	if err != nil {
		return nil, err
	}
	cache.InvalidateNotifications(ctx)
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id int) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateNotifications(ctx)
	return nil
}
