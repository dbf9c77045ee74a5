package repositories

import (
	"context"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO notifications(title, body, target)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		n.Title, n.Body, n.Target,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *NotificationRepository) List(ctx context.Context) ([]*models.Notification, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, title, body, target, created_at
         FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Target, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// Update edits title, body and target in place; the id never changes.
func (r *NotificationRepository) Update(ctx context.Context, id int, title, body, target string) (*models.Notification, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE notifications SET title=$1, body=$2, target=$3 WHERE id=$4
         RETURNING id, title, body, target, created_at`,
		title, body, target, id)

	var n models.Notification
	if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Target, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM notifications WHERE id=$1`, id)
	return err
}
