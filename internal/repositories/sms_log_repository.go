package repositories

import (
	"context"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SMSLogRepository struct {
	DB *pgxpool.Pool
}

func NewSMSLogRepository(db *pgxpool.Pool) *SMSLogRepository {
	return &SMSLogRepository{DB: db}
}

func (r *SMSLogRepository) Create(ctx context.Context, l *models.SMSLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO sms_logs(phone, message_type, message, status, error_message)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		l.Phone, l.MessageType, l.Message, l.Status, l.ErrorMessage,
	).Scan(&l.ID, &l.CreatedAt)
}
