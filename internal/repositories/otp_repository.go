package repositories

import (
	"context"
	"time"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OTPRepository struct {
	DB *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{DB: db}
}

func (r *OTPRepository) Create(ctx context.Context, otp *models.OTPCode) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO otp_codes(phone, code_hash, purpose, expires_at)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		otp.Phone, otp.CodeHash, otp.Purpose, otp.ExpiresAt,
	).Scan(&otp.ID, &otp.CreatedAt)
}

// GetLatest returns the newest unverified, unexpired code for a phone.
func (r *OTPRepository) GetLatest(ctx context.Context, phone string) (*models.OTPCode, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, phone, code_hash, purpose, expires_at, attempts, verified, created_at
         FROM otp_codes
         WHERE phone=$1 AND verified=FALSE AND expires_at > NOW()
         ORDER BY created_at DESC LIMIT 1`, phone)

	var otp models.OTPCode
	err := row.Scan(&otp.ID, &otp.Phone, &otp.CodeHash, &otp.Purpose,
		&otp.ExpiresAt, &otp.Attempts, &otp.Verified, &otp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) IncrementAttempts(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE otp_codes SET attempts = attempts + 1 WHERE id=$1`, id)
	return err
}

func (r *OTPRepository) MarkVerified(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE otp_codes SET verified=TRUE WHERE id=$1`, id)
	return err
}

// CountRecentRequests counts codes issued to a phone within the window, for
// rate limiting.
func (r *OTPRepository) CountRecentRequests(ctx context.Context, phone string, window time.Duration) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM otp_codes WHERE phone=$1 AND created_at > NOW() - $2::interval`,
		phone, window.String()).Scan(&n)
	return n, err
}
