package repositories

import (
	"context"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	DB *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO admins(email, password_hash, role)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		a.Email, a.PasswordHash, a.Role,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, email, password_hash, role, totp_secret, totp_enabled, created_at
         FROM admins WHERE email=$1`, email)

	var admin models.Admin
	err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Role,
		&admin.TOTPSecret, &admin.TOTPEnabled, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE admins SET totp_secret=$1, totp_enabled=FALSE WHERE id=$2`, secret, id)
	return err
}

func (r *AdminRepository) EnableTOTP(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE admins SET totp_enabled=TRUE WHERE id=$1`, id)
	return err
}
