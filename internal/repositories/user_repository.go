package repositories

import (
	"context"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(name, phone, aadhaar)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		u.Name, u.Phone, u.Aadhaar,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, phone, aadhaar, created_at FROM users WHERE phone=$1`, phone)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Phone, &user.Aadhaar, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByPhoneOrAadhaar finds a user matching either identifier. Used by the
// registration duplicate check and the admin search screen.
func (r *UserRepository) GetByPhoneOrAadhaar(ctx context.Context, query string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, phone, aadhaar, created_at
         FROM users WHERE phone=$1 OR aadhaar=$1`, query)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Phone, &user.Aadhaar, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, phone, aadhaar, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Phone, &user.Aadhaar, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
