package repositories

import (
	"context"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ComplaintRepository struct {
	DB *pgxpool.Pool
}

func NewComplaintRepository(db *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{DB: db}
}

const complaintColumns = `id, srn, citizen, phone, dept, category, status, date,
	location, COALESCE(lat, 0), COALESCE(lng, 0), remarks, description, created_at`

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(&c.ID, &c.SRN, &c.Citizen, &c.Phone, &c.Dept, &c.Category,
		&c.Status, &c.Date, &c.Location, &c.Coordinates.Lat, &c.Coordinates.Lng,
		&c.Remarks, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the complaint and its initial status event in one
// transaction. A duplicate SRN fails the insert; the caller does not retry.
func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO complaints(srn, citizen, phone, dept, category, status, date,
		                        location, lat, lng, remarks, description)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
         RETURNING id, created_at`,
		c.SRN, c.Citizen, c.Phone, c.Dept, c.Category, c.Status, c.Date,
		c.Location, c.Coordinates.Lat, c.Coordinates.Lng, c.Remarks, c.Description,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_events(record_type, ref, status, remarks, actor)
         VALUES($1, $2, $3, $4, $5)`,
		models.RecordTypeComplaint, c.SRN, c.Status, c.Remarks, "citizen")
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ComplaintRepository) GetBySRN(ctx context.Context, srn string) (*models.Complaint, error) {
	return scanComplaint(r.DB.QueryRow(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE srn=$1`, srn))
}

func (r *ComplaintRepository) ListByPhone(ctx context.Context, phone string) ([]*models.Complaint, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE phone=$1 ORDER BY created_at DESC`, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComplaints(rows)
}

func (r *ComplaintRepository) ListAll(ctx context.Context) ([]*models.Complaint, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+complaintColumns+` FROM complaints ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComplaints(rows)
}

func collectComplaints(rows pgx.Rows) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

// UpdateStatus overwrites status and remarks unconditionally (last writer
// wins) and appends the audit event in the same transaction. Returns the
// updated complaint, or pgx.ErrNoRows if the SRN is unknown.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, srn, status, remarks, actor string) (*models.Complaint, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	c, err := scanComplaint(tx.QueryRow(ctx,
		`UPDATE complaints SET status=$1, remarks=$2 WHERE srn=$3
         RETURNING `+complaintColumns, status, remarks, srn))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_events(record_type, ref, status, remarks, actor)
         VALUES($1, $2, $3, $4, $5)`,
		models.RecordTypeComplaint, srn, status, remarks, actor)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ComplaintRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM complaints WHERE status=$1`, status).Scan(&n)
	return n, err
}
