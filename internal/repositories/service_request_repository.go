package repositories

import (
	"context"
	"encoding/json"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRequestRepository struct {
	DB *pgxpool.Pool
}

func NewServiceRequestRepository(db *pgxpool.Pool) *ServiceRequestRepository {
	return &ServiceRequestRepository{DB: db}
}

const requestColumns = `id, srn, user_id, form_type, details, pdf_path, status, remarks, submitted_at`

func scanRequest(row pgx.Row) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	var details []byte
	err := row.Scan(&req.ID, &req.SRN, &req.UserID, &req.FormType, &details,
		&req.PDFPath, &req.Status, &req.Remarks, &req.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &req.Details); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ServiceRequestRepository) Create(ctx context.Context, req *models.ServiceRequest) error {
	details, err := json.Marshal(req.Details)
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO service_requests(srn, user_id, form_type, details, pdf_path, status, remarks)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, submitted_at`,
		req.SRN, req.UserID, req.FormType, details, req.PDFPath, req.Status, req.Remarks,
	).Scan(&req.ID, &req.SubmittedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_events(record_type, ref, status, remarks, actor)
         VALUES($1, $2, $3, $4, $5)`,
		models.RecordTypeServiceRequest, req.SRN, req.Status, req.Remarks, "citizen")
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ServiceRequestRepository) GetBySRN(ctx context.Context, srn string) (*models.ServiceRequest, error) {
	return scanRequest(r.DB.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM service_requests WHERE srn=$1`, srn))
}

// ListForPhone returns requests linked to the user with this phone, plus any
// unlinked requests whose form details carry the number.
func (r *ServiceRequestRepository) ListForPhone(ctx context.Context, userID *int, phone string) ([]*models.ServiceRequest, error) {
	var rows pgx.Rows
	var err error
	if userID != nil {
		rows, err = r.DB.Query(ctx,
			`SELECT `+requestColumns+` FROM service_requests
			 WHERE user_id=$1
			    OR details->>'phone'=$2
			    OR details->>'contact_number'=$2
			    OR details->>'phoneNumber'=$2
			 ORDER BY submitted_at DESC`, *userID, phone)
	} else {
		rows, err = r.DB.Query(ctx,
			`SELECT `+requestColumns+` FROM service_requests
			 WHERE details->>'phone'=$1
			    OR details->>'contact_number'=$1
			    OR details->>'phoneNumber'=$1
			 ORDER BY submitted_at DESC`, phone)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *ServiceRequestRepository) ListByUserID(ctx context.Context, userID int) ([]*models.ServiceRequest, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+requestColumns+` FROM service_requests
         WHERE user_id=$1 ORDER BY submitted_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *ServiceRequestRepository) ListBySRN(ctx context.Context, srn string) ([]*models.ServiceRequest, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+requestColumns+` FROM service_requests WHERE srn=$1`, srn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *ServiceRequestRepository) ListAll(ctx context.Context) ([]*models.ServiceRequest, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+requestColumns+` FROM service_requests ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]*models.ServiceRequest, error) {
	var requests []*models.ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateStatus overwrites status and remarks and appends the audit event in
// one transaction. Returns pgx.ErrNoRows if the SRN is unknown.
func (r *ServiceRequestRepository) UpdateStatus(ctx context.Context, srn, status, remarks, actor string) (*models.ServiceRequest, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	req, err := scanRequest(tx.QueryRow(ctx,
		`UPDATE service_requests SET status=$1, remarks=$2 WHERE srn=$3
         RETURNING `+requestColumns, status, remarks, srn))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_events(record_type, ref, status, remarks, actor)
         VALUES($1, $2, $3, $4, $5)`,
		models.RecordTypeServiceRequest, srn, status, remarks, actor)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *ServiceRequestRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM service_requests WHERE status=$1`, status).Scan(&n)
	return n, err
}
