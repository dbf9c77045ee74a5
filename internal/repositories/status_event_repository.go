package repositories

import (
	"context"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusEventRepository reads the append-only status audit log. Writes happen
// inside the owning record's transaction (see the complaint, service request
// and bill repositories), never through this type.
type StatusEventRepository struct {
	DB *pgxpool.Pool
}

func NewStatusEventRepository(db *pgxpool.Pool) *StatusEventRepository {
	return &StatusEventRepository{DB: db}
}

func (r *StatusEventRepository) ListByRef(ctx context.Context, recordType, ref string) ([]*models.StatusEvent, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, record_type, ref, status, remarks, actor, created_at
         FROM status_events
         WHERE record_type=$1 AND ref=$2
         ORDER BY created_at ASC, id ASC`, recordType, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.StatusEvent
	for rows.Next() {
		var e models.StatusEvent
		if err := rows.Scan(&e.ID, &e.RecordType, &e.Ref, &e.Status, &e.Remarks,
			&e.Actor, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
