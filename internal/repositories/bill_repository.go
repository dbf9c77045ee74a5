package repositories

import (
	"context"
	"strconv"
	"time"

	"nagarsetu-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillRepository struct {
	DB *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{DB: db}
}

const billColumns = `id, user_phone, type, amount, release_date, last_date, status,
	razorpay_order_id, razorpay_payment_id, date_paid`

func scanBill(row pgx.Row) (*models.Bill, error) {
	var b models.Bill
	err := row.Scan(&b.ID, &b.UserPhone, &b.Type, &b.Amount, &b.ReleaseDate,
		&b.LastDate, &b.Status, &b.RazorpayOrderID, &b.RazorpayPaymentID, &b.DatePaid)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) Create(ctx context.Context, b *models.Bill) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO bills(user_phone, type, amount, release_date, last_date, status)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id`,
		b.UserPhone, b.Type, b.Amount, b.ReleaseDate, b.LastDate, b.Status,
	).Scan(&b.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_events(record_type, ref, status, remarks, actor)
         VALUES($1, $2, $3, $4, $5)`,
		models.RecordTypeBill, strconv.Itoa(b.ID), b.Status, "Bill released", "admin")
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *BillRepository) Get(ctx context.Context, id int) (*models.Bill, error) {
	return scanBill(r.DB.QueryRow(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id=$1`, id))
}

func (r *BillRepository) ListByPhone(ctx context.Context, phone string) ([]*models.Bill, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+billColumns+` FROM bills WHERE user_phone=$1 ORDER BY release_date DESC`, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBills(rows)
}

func (r *BillRepository) ListPaidByPhone(ctx context.Context, phone string) ([]*models.Bill, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+billColumns+` FROM bills
         WHERE user_phone=$1 AND status=$2 ORDER BY date_paid DESC`,
		phone, models.BillStatusPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBills(rows)
}

func collectBills(rows pgx.Rows) ([]*models.Bill, error) {
	var bills []*models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// MarkPaid sets the bill to Paid with both gateway identifiers, the payment
// timestamp and the amount actually charged, and appends the audit event in
// the same transaction.
func (r *BillRepository) MarkPaid(ctx context.Context, id int, orderID, paymentID string, amount float64, paidAt time.Time) (*models.Bill, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := scanBill(tx.QueryRow(ctx,
		`UPDATE bills
         SET status=$1, razorpay_order_id=$2, razorpay_payment_id=$3, amount=$4, date_paid=$5
         WHERE id=$6
         RETURNING `+billColumns,
		models.BillStatusPaid, orderID, paymentID, amount, paidAt, id))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_events(record_type, ref, status, remarks, actor)
         VALUES($1, $2, $3, $4, $5)`,
		models.RecordTypeBill, strconv.Itoa(id), models.BillStatusPaid,
		"Payment "+paymentID, "system")
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}
