package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Upsert writes a payment attempt keyed by (booking_id, transaction_id).
// Duplicate webhook deliveries for the same gateway transaction update the
// existing row instead of creating a second one.
func (r PaymentRepository) Upsert(p models.Payment) error {
	if p.BookingID <= 0 {
		return domain.ValidationError{Field: "bookingId", Msg: "invalid booking id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	var info any
	if len(p.PaymentInfo) > 0 {
		info = []byte(p.PaymentInfo)
	}
	_, err := db.Exec(`
		INSERT INTO payments
			(booking_id, transaction_id, amount, currency, status, method, gateway, payment_info, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())
		ON DUPLICATE KEY UPDATE
			amount=VALUES(amount),
			status=VALUES(status),
			method=VALUES(method),
			payment_info=COALESCE(VALUES(payment_info), payment_info),
			updated_at=NOW()
	`, p.BookingID, p.TransactionID, p.Amount, p.Currency, p.Status, p.Method, p.Gateway, info)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	var p models.Payment
	if bookingID <= 0 {
		return p, domain.ValidationError{Field: "bookingId", Msg: "invalid booking id"}
	}
	db := r.db()
	if db == nil {
		return p, domain.InternalError{Msg: "db not available"}
	}

	var info sql.NullString
	err := db.QueryRow(`
		SELECT id, booking_id, COALESCE(transaction_id,''), amount, currency, status,
		       COALESCE(method,''), gateway, payment_info, created_at, updated_at
		FROM payments WHERE booking_id=?
		ORDER BY updated_at DESC, id DESC LIMIT 1
	`, bookingID).Scan(
		&p.ID, &p.BookingID, &p.TransactionID, &p.Amount, &p.Currency, &p.Status,
		&p.Method, &p.Gateway, &info, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, domain.NotFoundError{Resource: "payment"}
		}
		return p, domain.InternalError{Err: err}
	}
	if info.Valid {
		p.PaymentInfo = json.RawMessage(info.String)
	}
	return p, nil
}
