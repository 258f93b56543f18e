package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	dbutil "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create persists the priced snapshot and its items in one transaction.
// Item insertion order is preserved via the position column.
func (r BookingRepository) Create(b *models.Booking) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO bookings
			(user_id, guest_name, guest_email, guest_contact,
			 pickup_point, drop_point, special_request,
			 subtotal, fee_rate, transaction_fee, total_price,
			 status, payment_status, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())
	`,
		nullID(b.UserID),
		dbutil.NullIfEmpty(b.GuestName),
		dbutil.NullIfEmpty(strings.ToLower(strings.TrimSpace(b.GuestEmail))),
		dbutil.NullIfEmpty(b.GuestContact),
		b.PickupPoint, b.DropPoint, dbutil.NullIfEmpty(b.SpecialRequest),
		b.Subtotal, b.FeeRate, b.TransactionFee, b.TotalPrice,
		b.Status, b.PaymentStatus,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	b.ID = id

	for i := range b.Items {
		it := &b.Items[i]
		it.Position = i
		ires, err := tx.Exec(`
			INSERT INTO booking_items
				(booking_id, position, catalog_ref, tour_date,
				 adult_count, child_count, adult_price, child_price, line_total)
			VALUES (?,?,?,?,?,?,?,?,?)
		`, id, i, it.CatalogRef, it.Date, it.AdultCount, it.ChildCount, it.AdultPrice, it.ChildPrice, it.LineTotal)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if itemID, err := ires.LastInsertId(); err == nil {
			it.ID = itemID
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	var b models.Booking
	if id <= 0 {
		return b, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	db := r.db()
	if db == nil {
		return b, domain.InternalError{Msg: "db not available"}
	}

	var userID sql.NullInt64
	err := db.QueryRow(`
		SELECT id, user_id,
		       COALESCE(guest_name,''), COALESCE(guest_email,''), COALESCE(guest_contact,''),
		       COALESCE(pickup_point,''), COALESCE(drop_point,''), COALESCE(special_request,''),
		       subtotal, fee_rate, transaction_fee, total_price,
		       status, payment_status, created_at
		FROM bookings WHERE id=? LIMIT 1
	`, id).Scan(
		&b.ID, &userID,
		&b.GuestName, &b.GuestEmail, &b.GuestContact,
		&b.PickupPoint, &b.DropPoint, &b.SpecialRequest,
		&b.Subtotal, &b.FeeRate, &b.TransactionFee, &b.TotalPrice,
		&b.Status, &b.PaymentStatus, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "booking"}
		}
		return b, domain.InternalError{Err: err}
	}
	if userID.Valid {
		b.UserID = userID.Int64
	}

	items, err := r.itemsFor(db, b.ID)
	if err != nil {
		return b, err
	}
	b.Items = items
	return b, nil
}

func (r BookingRepository) itemsFor(db *sql.DB, bookingID int64) ([]models.BookingItem, error) {
	rows, err := db.Query(`
		SELECT id, catalog_ref, tour_date, adult_count, child_count,
		       adult_price, child_price, line_total, position
		FROM booking_items WHERE booking_id=? ORDER BY position ASC
	`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	items := []models.BookingItem{}
	for rows.Next() {
		var it models.BookingItem
		if err := rows.Scan(&it.ID, &it.CatalogRef, &it.Date, &it.AdultCount, &it.ChildCount,
			&it.AdultPrice, &it.ChildPrice, &it.LineTotal, &it.Position); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return items, nil
}

// ListByUser returns the owner path: only bookings of this user, newest first.
func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	return r.list(`WHERE user_id=?`, userID)
}

// ListAll is the admin view, newest first.
func (r BookingRepository) ListAll() ([]models.Booking, error) {
	return r.list(``)
}

func (r BookingRepository) list(where string, args ...any) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}
	rows, err := db.Query(`
		SELECT id, user_id,
		       COALESCE(guest_name,''), COALESCE(guest_email,''), COALESCE(guest_contact,''),
		       COALESCE(pickup_point,''), COALESCE(drop_point,''), COALESCE(special_request,''),
		       subtotal, fee_rate, transaction_fee, total_price,
		       status, payment_status, created_at
		FROM bookings `+where+` ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var userID sql.NullInt64
		if err := rows.Scan(
			&b.ID, &userID,
			&b.GuestName, &b.GuestEmail, &b.GuestContact,
			&b.PickupPoint, &b.DropPoint, &b.SpecialRequest,
			&b.Subtotal, &b.FeeRate, &b.TransactionFee, &b.TotalPrice,
			&b.Status, &b.PaymentStatus, &b.CreatedAt,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		if userID.Valid {
			b.UserID = userID.Int64
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	for i := range out {
		items, err := r.itemsFor(db, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// UpdateStatuses persists the status pair produced by the transition rules.
func (r BookingRepository) UpdateStatuses(id int64, status, paymentStatus string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	res, err := db.Exec(`UPDATE bookings SET status=?, payment_status=?, updated_at=NOW() WHERE id=?`,
		status, paymentStatus, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports 0 both for missing rows and no-op updates; the
		// service fetches the booking first, so missing rows end earlier.
		return nil
	}
	return nil
}

func nullID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
