package repositories

import (
	"fmt"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingCreateRollsBackOnItemFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO booking_items").
		WillReturnError(fmt.Errorf("constraint violation"))
	mock.ExpectRollback()

	b := models.Booking{
		GuestName:  "Fatima Noor",
		GuestEmail: "fatima@example.com",
		Items:      []models.BookingItem{{CatalogRef: "3", AdultCount: 1}},
	}
	r := BookingRepository{DB: db}
	if err := r.Create(&b); !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateAssignsPositions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO booking_items").
		WithArgs(int64(5), 0, "3", "", 1, 0, 0.0, 0.0, 0.0).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO booking_items").
		WithArgs(int64(5), 1, "7", "", 2, 0, 0.0, 0.0, 0.0).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	b := models.Booking{
		GuestName:  "Fatima Noor",
		GuestEmail: "fatima@example.com",
		Items: []models.BookingItem{
			{CatalogRef: "3", AdultCount: 1},
			{CatalogRef: "7", AdultCount: 2},
		},
	}
	r := BookingRepository{DB: db}
	if err := r.Create(&b); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if b.Items[0].Position != 0 || b.Items[1].Position != 1 {
		t.Fatalf("positions not assigned in order: %+v", b.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := BookingRepository{DB: db}
	if _, err := r.GetByID(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingGetByIDLoadsItemsInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "guest_name", "guest_email", "guest_contact",
		"pickup_point", "drop_point", "special_request",
		"subtotal", "fee_rate", "transaction_fee", "total_price",
		"status", "payment_status", "created_at",
	}).AddRow(
		5, nil, "Fatima Noor", "fatima@example.com", "+971501234567",
		"", "", "", 1200.0, 0.0375, 45.0, 1245.0,
		"pending", "pending", time.Now(),
	)
	mock.ExpectQuery("SELECT id, user_id").WithArgs(int64(5)).WillReturnRows(rows)

	itemRows := sqlmock.NewRows([]string{
		"id", "catalog_ref", "tour_date", "adult_count", "child_count",
		"adult_price", "child_price", "line_total", "position",
	}).
		AddRow(11, "3", "2026-09-15", 2, 1, 500.0, 200.0, 1200.0, 0).
		AddRow(12, "7", "2026-09-16", 1, 0, 300.0, 0.0, 300.0, 1)
	mock.ExpectQuery("FROM booking_items").WithArgs(int64(5)).WillReturnRows(itemRows)

	r := BookingRepository{DB: db}
	b, err := r.GetByID(5)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if len(b.Items) != 2 || b.Items[0].CatalogRef != "3" || b.Items[1].CatalogRef != "7" {
		t.Fatalf("items out of order: %+v", b.Items)
	}
	if b.UserID != 0 {
		t.Fatalf("guest booking must have zero user id, got %d", b.UserID)
	}
}

func TestBookingGetByIDInvalid(t *testing.T) {
	r := BookingRepository{}
	if _, err := r.GetByID(0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("confirmed", "paid", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := BookingRepository{DB: db}
	if err := r.UpdateStatuses(5, "confirmed", "paid"); err != nil {
		t.Fatalf("update error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
