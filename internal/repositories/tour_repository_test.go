package repositories

import (
	"testing"

	"backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTourGetByRefMalformed(t *testing.T) {
	r := TourRepository{}
	for _, ref := range []string{"", "abc", "-1", "0", "12.5"} {
		if _, err := r.GetByRef(ref); !domain.IsNotFound(err) {
			t.Errorf("GetByRef(%q): expected not found, got %v", ref, err)
		}
	}
}

func TestTourGetByRef(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "location", "price_adult", "price_child"}).
		AddRow(3, "Desert Safari", "Dubai", 500.0, 200.0)
	mock.ExpectQuery("FROM tours").WithArgs(int64(3)).WillReturnRows(rows)

	r := TourRepository{DB: db}
	tour, err := r.GetByRef(" 3 ")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if tour.Title != "Desert Safari" || tour.PriceAdult != 500 {
		t.Fatalf("unexpected tour: %+v", tour)
	}
}
