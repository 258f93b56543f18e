package repositories

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type TourRepository struct {
	DB *sql.DB
}

func (r TourRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByRef resolves an opaque catalog reference. Malformed refs are reported
// as not-found so the price resolver can fall through without special cases.
func (r TourRepository) GetByRef(ref string) (models.Tour, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64)
	if err != nil || id <= 0 {
		return models.Tour{}, domain.NotFoundError{Resource: "tour"}
	}
	return r.GetByID(id)
}

func (r TourRepository) GetByID(id int64) (models.Tour, error) {
	var t models.Tour
	if id <= 0 {
		return t, domain.NotFoundError{Resource: "tour"}
	}
	db := r.db()
	if db == nil {
		return t, domain.InternalError{Msg: "db not available"}
	}

	err := db.QueryRow(`
		SELECT id, COALESCE(title,''), COALESCE(location,''),
		       COALESCE(price_adult,0), COALESCE(price_child,0)
		FROM tours WHERE id=? LIMIT 1
	`, id).Scan(&t.ID, &t.Title, &t.Location, &t.PriceAdult, &t.PriceChild)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, domain.NotFoundError{Resource: "tour"}
		}
		return t, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TourRepository) List() ([]models.Tour, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}
	rows, err := db.Query(`
		SELECT id, COALESCE(title,''), COALESCE(location,''),
		       COALESCE(price_adult,0), COALESCE(price_child,0)
		FROM tours ORDER BY id ASC
	`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Tour{}
	for rows.Next() {
		var t models.Tour
		if err := rows.Scan(&t.ID, &t.Title, &t.Location, &t.PriceAdult, &t.PriceChild); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
