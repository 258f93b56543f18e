package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	db := r.db()
	if db == nil {
		return u, domain.InternalError{Msg: "db not available"}
	}
	err := db.QueryRow(`
		SELECT id, name, email, COALESCE(phone,''), password_hash, role, created_at
		FROM users WHERE email=? LIMIT 1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "user"}
		}
		return u, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	if id <= 0 {
		return u, domain.NotFoundError{Resource: "user"}
	}
	db := r.db()
	if db == nil {
		return u, domain.InternalError{Msg: "db not available"}
	}
	err := db.QueryRow(`
		SELECT id, name, email, COALESCE(phone,''), password_hash, role, created_at
		FROM users WHERE id=? LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "user"}
		}
		return u, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepository) Create(u *models.User) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	res, err := db.Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, created_at, updated_at)
		VALUES (?,?,?,?,?,NOW(),NOW())
	`, u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.Phone, u.PasswordHash, u.Role)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	u.ID = id
	return nil
}
