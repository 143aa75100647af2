package repository

import (
	"context"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userSelect = `SELECT id, name, username, password, COALESCE(email, ''), dob, COALESCE(gender, ''), COALESCE(avatar, ''), role, created_at FROM users`

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Password, &u.Email, &u.DOB, &u.Gender, &u.Avatar, &u.Role, &u.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.UserRoleUser
	}
	err := r.db.QueryRow(ctx, `INSERT INTO users (name, username, password, email, dob, gender, avatar, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING id, created_at`,
		user.Name, user.Username, user.Password, user.Email, user.DOB, user.Gender, user.Avatar, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	return err
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, userSelect+` WHERE username = $1`, username))
}

var _ UserRepository = (*PGUserRepository)(nil)
