package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/internal/domain/repository"
)

const uniqueViolation = "23505"

// Unique indexes from db/migrations.
const (
	emailIndex    = "users_email_key"
	usernameIndex = "users_username_key"
)

const userColumns = `id, username, email, password_hash, firstname, lastname, role, image, joined_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, firstname, lastname, role, image, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, updated_at
	`, u.Username, strings.ToLower(u.Email), u.Password, u.Firstname, u.Lastname, string(u.Role), u.Image, u.JoinedAt)

	if err := row.Scan(&u.ID, &u.UpdatedAt); err != nil {
		return mapWriteErr(err)
	}
	u.Email = strings.ToLower(u.Email)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id::text = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY joined_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	u.Email = strings.ToLower(u.Email)

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, firstname = $4, lastname = $5,
		    role = $6, image = $7, updated_at = $8
		WHERE id::text = $9
	`, u.Username, u.Email, u.Password, u.Firstname, u.Lastname, string(u.Role), u.Image, u.UpdatedAt, u.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	if err := scanUser(r.pool.QueryRow(ctx, query, arg), u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row, u *entity.User) error {
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Firstname, &u.Lastname,
		&role, &u.Image, &u.JoinedAt, &u.UpdatedAt); err != nil {
		return err
	}
	u.Role = entity.Role(role)
	return nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case emailIndex:
		return repository.ErrDuplicateEmail
	case usernameIndex:
		return repository.ErrDuplicateUsername
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
