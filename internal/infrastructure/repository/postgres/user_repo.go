package postgres

import (
	"context"
	"database/sql"

	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

const userColumns = `id, email, password_hash, first_name, last_name, role, is_verified, profile_image, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

var _ contract.IUserRepository = (*UserRepository)(nil)

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u    entity.User
		role string
		img  sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.IsVerified, &img, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = entity.UserRole(role)
	if img.Valid {
		u.ProfileImage = &img.String
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_verified, profile_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::user_role, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		string(user.Role), user.IsVerified, user.ProfileImage, user.CreatedAt, user.UpdatedAt)
	return mapError(err)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `UPDATE users
		SET first_name = $2, last_name = $3, role = $4::user_role, profile_image = $5, password_hash = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, string(user.Role), user.ProfileImage, user.PasswordHash, user.UpdatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, offset, limit int) ([]entity.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, mapError(err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err)
	}
	return users, total, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return contract.ErrNotFound
	}
	return nil
}
