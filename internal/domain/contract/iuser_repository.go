package contract

import (
	"context"

	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

type IUserRepository interface {
	// CreateUser inserts a user. Returns ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by exact email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateUser persists profile fields, role and password hash of an existing user.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	// ListUsers returns one page of users, newest first, and the total count.
	ListUsers(ctx context.Context, offset, limit int) ([]entity.User, int, error)
	DeleteUser(ctx context.Context, id string) error
}
