package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      entity.UserRole
}

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	// Register creates an account and returns it with a fresh token.
	Register(ctx context.Context, in RegisterInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// Authenticate resolves a bearer token to a live user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, update entity.ProfileUpdate) (*entity.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ListUsers(ctx context.Context, page, limit int) (*entity.UserPage, error)
	ChangeRole(ctx context.Context, actorID, userID, role string) (*entity.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
}
