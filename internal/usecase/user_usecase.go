package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// Constants for common error messages
const (
	errUserNotFound      = "User not found"
	errUserExists        = "User already exists with this email"
	errInvalidCredential = "Invalid email or password"
)

// ErrUnknownSubject is returned by Authenticate when a well-formed token names
// an account that no longer exists.
var ErrUnknownSubject = errors.New("token subject not found")

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserUsecase implements the IUserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	hasher        contract.IHasher
	jwtService    JWTService
	logger        usecasecontract.IAppLogger
	uuidGenerator contract.IUUIDGenerator
	now           func() time.Time

	// dummyHash is verified against when the email is unknown so that login
	// timing does not reveal which accounts exist.
	dummyHash string
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	logger usecasecontract.IAppLogger,
	uuidGenerator contract.IUUIDGenerator,
) *UserUsecase {
	dummy, _ := hasher.HashPassword("edulearn-placeholder-password")
	return &UserUsecase{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		logger:        logger,
		uuidGenerator: uuidGenerator,
		now:           time.Now,
		dummyHash:     dummy,
	}
}

// check if UserUsecase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// persistUser is the only path by which users reach the store. Whenever a new
// plaintext password is supplied it is hashed here, before the write.
func (uc *UserUsecase) persistUser(ctx context.Context, user *entity.User, plaintext *string, create bool) (*entity.User, error) {
	if plaintext != nil {
		hash, err := uc.hasher.HashPassword(*plaintext)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if user.PasswordHash == "" {
		return nil, errors.New("refusing to persist user without password hash")
	}
	user.UpdatedAt = uc.now().UTC()

	if create {
		if err := uc.userRepo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	return uc.userRepo.UpdateUser(ctx, user)
}

// Register handles user registration.
func (uc *UserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, string, error) {
	role := in.Role
	if role == "" {
		role = entity.DefaultRole()
	}
	if role != entity.UserRoleStudent && role != entity.UserRoleInstructor {
		return nil, "", apperror.Validation([]apperror.FieldError{{Field: "role", Message: "Role must be either student or instructor"}})
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		uc.logger.Error(ctx, "failed to check for existing user by email", "error", err)
		return nil, "", apperror.Internal(err)
	}
	if existing != nil {
		return nil, "", apperror.Conflict(errUserExists)
	}

	now := uc.now().UTC()
	user := &entity.User{
		ID:        uc.uuidGenerator.NewUUID(),
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      role,
		CreatedAt: now,
	}
	password := in.Password
	if _, err := uc.persistUser(ctx, user, &password, true); err != nil {
		if errors.Is(err, contract.ErrAlreadyExists) {
			return nil, "", apperror.Conflict(errUserExists)
		}
		uc.logger.Error(ctx, "failed to create user", "error", err)
		return nil, "", apperror.Internal(err)
	}

	token, err := uc.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		uc.logger.Error(ctx, "failed to issue token", "user_id", user.ID, "error", err)
		return nil, "", apperror.Internal(err)
	}
	uc.logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

// Login verifies credentials and issues a token.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, contract.ErrNotFound) {
			uc.logger.Error(ctx, "failed to load user for login", "error", err)
			return nil, "", apperror.Internal(err)
		}
		uc.hasher.VerifyPassword(password, uc.dummyHash)
		return nil, "", invalidCredentials()
	}
	if !uc.hasher.VerifyPassword(password, user.PasswordHash) {
		uc.logger.Warn(ctx, "login failed", "user_id", user.ID)
		return nil, "", invalidCredentials()
	}

	token, err := uc.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		uc.logger.Error(ctx, "failed to issue token", "user_id", user.ID, "error", err)
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

func invalidCredentials() *apperror.Error {
	return &apperror.Error{Kind: apperror.KindUnauthenticated, Message: errInvalidCredential}
}

// Authenticate verifies token and loads its subject. The returned error wraps
// ErrTokenExpired, ErrTokenInvalid or ErrUnknownSubject.
func (uc *UserUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	userID, err := uc.jwtService.ParseAccessToken(token)
	if err != nil {
		return nil, apperror.Unauthenticated(err)
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, apperror.Unauthenticated(ErrUnknownSubject)
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, apperror.NotFound(errUserNotFound)
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of update to the caller's profile.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, update entity.ProfileUpdate) (*entity.User, error) {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.ProfileImage != nil {
		if *update.ProfileImage == "" {
			user.ProfileImage = nil
		} else {
			img := *update.ProfileImage
			user.ProfileImage = &img
		}
	}

	updated, err := uc.persistUser(ctx, user, nil, false)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, apperror.NotFound(errUserNotFound)
		}
		uc.logger.Error(ctx, "failed to update profile", "user_id", userID, "error", err)
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// ChangePassword replaces the caller's password after re-checking the current one.
func (uc *UserUsecase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !uc.hasher.VerifyPassword(currentPassword, user.PasswordHash) {
		return apperror.Validation([]apperror.FieldError{{Field: "currentPassword", Message: "Current password is incorrect"}})
	}
	if _, err := uc.persistUser(ctx, user, &newPassword, false); err != nil {
		uc.logger.Error(ctx, "failed to change password", "user_id", userID, "error", err)
		return apperror.Internal(err)
	}
	uc.logger.Info(ctx, "password changed", "user_id", userID)
	return nil
}

// ListUsers returns one page of users, newest first.
func (uc *UserUsecase) ListUsers(ctx context.Context, page, limit int) (*entity.UserPage, error) {
	page, limit = clampPage(page, limit)
	users, total, err := uc.userRepo.ListUsers(ctx, entity.Offset(page, limit), limit)
	if err != nil {
		uc.logger.Error(ctx, "failed to list users", "error", err)
		return nil, apperror.Internal(err)
	}
	return &entity.UserPage{Users: users, Page: entity.NewPage(page, limit, total)}, nil
}

// ChangeRole sets the role of userID. The role is checked against the enum
// before anything is read or written.
func (uc *UserUsecase) ChangeRole(ctx context.Context, actorID, userID, role string) (*entity.User, error) {
	newRole, ok := entity.ParseRole(role)
	if !ok {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "role", Message: "Role must be one of student, instructor, admin"}})
	}

	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = newRole
	updated, err := uc.persistUser(ctx, user, nil, false)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, apperror.NotFound(errUserNotFound)
		}
		uc.logger.Error(ctx, "failed to change role", "user_id", userID, "error", err)
		return nil, apperror.Internal(err)
	}
	uc.logger.Info(ctx, "user role changed", "actor_id", actorID, "user_id", userID, "role", newRole)
	return updated, nil
}

// DeleteUser removes userID. An admin can never delete their own account.
func (uc *UserUsecase) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return apperror.SelfAction("You cannot delete your own account")
	}
	if err := uc.userRepo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apperror.NotFound(errUserNotFound)
		}
		uc.logger.Error(ctx, "failed to delete user", "user_id", userID, "error", err)
		return apperror.Internal(err)
	}
	uc.logger.Info(ctx, "user deleted", "actor_id", actorID, "user_id", userID)
	return nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
