package mocks

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	"github.com/mikiasgoitom/Edulearn/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// Well known ids and tokens used by the handler tests.
const (
	StudentID    = "0b6a3c54-2f0e-4a44-9b0e-1f2d3c4b5a61"
	InstructorID = "1c7b4d65-3a1f-4b55-8c1f-2a3e4d5c6b72"
	AdminID      = "2d8c5e76-4b2a-4c66-9d2a-3b4f5e6d7c83"

	StudentToken    = "student-token"
	InstructorToken = "instructor-token"
	AdminToken      = "admin-token"
	ExpiredToken    = "expired-token"
	OrphanToken     = "orphan-token"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailRegister       bool
	ShouldFailLogin          bool
	ShouldFailGetByID        bool
	ShouldFailUpdateProfile  bool
	ShouldFailChangePassword bool
	ShouldFailListUsers      bool
	ShouldFailChangeRole     bool
	ShouldFailDeleteUser     bool
	ShouldPanicListUsers     bool

	// Return values
	Users     map[string]*entity.User
	Tokens    map[string]string
	MockToken string

	// Recorded calls
	LastRegister      usecasecontract.RegisterInput
	LastProfileUpdate entity.ProfileUpdate
	DeletedIDs        []string
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	users := map[string]*entity.User{
		StudentID:    {ID: StudentID, Email: "student@example.com", FirstName: "Sam", LastName: "Student", Role: entity.UserRoleStudent},
		InstructorID: {ID: InstructorID, Email: "teach@example.com", FirstName: "Ivy", LastName: "Instructor", Role: entity.UserRoleInstructor},
		AdminID:      {ID: AdminID, Email: "admin@example.com", FirstName: "Ada", LastName: "Admin", Role: entity.UserRoleAdmin},
	}
	return &MockUserUsecase{
		Users: users,
		Tokens: map[string]string{
			StudentToken:    StudentID,
			InstructorToken: InstructorID,
			AdminToken:      AdminID,
			OrphanToken:     "9f9f9f9f-0000-4000-8000-000000000000",
		},
		MockToken: "mock_access_token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, string, error) {
	m.LastRegister = in
	if m.ShouldFailRegister {
		return nil, "", apperror.Conflict("User already exists with this email")
	}
	return &entity.User{ID: "3e9d6f87-5c3b-4d77-8e3b-4c5a6f7e8d94", Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Role: in.Role, PasswordHash: "secret-hash"}, m.MockToken, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.ShouldFailLogin {
		return nil, "", &apperror.Error{Kind: apperror.KindUnauthenticated, Message: "Invalid email or password"}
	}
	return m.Users[StudentID], m.MockToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == ExpiredToken {
		return nil, apperror.Unauthenticated(usecase.ErrTokenExpired)
	}
	id, ok := m.Tokens[token]
	if !ok {
		return nil, apperror.Unauthenticated(usecase.ErrTokenInvalid)
	}
	user, ok := m.Users[id]
	if !ok {
		return nil, apperror.Unauthenticated(usecase.ErrUnknownSubject)
	}
	return user, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, apperror.Internal(errors.New("db down"))
	}
	user, ok := m.Users[userID]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, update entity.ProfileUpdate) (*entity.User, error) {
	m.LastProfileUpdate = update
	if m.ShouldFailUpdateProfile {
		return nil, apperror.Internal(errors.New("update profile failed"))
	}
	user := *m.Users[userID]
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	return &user, nil
}

func (m *MockUserUsecase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if m.ShouldFailChangePassword {
		return apperror.Validation([]apperror.FieldError{{Field: "currentPassword", Message: "Current password is incorrect"}})
	}
	return nil
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, page, limit int) (*entity.UserPage, error) {
	if m.ShouldPanicListUsers {
		panic("list users exploded")
	}
	if m.ShouldFailListUsers {
		return nil, apperror.Internal(errors.New("list users failed"))
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	users := []entity.User{*m.Users[AdminID], *m.Users[InstructorID], *m.Users[StudentID]}
	return &entity.UserPage{Users: users, Page: entity.NewPage(page, limit, len(users))}, nil
}

func (m *MockUserUsecase) ChangeRole(ctx context.Context, actorID, userID, role string) (*entity.User, error) {
	if m.ShouldFailChangeRole {
		return nil, apperror.Internal(errors.New("change role failed"))
	}
	parsed, ok := entity.ParseRole(role)
	if !ok {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "role", Message: "role must be one of student, instructor, admin"}})
	}
	target, ok := m.Users[userID]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	updated := *target
	updated.Role = parsed
	return &updated, nil
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, actorID, userID string) error {
	if m.ShouldFailDeleteUser {
		return apperror.Internal(errors.New("delete user failed"))
	}
	if actorID == userID {
		return apperror.SelfAction("You cannot delete your own account")
	}
	if _, ok := m.Users[userID]; !ok {
		return apperror.NotFound("User not found")
	}
	m.DeletedIDs = append(m.DeletedIDs, userID)
	return nil
}
