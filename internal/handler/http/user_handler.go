package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

const errUserNotFound = "User not found"

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	GetProfile(*gin.Context)
	UpdateProfile(*gin.Context)
	ListUsers(*gin.Context)
	GetUser(*gin.Context)
	ChangeRole(*gin.Context)
	DeleteUser(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
	validator   usecasecontract.IValidator
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase, validator usecasecontract.IValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

// GetProfile returns the caller's own profile, freshly read from the store.
func (h *UserHandler) GetProfile(c *gin.Context) {
	current, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), current.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UserData{User: dto.ToUserResponse(*user)})
}

// UpdateProfile handles updating user profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	current, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !BindAndValidate(c, h.validator, &req) {
		return
	}

	updated, err := h.userUsecase.UpdateProfile(c.Request.Context(), current.ID, req.ToEntity())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, http.StatusOK, "Profile updated successfully", dto.UserData{User: dto.ToUserResponse(*updated)})
}

// ListUsers returns one page of accounts for admins.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := h.userUsecase.ListUsers(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUsersPageResponse(*page))
}

// GetUser handles retrieving user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "id", errUserNotFound)
	if !ok {
		return
	}
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UserData{User: dto.ToUserResponse(*user)})
}

// ChangeRole sets another account's role.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id", errUserNotFound)
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if !BindAndValidate(c, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.ChangeRole(c.Request.Context(), actor.ID, userID, req.Role)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, http.StatusOK, "User role updated successfully", dto.UserData{User: dto.ToUserResponse(*user)})
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id", errUserNotFound)
	if !ok {
		return
	}
	if err := h.userUsecase.DeleteUser(c.Request.Context(), actor.ID, userID); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "User deleted successfully")
}
