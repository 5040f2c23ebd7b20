package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/dto"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// AuthHandlerInterface allows the auth endpoints to be mocked in router tests.
type AuthHandlerInterface interface {
	Register(*gin.Context)
	Login(*gin.Context)
	Me(*gin.Context)
	Logout(*gin.Context)
	ChangePassword(*gin.Context)
}

var _ AuthHandlerInterface = (*AuthHandler)(nil)

type AuthHandler struct {
	userUsecase usecasecontract.IUserUseCase
	validator   usecasecontract.IValidator
	logger      usecasecontract.IAppLogger
}

func NewAuthHandler(uc usecasecontract.IUserUseCase, validator usecasecontract.IValidator, logger usecasecontract.IAppLogger) *AuthHandler {
	return &AuthHandler{
		userUsecase: uc,
		validator:   validator,
		logger:      logger,
	}
}

// Register handles user registration (signup)
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !BindAndValidate(c, h.validator, &req) {
		return
	}

	role := entity.DefaultRole()
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}
	user, token, err := h.userUsecase.Register(c.Request.Context(), usecasecontract.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessWithMessage(c, http.StatusCreated, "User registered successfully", dto.AuthResponse{
		User:  dto.ToUserResponse(*user),
		Token: token,
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !BindAndValidate(c, h.validator, &req) {
		return
	}

	user, token, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindUnauthenticated {
			metrics.AuthFailuresTotal.WithLabelValues(metrics.AuthReasonBadCredentials).Inc()
		}
		RespondError(c, err)
		return
	}

	SuccessWithMessage(c, http.StatusOK, "Login successful", dto.AuthResponse{
		User:  dto.ToUserResponse(*user),
		Token: token,
	})
}

// Me returns the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UserData{User: dto.ToUserResponse(*user)})
}

// Logout acknowledges the request. Tokens are stateless, so the client
// discards its copy and it stays valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	if user, ok := mustCurrentUser(c); ok {
		h.logger.Info(c.Request.Context(), "user logged out", "user_id", user.ID)
		MessageHandler(c, http.StatusOK, "Logged out successfully")
	}
}

// ChangePassword re-hashes the caller's password after checking the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !BindAndValidate(c, h.validator, &req) {
		return
	}

	if err := h.userUsecase.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Password updated successfully")
}
