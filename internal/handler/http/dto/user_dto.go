package dto

import (
	"strings"
	"time"

	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

// UserResponse is the DTO for a user. The password hash is never part of it.
type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Role         string  `json:"role"`
	IsVerified   bool    `json:"isVerified"`
	ProfileImage *string `json:"profileImage"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		IsVerified:   user.IsVerified,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
}

type UserData struct {
	User UserResponse `json:"user"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile. An empty
// profileImage clears the image.
type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName" validate:"omitnil,min=2,max=100"`
	LastName     *string `json:"lastName" validate:"omitnil,min=2,max=100"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url,max=255"`
}

func (r *UpdateProfileRequest) Normalize() {
	trimPtr(r.FirstName)
	trimPtr(r.LastName)
	trimPtr(r.ProfileImage)
}

func (r UpdateProfileRequest) ToEntity() entity.ProfileUpdate {
	return entity.ProfileUpdate{FirstName: r.FirstName, LastName: r.LastName, ProfileImage: r.ProfileImage}
}

// ChangeRoleRequest is the body of PUT /api/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}

type UserPagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalUsers  int  `json:"totalUsers"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type UsersPageResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination UserPagination `json:"pagination"`
}

func ToUsersPageResponse(p entity.UserPage) UsersPageResponse {
	users := make([]UserResponse, 0, len(p.Users))
	for _, u := range p.Users {
		users = append(users, ToUserResponse(u))
	}
	return UsersPageResponse{
		Users: users,
		Pagination: UserPagination{
			CurrentPage: p.Page.CurrentPage,
			TotalPages:  p.Page.TotalPages,
			TotalUsers:  p.Page.Total,
			HasNextPage: p.Page.HasNext(),
			HasPrevPage: p.Page.HasPrev(),
		},
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
