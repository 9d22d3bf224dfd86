package dto

import (
	"time"

	"github.com/festra/event_registration_app/internal/core/domain"
)

// UserResponse is the external representation of a user. Credential and
// secret fields never appear here.
type UserResponse struct {
	UserID      string                 `json:"userID"`
	FirstName   string                 `json:"firstName"`
	LastName    string                 `json:"lastName"`
	Email       string                 `json:"email"`
	Avatar      string                 `json:"avatar,omitempty"`
	College     string                 `json:"college"`
	PhoneNumber string                 `json:"phoneNumber"`
	Role        string                 `json:"role"`
	Account     []string               `json:"account"`
	IsVerified  bool                   `json:"isVerified"`
	IsBlocked   bool                   `json:"isBlocked"`
	Events      []RegistrationResponse `json:"events"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ToUserResponse converts a domain User to its external representation.
func ToUserResponse(u *domain.User) UserResponse {
	accounts := make([]string, len(u.Accounts))
	for i, a := range u.Accounts {
		accounts[i] = string(a)
	}
	return UserResponse{
		UserID:      u.UserID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Avatar:      u.Avatar,
		College:     u.College,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Account:     accounts,
		IsVerified:  u.IsVerified,
		IsBlocked:   u.IsBlocked,
		Events:      ToRegistrationResponseSlice(u.Events),
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=3,max=30"`
	LastName    *string `json:"lastName" binding:"omitempty,min=3,max=30"`
	College     *string `json:"college"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,len=10"`
	Avatar      *string `json:"avatar"`
}

// ListUsersQuery defines query parameters for the admin user listing.
type ListUsersQuery struct {
	Keyword string `form:"keyword"`
	Role    string `form:"role" binding:"omitempty,oneof=USER ADMIN MODERATOR"`
	Page    int    `form:"page,default=1" binding:"omitempty,min=1"`
}

// ListUsersResponse wraps one page of the admin user listing.
type ListUsersResponse struct {
	Users              []UserResponse `json:"users"`
	Count              int64          `json:"count"`
	FilteredUsersCount int64          `json:"filteredUsersCount"`
	ResultPerPage      int            `json:"resultPerPage"`
	CurrentPage        int            `json:"currentPage"`
}

// ToListUsersResponse converts one page of domain users.
func ToListUsersResponse(users []domain.User, count, filtered int64, perPage, page int) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users:              userResponses,
		Count:              count,
		FilteredUsersCount: filtered,
		ResultPerPage:      perPage,
		CurrentPage:        page,
	}
}

// UpdateRoleRequest is the admin role mutation payload.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=USER ADMIN MODERATOR"`
}
