package dto

import "auth_backend/internal/feature/auth/domain/entity"

// UserResponse carries the public fields of a user. The password hash is
// never part of any response.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

// AuthResponse is the response for register and login: the public user
// fields plus the session token also delivered via cookie.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}

// NewUserResponse builds a UserResponse from a user entity.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
		Phone: u.Phone,
		Bio:   u.Bio,
	}
}
