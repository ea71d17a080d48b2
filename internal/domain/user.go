package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
)

func IsValidRole(role Role) bool {
	switch role {
	case RoleCustomer, RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role grants access to the admin console.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the trimmed user shape embedded in admin order and
// booking views.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type ListUsersFilter struct {
	Search string
	Role   Role
	Page   int
	Limit  int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, filter ListUsersFilter) ([]User, int, error)
	CountUsers(ctx context.Context) (int, error)
}

type AuthUseCase interface {
	Register(ctx context.Context, name, email, password, phone string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	UpdateProfile(ctx context.Context, userID, name, phone string) (*User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
}
