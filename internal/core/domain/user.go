package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	Admin  UserRole = "admin"
	Member UserRole = "member"
)

type User struct {
	ID                 int
	UUID               uuid.UUID
	Email              string `validate:"required,email,max=255"`
	EncryptedPassword  string
	TwoFactorSecret    string
	IsTwoFactorEnabled bool
	IsOAuthUser        bool
	Role               UserRole
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// HasPassword reports whether the account can authenticate with a password.
// OAuth-provisioned accounts never have one.
func (u *User) HasPassword() bool {
	return u.EncryptedPassword != ""
}

func (u *User) HasTwoFactorSecret() bool {
	return u.TwoFactorSecret != ""
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
