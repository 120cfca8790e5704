package response

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	UUID               string    `json:"uuid,omitempty"`
	Email              string    `json:"email,omitempty"`
	Role               string    `json:"role,omitempty"`
	IsTwoFactorEnabled bool      `json:"isTwoFactorEnabled"`
	IsOAuthUser        bool      `json:"isOAuthUser"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

// SignInResponse is the login wire contract: either accessToken is set, or
// requires2FA+email are set. The unused half is omitted from the JSON.
type SignInResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
	Requires2FA bool   `json:"requires2FA,omitempty"`
	Email       string `json:"email,omitempty"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type QrCodeResponse struct {
	QrCodeUrl string `json:"qrCodeUrl"`
}

type TaskResponse struct {
	UUID        uuid.UUID `json:"uuid"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PaginatedResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
