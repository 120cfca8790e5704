package request

type SignUpRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type OtpCodeRequest struct {
	OtpCode string `json:"otpCode,omitempty" validate:"required,len=6,numeric"`
}

type TwoFactorLoginRequest struct {
	Email   string `json:"email,omitempty" validate:"required,email,max=255"`
	OtpCode string `json:"otpCode,omitempty" validate:"required,len=6,numeric"`
}

type ExchangeCodeRequest struct {
	Code string `json:"code,omitempty" validate:"required,max=128"`
}

type TaskRequest struct {
	Title       string `json:"title,omitempty" validate:"required,min=3,max=255"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	Status      string `json:"status,omitempty"`
}

type TaskStatusRequest struct {
	Status string `json:"status,omitempty" validate:"required"`
}
