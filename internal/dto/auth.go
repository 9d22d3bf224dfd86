package dto

// RegisterRequest is the signup payload. Length bounds mirror the user schema
// constraints (names 3-30, password >= 6, phone exactly 10).
type RegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required,min=3,max=30"`
	LastName    string `json:"lastName" binding:"required,min=3,max=30"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	College     string `json:"college" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,len=10"`
	Avatar      string `json:"avatar"`
}

// LoginRequest is the credential login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest carries the one-time password issued at signup.
type VerifyEmailRequest struct {
	OneTimePassword string `json:"oneTimePassword" binding:"required,len=6,numeric"`
}

// ForgotPasswordRequest starts the reset flow for an email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the replacement password; the reset token
// travels in the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// GoogleSignInRequest carries the Google ID token obtained by the frontend.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// AuthResponse is returned by login/refresh; tokens are also set as cookies.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
