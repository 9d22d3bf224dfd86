package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials (bad password, bad or
// expired token, refresh token mismatch).
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform
// the operation (unverified account, insufficient role, blocked account).
var ErrForbidden = errors.New("forbidden")

// ErrCapacityExceeded indicates an event registration was rejected because the
// event is already at its participant limit.
var ErrCapacityExceeded = errors.New("event capacity exceeded")

// ErrExpiredSecret indicates a reset token or one-time password was presented
// after its validity window elapsed.
var ErrExpiredSecret = errors.New("secret has expired")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token has expired")
