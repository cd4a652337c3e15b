package model

import "errors"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(identityID int64) (string, error)
	GenerateRefreshToken(identityID int64) (token string, jti string, err error)
	ParseAccessToken(token string) (int64, error)
	ParseRefreshToken(token string) (identityID int64, jti string, err error)
}

// PasswordHasher hashes and verifies identity passwords.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	Compare(hash []byte, password string) error
}
