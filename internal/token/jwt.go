package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/envelope-relay/internal/model"
)

// Claims represents JWT claims with token type and identity ID.
type Claims struct {
	jwt.RegisteredClaims
	IdentityID int64  `json:"identity_id"`
	TokenType  string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
	typeAccess        = "access"
	typeRefresh       = "refresh"
	issuer            = "envelope-relay"
)

// NewJWT creates a new JWT token manager. Zero TTLs fall back to defaults.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) *JWT {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

var _ model.TokenManager = (*JWT)(nil)

// RefreshTTL returns how long refresh tokens stay valid.
func (j *JWT) RefreshTTL() time.Duration {
	return j.refreshTTL
}

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(identityID int64) (string, error) {
	tokenString, err := j.sign(identityID, typeAccess, "", j.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token and returns its JTI.
func (j *JWT) GenerateRefreshToken(identityID int64) (string, string, error) {
	jti := uuid.NewString()
	tokenString, err := j.sign(identityID, typeRefresh, jti, j.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, jti, nil
}

// ParseAccessToken validates and extracts the identity ID from an access token.
func (j *JWT) ParseAccessToken(tokenString string) (int64, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return 0, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims.IdentityID, nil
}

// ParseRefreshToken validates and extracts the identity ID and JTI from a refresh token.
func (j *JWT) ParseRefreshToken(tokenString string) (int64, string, error) {
	claims, err := j.parse(tokenString, typeRefresh)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse refresh token: %w", err)
	}
	return claims.IdentityID, claims.ID, nil
}

func (j *JWT) sign(identityID int64, tokenType, jti string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   strconv.FormatInt(identityID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		IdentityID: identityID,
		TokenType:  tokenType,
	})

	return token.SignedString([]byte(j.secretKey))
}

func (j *JWT) parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.IdentityID <= 0 {
		return nil, fmt.Errorf("token carries no identity")
	}
	return claims, nil
}
