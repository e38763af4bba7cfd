package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"taskboard/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	UserIDKey = "userID"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the token payload. UserID is the claim the rest of the
// system relies on; subject and jti exist for debugging and replay
// tracing only.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService mints and validates bearer tokens. Construct one at
// startup with the process JWT configuration; validation is stateless.
type TokenService struct {
	cfg config.JWTConfig
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue creates a signed token for the user, expiring at now + TTL.
func (s *TokenService) Issue(userID int, username string) (string, time.Time, error) {
	return s.issue(userID, username, time.Duration(s.cfg.TTLMinutes)*time.Minute)
}

func (s *TokenService) issue(userID int, username string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID: strconv.Itoa(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Validate checks signature, issuer, audience and expiry with zero
// leeway. Any failure, including a malformed token string, comes back
// as ErrExpiredToken or ErrInvalidToken; it never panics.
//
// A token that verifies but carries no usable userId claim is a signing
// configuration defect and is rejected rather than mapped to a
// placeholder identity.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := claims.ResolveUserID(); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ResolveUserID parses the userId claim into the numeric id.
func (c *Claims) ResolveUserID() (int, error) {
	id, err := strconv.Atoi(c.UserID)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("token has no usable userId claim: %q", c.UserID)
	}
	return id, nil
}

// GetUserIDFromContext extracts the authenticated user id placed in the
// gin context by the auth middleware.
func GetUserIDFromContext(c *gin.Context) (int, error) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(int)
	if !ok {
		return 0, fmt.Errorf("invalid user ID type")
	}

	return id, nil
}
