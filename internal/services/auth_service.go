package services

import (
	"errors"
	"time"

	"classpoll/config"
	poll_errors "classpoll/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements the admin gate as an explicit signed credential
// instead of an ambient session flag: a successful login against the
// configured admin username/password yields a short-lived HS256 token that
// every mutating request must present.
type AuthService struct {
	adminUsername string
	adminHash     []byte
	secret        []byte
	expiry        time.Duration
}

func NewAuthService(cfg *config.Config) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		adminUsername: cfg.AdminUsername,
		adminHash:     hash,
		secret:        []byte(cfg.SessionSecret),
		expiry:        time.Duration(cfg.SessionExpiryMin) * time.Minute,
	}, nil
}

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.adminUsername {
		return "", poll_errors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		return "", poll_errors.ErrUnauthorized
	}

	now := time.Now()
	claims := AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AuthService) ParseToken(tokenString string) (AdminClaims, error) {
	if tokenString == "" {
		return AdminClaims{}, poll_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, poll_errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil {
		return AdminClaims{}, poll_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid || claims.Role != "admin" {
		return AdminClaims{}, poll_errors.ErrUnauthorized
	}

	return *claims, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.expiry
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, poll_errors.ErrInvalidInput),
		errors.Is(err, poll_errors.ErrAlreadyVoted),
		errors.Is(err, poll_errors.ErrAlreadyResponded),
		errors.Is(err, poll_errors.ErrNotTextPoll),
		errors.Is(err, poll_errors.ErrPollTypeLocked),
		errors.Is(err, poll_errors.ErrConflict):
		return 400
	case errors.Is(err, poll_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, poll_errors.ErrNotFound):
		return 404
	case errors.Is(err, poll_errors.ErrRateLimited):
		return 429
	default:
		return 500
	}
}
