package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/staff"
)

type service struct {
	staffRepo staff.Repository
	secret    []byte
	ttl       time.Duration
	log       *slog.Logger
}

// NewService creates a new auth service signing HS256 tokens with secret.
func NewService(staffRepo staff.Repository, secret string, ttl time.Duration, log *slog.Logger) Service {
	return &service{staffRepo: staffRepo, secret: []byte(secret), ttl: ttl, log: log}
}

func (s *service) Login(ctx context.Context, email, password string) (*Token, error) {
	member, err := s.staffRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		s.log.WarnContext(ctx, "login rejected", "action", "login", "staff_id", member.ID)
		return nil, apperr.Unauthorized("invalid credentials")
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := &Claims{
		StaffID:  member.ID,
		BranchID: member.BranchID,
		Role:     string(member.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   member.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: tokenString, ExpiresAt: expiresAt}, nil
}

func (s *service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
