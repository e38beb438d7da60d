package service

import (
	"context"
	"strings"
	"time"

	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email or password"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Principal *auth.Principal `json:"principal"`
}

type LoginService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type loginService struct {
	issuer   *auth.TokenIssuer
	validate *validator.Validate
	cfg      *config.Config
}

func NewLoginService(issuer *auth.TokenIssuer, cfg *config.Config) LoginService {
	return &loginService{
		issuer:   issuer,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Login checks the request against the configured administrator account.
// Unknown emails and wrong passwords yield the same error.
func (s *loginService) Login(_ context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("Email and password are required", map[string]any{"error": err.Error()})
	}

	if s.cfg.AdminPasswordHash == "" || s.cfg.JWTSecret == "" {
		s.cfg.Log.Warn("Login attempted but admin credentials are not configured", "email", req.Email)
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	emailMatches := strings.EqualFold(req.Email, s.cfg.AdminEmail)
	// The hash is compared even for unknown emails so both paths cost the same.
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password))
	if !emailMatches || passwordErr != nil {
		s.cfg.Log.Warn("Login failed", "email", req.Email)
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	principal := &auth.Principal{
		Subject: s.cfg.AdminEmail,
		Name:    s.cfg.AdminName,
		Email:   s.cfg.AdminEmail,
		Role:    auth.RoleAdmin,
	}
	token, expiresAt, err := s.issuer.Issue(principal)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to sign in", err)
	}

	s.cfg.Log.Info("Admin signed in", "email", principal.Email, "expires_at", expiresAt)
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, Principal: principal}, nil
}
