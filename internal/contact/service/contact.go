package service

import (
	"context"
	"strings"

	"fullmoon/pkg/config"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/mail"
	"fullmoon/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ContactService interface {
	Submit(ctx context.Context, req ContactRequest) error
}

type contactService struct {
	mailer   mail.Mailer
	validate *validator.Validate
	cfg      *config.Config
}

func NewContactService(mailer mail.Mailer, cfg *config.Config) ContactService {
	return &contactService{
		mailer:   mailer,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Submit forwards the message to the hotel inbox and sends the sender an
// auto-reply. A failed auto-reply does not fail the submission.
func (s *contactService) Submit(ctx context.Context, req ContactRequest) error {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Subject = sanitizer.TrimAndNormalize(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validate.Struct(req); err != nil {
		s.cfg.Log.Warn("Contact form validation failed", "email", req.Email, "error", err)
		return apperrors.Validation("Please fill in all fields with a valid email", map[string]any{"error": err.Error()})
	}

	admin, reply, err := mail.ContactMessages(s.cfg.ContactInbox, mail.ContactDetails{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		s.cfg.Log.Error("Failed to render contact messages", "error", err)
		return apperrors.Internal("Failed to send message", err)
	}

	if err := s.mailer.Send(ctx, admin); err != nil {
		s.cfg.Log.Error("Failed to deliver contact message", "email", req.Email, "error", err)
		return apperrors.Unavailable("Mail delivery")
	}

	if err := s.mailer.Send(ctx, reply); err != nil {
		s.cfg.Log.Warn("Failed to send contact auto-reply", "email", req.Email, "error", err)
	}

	s.cfg.Log.Info("Contact message received", "email", req.Email, "subject", req.Subject)
	return nil
}
