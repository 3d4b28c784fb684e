package service

import (
	"context"
	"strings"

	"artist-site/internal/apperr"
	"artist-site/internal/mail"
	"artist-site/internal/validation"

	"go.uber.org/zap"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactService forwards contact form messages to the site owner.
type ContactService struct {
	mailer   mail.Mailer
	owner    string
	validate *validation.Validator
	log      *zap.Logger
}

func NewContactService(m mail.Mailer, ownerEmail string, v *validation.Validator, log *zap.Logger) *ContactService {
	return &ContactService{mailer: m, owner: ownerEmail, validate: v, log: log}
}

// Send delivers the message. Unlike the newsletter welcome mail, a failed
// delivery is reported to the caller.
func (s *ContactService) Send(ctx context.Context, in ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := s.validate.Validate(in); err != nil {
		return err
	}
	if s.owner == "" {
		return apperr.DependencyFailure("contact mail is not configured", nil)
	}

	data := mail.ContactData{Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message}
	if err := s.mailer.Send(ctx, mail.TemplateContact, s.owner, data); err != nil {
		s.log.Error("contact mail failed", zap.Error(err))
		return apperr.DependencyFailure("the message could not be sent, please try again later", err)
	}
	return nil
}
