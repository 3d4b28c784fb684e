package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"artist-site/internal/apperr"
	"artist-site/internal/mail"
	"artist-site/internal/service"
	"artist-site/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContactService_Send(t *testing.T) {
	m := &fakeMailer{}
	svc := service.NewContactService(m, "owner@example.com", validation.New(), zap.NewNop())

	err := svc.Send(context.Background(), service.ContactInput{
		Name:    " Jan ",
		Email:   "Jan@Example.com",
		Subject: "Ijsvogel",
		Message: "Is deze nog te koop?",
	})
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	assert.Equal(t, mail.TemplateContact, m.sent[0].Template)
	assert.Equal(t, "owner@example.com", m.sent[0].Recipient)
	data := m.sent[0].Data.(mail.ContactData)
	assert.Equal(t, "Jan", data.Name)
	assert.Equal(t, "jan@example.com", data.ReplyAddress())
}

func TestContactService_Validation(t *testing.T) {
	svc := service.NewContactService(&fakeMailer{}, "owner@example.com", validation.New(), zap.NewNop())

	err := svc.Send(context.Background(), service.ContactInput{
		Name: "Jan", Email: "jan@example.com", Subject: "s", Message: strings.Repeat("x", 5001),
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.(*apperr.Error).Details, "message")
}

func TestContactService_MailFailureSurfaces(t *testing.T) {
	svc := service.NewContactService(&fakeMailer{err: errors.New("smtp down")}, "owner@example.com", validation.New(), zap.NewNop())

	err := svc.Send(context.Background(), service.ContactInput{
		Name: "Jan", Email: "jan@example.com", Subject: "s", Message: "m",
	})
	assert.ErrorIs(t, err, apperr.ErrDependencyFailure)
}
