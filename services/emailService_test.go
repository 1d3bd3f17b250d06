package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitEmailServiceWithoutKey(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")
	original := emailService
	emailService = nil
	defer func() { emailService = original }()

	InitEmailService()

	assert.Nil(t, GetEmailService())
	assert.Error(t, GetEmailService().SendWelcomeEmail("new@example.com", "New User"))
}
