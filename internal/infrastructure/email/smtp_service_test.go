package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSender_Send(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 2525, FromEmail: "noreply@devcamper.io", FromName: "DevCamper"}).(*smtpSender)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := s.Send(context.Background(), Message{To: "jane@example.com", Subject: "Password reset token", Body: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Equal(t, "noreply@devcamper.io", gotFrom)
	assert.Equal(t, []string{"jane@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Password reset token\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\nhello")
}

func TestSMTPSender_Failure(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "mail.local", Port: 25, FromEmail: "a@b.c"}).(*smtpSender)
	boom := errors.New("421 service not available")
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := s.Send(context.Background(), Message{To: "jane@example.com"})
	assert.ErrorIs(t, err, boom)

	err = s.Send(context.Background(), Message{To: "not an address"})
	assert.Error(t, err)
}
