// internal/adapters/out/mail/welcome_mailer.go
package mail

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

const welcomeSubject = "Welcome to Shree Ram Electronics"

const welcomeBody = `Thank you for creating an account.

You can now save items to your wishlist and keep a cart across devices.
If you did not sign up, please ignore this email.`

// WelcomeMailer は usecase.WelcomeMailer の実装で、EmailClient を使って送信します。
type WelcomeMailer struct {
	client      EmailClient
	fromAddress string
}

func NewWelcomeMailer(client EmailClient, fromAddress string) *WelcomeMailer {
	return &WelcomeMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

func (m *WelcomeMailer) SendWelcome(ctx context.Context, toEmail string) error {
	if m == nil || m.client == nil {
		return errors.New("welcome_mailer: email client is nil")
	}
	to := strings.TrimSpace(toEmail)
	if to == "" {
		return errors.New("welcome_mailer: recipient is empty")
	}
	return m.client.Send(ctx, m.fromAddress, to, welcomeSubject, welcomeBody)
}
