package mail

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// NewWelcomeMailerWithSendGrid は SendGrid を使った WelcomeMailer を生成します。
// apiKey が空なら nil（ウェルカムメールは送らない）。
func NewWelcomeMailerWithSendGrid(apiKey, fromAddr string, log logrus.FieldLogger) *WelcomeMailer {
	if strings.TrimSpace(apiKey) == "" {
		if log != nil {
			log.Info("[mail] SENDGRID_API_KEY is empty; welcome mail disabled")
		}
		return nil
	}
	if strings.TrimSpace(fromAddr) == "" && log != nil {
		log.Warn("[mail] SENDGRID_FROM is empty; welcome mail will fail to send")
	}

	client := NewSendGridClient(apiKey, "Shree Ram Electronics", log)
	return NewWelcomeMailer(client, fromAddr)
}
