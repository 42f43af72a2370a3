package mail

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// EmailClient は実際のメール送信クライアントを抽象化した下位レベルのインターフェースです。
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SendGridClient implements EmailClient interface
type SendGridClient struct {
	apiKey   string
	fromName string
	log      logrus.FieldLogger
}

func NewSendGridClient(apiKey, fromName string, log logrus.FieldLogger) *SendGridClient {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &SendGridClient{apiKey: apiKey, fromName: fromName, log: log.WithField("component", "sendgrid")}
}

// Send sends an email using SendGrid
func (c *SendGridClient) Send(ctx context.Context, from, to, subject, body string) error {
	if c.apiKey == "" {
		return errors.New("sendgrid api key is empty")
	}
	if from == "" {
		return errors.New("from address is empty")
	}
	if to == "" {
		return errors.New("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(c.fromName, from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(err, "sendgrid send error")
	}

	if response.StatusCode >= 400 {
		c.log.WithFields(logrus.Fields{"status": response.StatusCode, "body": response.Body}).Error("[sendgrid] send failed")
		return errors.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	c.log.WithFields(logrus.Fields{"status": response.StatusCode, "subject": subject}).Info("[sendgrid] mail sent")
	return nil
}
