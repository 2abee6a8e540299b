package email

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers account emails. Delivery failures are the caller's to
// report; provisioning treats them as per-row failures, not fatals.
type Mailer interface {
	SendWelcome(name, address, tempPassword string) error
}

type SendgridMailer struct {
	client   *sendgrid.Client
	from     *sgmail.Email
	loginURL string
}

func NewSendgridMailer(apiKey, fromName, fromAddr, loginURL string) *SendgridMailer {
	return &SendgridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		from:     sgmail.NewEmail(fromName, fromAddr),
		loginURL: loginURL,
	}
}

func (m *SendgridMailer) SendWelcome(name, address, tempPassword string) error {
	subject := "Welcome to HexaBoard - Set Your Password!"
	plain := fmt.Sprintf(
		"Hello %s,\n\nYour account has been created for HexaBoard. Sign in at %s with this temporary password and change it right away:\n\n%s\n\nIf you did not request this, please ignore this email.\n\nThank you,\nThe HexaBoard Team",
		name, m.loginURL, tempPassword,
	)
	html := fmt.Sprintf(
		`<p>Hello %s,</p><p>Your account has been created for HexaBoard. <a href="%s">Sign in</a> with this temporary password and change it right away:</p><p><b>%s</b></p><p>If you did not request this, please ignore this email.</p><p>Thank you,<br>The HexaBoard Team</p>`,
		name, m.loginURL, tempPassword,
	)

	message := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(name, address), plain, html)
	resp, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// ConsoleMailer logs instead of sending; used when no API key is set.
type ConsoleMailer struct{}

func (ConsoleMailer) SendWelcome(name, address, tempPassword string) error {
	log.Printf("[MAIL] welcome email for %s <%s> (temporary password: %s)", name, address, tempPassword)
	return nil
}
