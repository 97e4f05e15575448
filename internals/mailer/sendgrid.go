package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendgridMailer struct {
	key      string
	from     *sgmail.Email
	subjPref string
}

var _ Mailer = (*SendgridMailer)(nil)

func NewSendgridMailer(apiKey, fromName, fromAddress, appName string) *SendgridMailer {
	return &SendgridMailer{
		key:      apiKey,
		from:     sgmail.NewEmail(fromName, fromAddress),
		subjPref: "[" + appName + "] ",
	}
}

func (m *SendgridMailer) send(msg message) error {
	to := sgmail.NewEmail("", msg.To)
	sgMsg := sgmail.NewSingleEmail(m.from, m.subjPref+msg.Subject, to, msg.Body, "")
	resp, err := sendgrid.NewSendClient(m.key).Send(sgMsg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (m *SendgridMailer) SendStudentWelcome(to, studentName, email, password, schoolName string) error {
	return m.send(studentWelcomeMessage(to, studentName, email, password, schoolName))
}

func (m *SendgridMailer) SendParentWelcome(to, parentName, email, password string) error {
	return m.send(parentWelcomeMessage(to, parentName, email, password))
}

func (m *SendgridMailer) SendParentInvitation(to, parentName, studentName, code string) error {
	return m.send(parentInvitationMessage(to, parentName, studentName, code))
}
