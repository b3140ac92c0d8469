// internal/email/mailer/password_changed.go
package mailer

import "github.com/relivo/orgportal/internal/email"

// SendPasswordChangedEmail notifies the contact address that the
// account password was updated.
func SendPasswordChangedEmail(s email.Sender, to string) error {
	emailData := email.EmailData{
		To:           to,
		Subject:      "Relivo Password Updated",
		TemplateName: "password_changed",
		TemplateData: struct{}{},
	}

	return s.SendEmail(emailData)
}
