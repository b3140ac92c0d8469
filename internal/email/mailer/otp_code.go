// internal/email/mailer/otp_code.go
package mailer

import "github.com/relivo/orgportal/internal/email"

// OTPTemplateData contains data for the verification-code email template
type OTPTemplateData struct {
	Code string
}

// SendOTPEmail sends a one-time verification code to the organization's
// contact address.
func SendOTPEmail(s email.Sender, to, code string) error {
	emailData := email.EmailData{
		To:           to,
		Subject:      "Relivo Organization Verification Code",
		TemplateName: "otp_code",
		TemplateData: OTPTemplateData{Code: code},
	}

	return s.SendEmail(emailData)
}
