package orgportal

import "embed"

// EmailFS carries the html and plaintext email template pairs shipped
// with the binary.
//
//go:embed templates/emails
var EmailFS embed.FS
