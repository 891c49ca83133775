package external_services

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
)

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

func mustTemplate(kind contract.NotificationKind, subject, body string) emailTemplate {
	name := string(kind)
	return emailTemplate{
		subject: template.Must(template.New(name + ".subject").Parse(subject)),
		body:    template.Must(template.New(name + ".body").Parse(body)),
	}
}

var templates = map[contract.NotificationKind]emailTemplate{
	contract.NotificationVerifyEmail: mustTemplate(contract.NotificationVerifyEmail,
		"Verify your Campus Guide email",
		`Hi {{.Name}},

Please confirm your email address by opening the link below:

{{.Link}}

The link expires at {{.ExpiresAt}}. If you did not create an account, ignore this message.
`),
	contract.NotificationWelcome: mustTemplate(contract.NotificationWelcome,
		"Welcome to Campus Guide",
		`Hi {{.Name}},

Your email address is confirmed.
{{- if eq .VerificationStatus "pending"}}
Your {{.AccountKind}} account is waiting for review by an administrator. We will let you know once it is decided.
{{- else}}
Your account is ready to use.
{{- end}}
`),
	contract.NotificationAdminNewStudent: mustTemplate(contract.NotificationAdminNewStudent,
		"New student registration: {{.Name}}",
		`A new student account is waiting for verification.

Name:       {{.Name}}
Email:      {{.Email}}
Student ID: {{.StudentID}}
Year:       {{.Year}}
Branch:     {{.Branch}}
`),
	contract.NotificationVerificationDecision: mustTemplate(contract.NotificationVerificationDecision,
		"Your Campus Guide account was {{.Decision}}",
		`Hi {{.Name}},

Your account verification request was {{.Decision}}.
{{- with .Reason}}
Reason: {{.}}
{{- end}}
`),
}

// Render produces the subject and plain-text body for a notification kind.
func Render(kind contract.NotificationKind, data map[string]any) (string, string, error) {
	tpl, ok := templates[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}
	var subject, body bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("render %s subject: %w", kind, err)
	}
	if err := tpl.body.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("render %s body: %w", kind, err)
	}
	return subject.String(), body.String(), nil
}
