package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// TemplateWelcome greets a freshly registered account.
const TemplateWelcome = "welcome"

var welcomeText = texttpl.Must(texttpl.New("welcome_text").Parse(
	`Hello {{.FirstName}},

Your account {{.Email}} has been created. You can now sign in and manage
exhibitions from the admin panel.
`))

var welcomeHTML = htmltpl.Must(htmltpl.New("welcome_html").Parse(
	`<p>Hello {{.FirstName}},</p>
<p>Your account <strong>{{.Email}}</strong> has been created. You can now sign
in and manage exhibitions from the admin panel.</p>`))

// Render produces subject, text and HTML bodies for a named template.
func Render(template string, data map[string]any) (subject, text, html string, err error) {
	switch template {
	case TemplateWelcome:
		var tb, hb bytes.Buffer
		if err = welcomeText.Execute(&tb, data); err != nil {
			return
		}
		if err = welcomeHTML.Execute(&hb, data); err != nil {
			return
		}
		return "Welcome to the museum admin panel", tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", template)
	}
}
