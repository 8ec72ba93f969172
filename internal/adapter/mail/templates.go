package mail

import (
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ErrUnknownTemplate is returned for emails naming a template that is not registered.
var ErrUnknownTemplate = errors.New("unknown email template")

//go:embed templates/*.html
var templateFS embed.FS

type layout struct {
	subject string
	body    *template.Template
}

var subjects = map[model.EmailTemplate]string{
	model.EmailTemplatePasswordReset:        "Password reset",
	model.EmailTemplatePasswordResetSuccess: "Your password has been reset",
}

func loadLayouts() (map[model.EmailTemplate]layout, error) {
	layouts := make(map[model.EmailTemplate]layout, len(subjects))
	for name, subject := range subjects {
		file := fmt.Sprintf("templates/%s.html", name)
		body, err := template.ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		layouts[name] = layout{subject: subject, body: body}
	}
	return layouts, nil
}

// templateData merges the recipient name into the template variables.
func templateData(email model.Email) map[string]string {
	data := make(map[string]string, len(email.Variables)+1)
	for k, v := range email.Variables {
		data[k] = v
	}
	if _, ok := data["name"]; !ok {
		data["name"] = email.Name
	}
	return data
}
