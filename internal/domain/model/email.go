package model

// EmailTemplate names a registered outgoing email layout.
type EmailTemplate string

const (
	EmailTemplatePasswordReset        EmailTemplate = "password-reset"
	EmailTemplatePasswordResetSuccess EmailTemplate = "password-reset-success"
)

// Email is a queued outgoing message rendered from a template.
type Email struct {
	To        string
	Name      string
	Template  EmailTemplate
	Variables map[string]string
}
