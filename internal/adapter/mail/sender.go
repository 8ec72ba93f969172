package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, email model.Email) error
}

// SMTPOptions configure SMTPSender.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender renders templates with go-mail and delivers them over SMTP.
type SMTPSender struct {
	opts     SMTPOptions
	layouts  map[model.EmailTemplate]layout
	dispatch func(ctx context.Context, msg *gomail.Msg) error
}

// NewSMTPSender parses templates and prepares the SMTP client options.
func NewSMTPSender(opts SMTPOptions) (*SMTPSender, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	layouts, err := loadLayouts()
	if err != nil {
		return nil, err
	}
	s := &SMTPSender{opts: opts, layouts: layouts}
	s.dispatch = s.dialAndSend
	return s, nil
}

// Send builds the message for email and hands it to the SMTP server.
func (s *SMTPSender) Send(ctx context.Context, email model.Email) error {
	msg, err := s.buildMessage(email)
	if err != nil {
		return err
	}
	return s.dispatch(ctx, msg)
}

func (s *SMTPSender) buildMessage(email model.Email) (*gomail.Msg, error) {
	l, ok := s.layouts[email.Template]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, email.Template)
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.opts.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if email.Name != "" {
		if err := msg.AddToFormat(email.Name, email.To); err != nil {
			return nil, fmt.Errorf("set recipient: %w", err)
		}
	} else if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(l.subject)
	if err := msg.SetBodyHTMLTemplate(l.body, templateData(email)); err != nil {
		return nil, fmt.Errorf("render %s: %w", email.Template, err)
	}
	return msg, nil
}

func (s *SMTPSender) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	options := []gomail.Option{
		gomail.WithPort(s.opts.Port),
		gomail.WithTimeout(s.opts.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.opts.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.opts.Username),
			gomail.WithPassword(s.opts.Password),
		)
	}
	client, err := gomail.NewClient(s.opts.Host, options...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// LogSender writes emails to the log instead of sending them. Used when SMTP is not configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, email model.Email) error {
	if _, ok := subjects[email.Template]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, email.Template)
	}
	attrs := []any{slog.String("to", email.To), slog.String("template", string(email.Template))}
	for k, v := range email.Variables {
		attrs = append(attrs, slog.String(k, v))
	}
	s.logger.Info("email not sent, smtp disabled", attrs...)
	return nil
}
