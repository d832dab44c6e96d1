package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/tkaraca/menubook-backend/internal/config"
)

var resetTemplate = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>We received a request to reset your MenuBook password. The link below is
valid for 15 minutes:</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>
`))

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(cfg.ResendAPIKey),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (s *EmailService) SendPasswordResetEmail(to, name, resetURL string) error {
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, map[string]string{
		"Name":     name,
		"ResetURL": resetURL,
	}); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{to},
		Subject: "Reset your MenuBook password",
		Html:    body.String(),
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send password reset email",
			zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("password reset email sent",
		zap.String("to", to), zap.String("email_id", resp.Id))
	return nil
}
