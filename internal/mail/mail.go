// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	textTemplate "text/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

const charset = "UTF-8"

var ErrSendFailed = fmt.Errorf("failed to send mail")

// InvitationMail is what the invitee receives: a recovery link that signs them in
// and the code to type when the link is opened on another device.
type InvitationMail struct {
	To         string
	AgencyName string
	Role       string
	Link       string
	Code       string
}

var (
	invitationSubject = textTemplate.Must(textTemplate.New("subject").Parse(
		`You have been invited to join {{ .AgencyName }}`,
	))
	invitationText = textTemplate.Must(textTemplate.New("text").Parse(
		`You have been invited to join {{ .AgencyName }} as {{ .Role }}.

Open the following link to accept the invitation:
{{ .Link }}
{{ if .Code }}
If asked, use the code {{ .Code }}.
{{ end }}`,
	))
	invitationHTML = template.Must(template.New("html").Parse(
		`<p>You have been invited to join <strong>{{ .AgencyName }}</strong> as {{ .Role }}.</p>
<p><a href="{{ .Link }}">Accept the invitation</a></p>
{{ if .Code }}<p>If asked, use the code <code>{{ .Code }}</code>.</p>{{ end }}`,
	))
)

type Mailer struct {
	client SESClientInterface
	sender string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Mailer) SendInvitation(ctx context.Context, msg *InvitationMail) error {
	ctx, span := m.tracer.Start(ctx, "mail.Mailer.SendInvitation")
	defer span.End()

	subject, text, html, err := renderInvitation(msg)
	if err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject), Charset: aws.String(charset)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(text), Charset: aws.String(charset)},
				Html: &sestypes.Content{Data: aws.String(html), Charset: aws.String(charset)},
			},
		},
	}

	_, err = m.client.SendEmail(ctx, input)

	v := 1.0
	if err != nil {
		v = 0.0
	}
	if mErr := m.monitor.SetDependencyAvailability(map[string]string{"component": "ses"}, v); mErr != nil {
		m.logger.Debugf("failed to record ses availability: %v", mErr)
	}

	if err != nil {
		m.logger.Errorf("failed to send invitation mail: %v", err)
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	return nil
}

func renderInvitation(msg *InvitationMail) (string, string, string, error) {
	var subject, text, html bytes.Buffer

	if err := invitationSubject.Execute(&subject, msg); err != nil {
		return "", "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	if err := invitationText.Execute(&text, msg); err != nil {
		return "", "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	if err := invitationHTML.Execute(&html, msg); err != nil {
		return "", "", "", fmt.Errorf("failed to render html body: %w", err)
	}

	return subject.String(), text.String(), html.String(), nil
}

func NewMailer(client SESClientInterface, sender string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Mailer {
	m := new(Mailer)

	m.client = client
	m.sender = sender
	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}

// NewSESMailer loads the AWS credential chain for region and sends through SES.
func NewSESMailer(ctx context.Context, region, sender string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Mailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return NewMailer(ses.NewFromConfig(cfg), sender, tracer, monitor, logger), nil
}
