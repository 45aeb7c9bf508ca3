// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"
)

type MailerInterface interface {
	SendInvitation(context.Context, *InvitationMail) error
}

type SESClientInterface interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}
