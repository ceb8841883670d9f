package email

import (
	"context"
	c "dashboard/internal/core/domain/common"
	"dashboard/internal/core/domain/user"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesAPI interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type EmailSender struct {
	ses sesAPI
	// This address must be verified with Amazon SES.
	sender                string
	passwordResetTemplate string
}

func NewEmailSender(awsConfig aws.Config, sender string, passwordResetTemplate string) *EmailSender {
	return &EmailSender{
		ses:                   ses.NewFromConfig(awsConfig),
		sender:                sender,
		passwordResetTemplate: passwordResetTemplate,
	}
}

func (s *EmailSender) SendPasswordResetLink(ctx context.Context, to c.Email, link user.PasswordResetLink) error {
	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			Email:            string(to),
			PasswordResetUrl: string(link),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(to)},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type passwordResetTemplateParams struct {
	Email            string `json:"email"`
	PasswordResetUrl string `json:"passwordResetUrl"`
}
