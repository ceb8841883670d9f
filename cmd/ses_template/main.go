package main

import (
	"context"
	"dashboard/internal/config"
	"fmt"
	"os"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	subject  = "Reset Your Password"
	htmlPart = `<h2>Password Reset Request</h2>
<p>You requested to reset your password. Click the link below to reset it:</p>
<a href="{{passwordResetUrl}}">Reset Password</a>
<p>This link will expire in 1 hour.</p>
<p>If you didn't request this, please ignore this email.</p>`
	textPart = `You requested to reset your password. Open the link below to reset it:

{{passwordResetUrl}}

This link will expire in 1 hour. If you didn't request this, please ignore this email.`
)

// Manages the SES template used for password reset emails:
//
//	ses_template create|delete
func main() {
	if len(os.Args) != 2 {
		fail(fmt.Errorf("usage: %s create|delete", os.Args[0]))
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	svc, err := newClient(cfg)
	if err != nil {
		fail(err)
	}

	name := cfg.AwsEmailPasswordResetTemplate
	switch os.Args[1] {
	case "create":
		err = createTemplate(svc, name)
	case "delete":
		err = deleteTemplate(svc, name)
	default:
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Success: %s %s\n", os.Args[1], name)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func newClient(cfg *config.Config) (*ses.Client, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return ses.NewFromConfig(awsCfg), nil
}

func createTemplate(svc *ses.Client, name string) error {
	s, h, t := subject, htmlPart, textPart
	_, err := svc.CreateTemplate(context.Background(), &ses.CreateTemplateInput{
		Template: &types.Template{
			TemplateName: &name,
			SubjectPart:  &s,
			HtmlPart:     &h,
			TextPart:     &t,
		},
	})
	return err
}

func deleteTemplate(svc *ses.Client, name string) error {
	_, err := svc.DeleteTemplate(context.Background(), &ses.DeleteTemplateInput{TemplateName: &name})
	return err
}
