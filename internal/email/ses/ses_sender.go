package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"khata/internal/config"
	"khata/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}, nil
}

func (s *sesSender) SendSubmissionNotice(ctx context.Context, toEmail string, notice port.SubmissionNotice) error {
	msg := buildSubmissionMessage(s.fromName, notice)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.subject},
				Body: &types.Body{
					Html: &types.Content{Data: &msg.html},
					Text: &types.Content{Data: &msg.text},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
