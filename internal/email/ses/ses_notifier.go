package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"devonxona/internal/domain"
	"devonxona/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESNotifier creates a new SES-backed workflow Notifier.
func NewSESNotifier(region, fromAddress, fromName, frontendURL string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesNotifier{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesNotifier) NotifyExecutorAssigned(ctx context.Context, to *domain.User, c *domain.Correspondence) error {
	subject := fmt.Sprintf("Sizga hujjat biriktirildi: %s", c.Title)
	text := fmt.Sprintf("Hurmatli %s,\n\nSizga asosiy ijrochi sifatida hujjat biriktirildi:\n%q\n\nKo'rish: %s\n\nDevonxona", to.FullName, c.Title, s.documentURL(c))
	return s.send(ctx, to, subject, text, c)
}

func (s *sesNotifier) NotifyReviewRequested(ctx context.Context, to *domain.User, c *domain.Correspondence) error {
	subject := fmt.Sprintf("Kelishuv so'raldi: %s", c.Title)
	text := fmt.Sprintf("Hurmatli %s,\n\nQuyidagi hujjat kelishuvingizni kutmoqda:\n%q\n\nKo'rish: %s\n\nDevonxona", to.FullName, c.Title, s.documentURL(c))
	return s.send(ctx, to, subject, text, c)
}

func (s *sesNotifier) NotifyReviewRejected(ctx context.Context, to *domain.User, c *domain.Correspondence, reason string) error {
	subject := fmt.Sprintf("Hujjat qayta ishlashga qaytarildi: %s", c.Title)
	text := fmt.Sprintf("Hurmatli %s,\n\nHujjat kelishuvdan qaytarildi:\n%q\n\nSabab: %s\n\nKo'rish: %s\n\nDevonxona", to.FullName, c.Title, reason, s.documentURL(c))
	return s.send(ctx, to, subject, text, c)
}

func (s *sesNotifier) NotifyDispatched(ctx context.Context, to *domain.User, c *domain.Correspondence) error {
	subject := fmt.Sprintf("Hujjat jo'natildi: %s", c.Title)
	text := fmt.Sprintf("Hurmatli %s,\n\nHujjat jo'natildi va arxivlandi:\n%q\n\nKo'rish: %s\n\nDevonxona", to.FullName, c.Title, s.documentURL(c))
	return s.send(ctx, to, subject, text, c)
}

func (s *sesNotifier) documentURL(c *domain.Correspondence) string {
	return fmt.Sprintf("%s/correspondences/%s", s.frontendURL, c.ID)
}

func (s *sesNotifier) send(ctx context.Context, to *domain.User, subject, textBody string, c *domain.Correspondence) error {
	htmlBody := buildNoticeHTML(to.FullName, subject, s.documentURL(c))
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{to.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildNoticeHTML(name, subject, documentURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  <p>Hurmatli %s,</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Hujjatni ko'rish</a>
  </p>
  <p>Yoki havolani brauzeringizga nusxalang:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Devonxona - hujjat aylanmasi tizimi</p>
</body>
</html>`, subject, name, documentURL, documentURL)
}
