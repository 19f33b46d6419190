package notification

import "context"

type EmailService interface {
	SendText(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, body string) error
}
