package mailgun

import (
	"context"
	"fmt"

	"github.com/KNICEX/stock-notify/internal/service/notification"
	"github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ notification.EmailService = (*Service)(nil)

// client 是 mailgun.Mailgun 中用到的部分
type client interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

type Service struct {
	cli    client
	sender string
	logger *zap.SugaredLogger
}

// DefaultSender is the From address used for a sending domain.
func DefaultSender(domain string) string {
	return fmt.Sprintf("Price Notify <notify@%s>", domain)
}

// NewClient builds a Mailgun client. An empty apiBase keeps the library default.
func NewClient(domain, apiKey, apiBase string) *mailgun.MailgunImpl {
	mg := mailgun.NewMailgun(domain, apiKey)
	if apiBase != "" {
		mg.SetAPIBase(apiBase)
	}
	return mg
}

func NewService(cli client, sender string, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		cli:    cli,
		sender: sender,
		logger: logger,
	}
}

func (s *Service) SendText(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, s.cli.NewMessage(s.sender, subject, body, to))
}

func (s *Service) SendHTML(ctx context.Context, to, subject, body string) error {
	m := s.cli.NewMessage(s.sender, subject, "", to)
	m.SetHtml(body)
	return s.send(ctx, m)
}

func (s *Service) send(ctx context.Context, m *mailgun.Message) error {
	resp, id, err := s.cli.Send(ctx, m)
	if err != nil {
		return errors.Wrap(err, "mailgun send")
	}
	s.logger.Debugw("mail queued", "id", id, "response", resp)
	return nil
}
