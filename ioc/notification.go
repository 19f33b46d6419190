package ioc

import (
	"io"

	"github.com/KNICEX/stock-notify/internal/config"
	"github.com/KNICEX/stock-notify/internal/service/monitor"
	"github.com/KNICEX/stock-notify/internal/service/notification"
	"github.com/KNICEX/stock-notify/internal/service/notification/mailgun"
	"go.uber.org/zap"
)

func InitEmailService(s config.Settings, logger *zap.SugaredLogger) notification.EmailService {
	cli := mailgun.NewClient(s.MailgunDomain, s.MailgunKey, s.MailgunAPIBase)
	return mailgun.NewService(cli, mailgun.DefaultSender(s.MailgunDomain), logger)
}

// InitNotifier 默认发邮件给投资人, dryRun 时只打印到 w
func InitNotifier(s config.Settings, dryRun bool, w io.Writer, logger *zap.SugaredLogger) monitor.Notifier {
	if dryRun {
		return monitor.NewConsoleNotifier(w)
	}
	return monitor.NewEmailNotifier(InitEmailService(s, logger), s.Investor)
}
