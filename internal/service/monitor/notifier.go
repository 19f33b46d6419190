package monitor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/KNICEX/stock-notify/internal/service/notification"
)

type consoleNotifier struct {
	w io.Writer
}

// NewConsoleNotifier prints messages to w (stdout when nil) instead of
// sending them anywhere.
func NewConsoleNotifier(w io.Writer) Notifier {
	if w == nil {
		w = os.Stdout
	}
	return consoleNotifier{w: w}
}

func (c consoleNotifier) Notify(ctx context.Context, msg Message) error {
	_, err := fmt.Fprintf(c.w, "[notify] %s: %s\n", msg.Subject, msg.Body)
	return err
}

type emailNotifier struct {
	svc notification.EmailService
	to  string
}

// NewEmailNotifier sends each message as a plain text email to one recipient.
func NewEmailNotifier(svc notification.EmailService, to string) Notifier {
	return &emailNotifier{
		svc: svc,
		to:  to,
	}
}

func (n *emailNotifier) Notify(ctx context.Context, msg Message) error {
	return n.svc.SendText(ctx, n.to, msg.Subject, msg.Body)
}
