package localauth

import (
	"context"

	"go.uber.org/zap"
)

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

// LogMailer writes outgoing mail to the log instead of delivering it.
type LogMailer struct {
	Log *zap.Logger
}

func (m LogMailer) SendPasswordReset(_ context.Context, to, link string) error {
	m.Log.Info("password reset requested", zap.String("to", to), zap.String("link", link))
	return nil
}
