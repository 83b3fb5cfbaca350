package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/TanaroSch/hotkey-listener/internal/config"
)

// NotificationSink shows a desktop notification for every fired action.
type NotificationSink struct {
	appName string
	logger  zerolog.Logger
	show    func(appName, title, message string) error
}

// NewNotificationSink creates a NotificationSink using the platform notifier.
func NewNotificationSink(appName string, logger zerolog.Logger) *NotificationSink {
	return &NotificationSink{
		appName: appName,
		logger:  logger,
		show:    platformNotify,
	}
}

func (n *NotificationSink) Name() string { return config.SinkNotify }

// Deliver displays the notification.
func (n *NotificationSink) Deliver(_ context.Context, ev Event) error {
	message := fmt.Sprintf("%s at %s", ev.Action, ev.At.Format("15:04:05"))
	if err := n.show(n.appName, n.appName, message); err != nil {
		return fmt.Errorf("show notification: %w", err)
	}
	n.logger.Debug().Str("action", ev.Action).Msg("notification sent")
	return nil
}
