//go:build windows

package notify

import (
	"errors"
	"strings"

	"github.com/go-toast/toast"
)

// ErrNotificationsUnavailable is returned when Windows has toast notifications disabled.
var ErrNotificationsUnavailable = errors.New("notification platform is unavailable")

func platformNotify(appName, title, message string) error {
	notification := toast.Notification{
		AppID:   appName,
		Title:   title,
		Message: message,
	}

	if err := notification.Push(); err != nil {
		// Usually means notifications are disabled in Windows Settings.
		if strings.Contains(err.Error(), "notification platform is unavailable") {
			return ErrNotificationsUnavailable
		}
		return err
	}
	return nil
}
