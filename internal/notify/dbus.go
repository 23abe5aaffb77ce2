//go:build linux

package notify

import (
	"context"
	"path/filepath"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busName = "org.freedesktop.Notifications"
	busPath = "/org/freedesktop/Notifications"

	appName = "rpgmplay"

	// callTimeout bounds a call to a notification daemon that hangs.
	callTimeout = 2 * time.Second
)

type busNotifier struct {
	obj dbus.BusObject
}

// New returns a Notifier on the session bus, or Nop when there is no
// session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop{}, nil //nolint:nilerr // notifications are optional
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (n *busNotifier) Notify(notif Notification) (uint32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	var id uint32
	err := n.obj.CallWithContext(ctx, busName+".Notify", 0,
		appName, notif.ReplacesID, "", notif.Title, notif.Body,
		[]string{}, hints(notif), notif.Timeout,
	).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (n *busNotifier) Close(id uint32) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return n.obj.CallWithContext(ctx, busName+".CloseNotification", 0, id).Err
}

// hints builds the notification hints. A file icon goes in image-path so
// daemons show the game art instead of a themed icon.
func hints(notif Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
		"category":      dbus.MakeVariant("x-rpgmplay.track"),
	}
	if filepath.IsAbs(notif.Icon) {
		h["image-path"] = dbus.MakeVariant("file://" + notif.Icon)
	} else if notif.Icon != "" {
		h["image-path"] = dbus.MakeVariant(notif.Icon)
	}
	return h
}
