package timer

import "github.com/gen2brain/beeep"

// Notifier sends a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier notifies through the operating system.
type DesktopNotifier struct {
	IconPath string
}

func (d DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, d.IconPath)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) error {
	return nil
}
