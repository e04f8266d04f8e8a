// Package notify sends now-playing desktop notifications via D-Bus.
package notify

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string // summary text
	Body       string // body text, supports basic markup
	Icon       string // path to an image file or icon name
	ReplacesID uint32 // 0 = new notification, >0 = replace existing
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID. It returns 0 and
	// nil when notifications are unavailable.
	Notify(n Notification) (uint32, error)
}
