package ports

// Severity levels accepted by the notification sink.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Notification is a user-visible confirmation or error message.
type Notification struct {
	Title       string
	Description string
	Severity    string
}

// Notifier is the fire-and-forget notification sink consumed by the core;
// no return value is observed.
type Notifier interface {
	Notify(n Notification)
}

// NavigateFunc is invoked after a role switch to send the caller back to a
// default landing view.
type NavigateFunc func(viewID string)
