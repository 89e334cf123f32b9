package contact

import "time"

// Submit control labels.
const (
	SubmitLabel     = "Send Message"
	SubmitBusyLabel = "Sending..."
)

// User-facing notification copy and display windows.
const (
	SuccessMessage = "Thank you for your message! I'll get back to you soon."
	FailureMessage = "Failed to send message. Please try again or contact me directly via email."

	SuccessDisplay = 5 * time.Second
	FailureDisplay = 8 * time.Second
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient message that hides itself after Duration.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Message  string           `json:"message"`
	Duration time.Duration    `json:"-"`
}

// DurationMs is Duration in milliseconds, for clients that schedule the dismiss.
func (n Notification) DurationMs() int64 {
	return n.Duration.Milliseconds()
}

// UI is the surface the workflow drives. Implementations own rendering; the
// workflow only reads values and writes state.
type UI interface {
	// FieldValue returns the current raw input for f.
	FieldValue(f Field) string
	// SetFieldError shows msg under f and marks it invalid; "" clears both.
	SetFieldError(f Field, msg string)
	// SetSubmitBusy disables the submit control and swaps its label while busy.
	SetSubmitBusy(busy bool)
	// ShowNotification displays n and dismisses it after n.Duration.
	ShowNotification(n Notification)
	// ResetFields empties every input.
	ResetFields()
}

func successNotification() Notification {
	return Notification{Kind: NotificationSuccess, Message: SuccessMessage, Duration: SuccessDisplay}
}

func failureNotification() Notification {
	return Notification{Kind: NotificationError, Message: FailureMessage, Duration: FailureDisplay}
}
