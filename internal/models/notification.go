package models

type NotificationVariant string

const (
	NotificationSuccess NotificationVariant = "success"
	NotificationError   NotificationVariant = "error"
	NotificationWarning NotificationVariant = "warning"
	NotificationInfo    NotificationVariant = "info"
)

// Notification is a transient message shown to the user after an action.
type Notification struct {
	Variant     NotificationVariant `json:"variant"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
}
