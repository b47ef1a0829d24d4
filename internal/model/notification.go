package model

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationPurchase NotificationType = "purchase"
	NotificationSystem   NotificationType = "system"
	NotificationInfo     NotificationType = "info"
)

// Notification is a user-facing event record.
type Notification struct {
	ID      string            `json:"id"`
	Type    NotificationType  `json:"type"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Date    time.Time         `json:"date"`
	Read    bool              `json:"read"`
	Data    *NotificationData `json:"data,omitempty"`
}

// NotificationData carries optional order details.
type NotificationData struct {
	OrderNumber string   `json:"orderNumber,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

// NewNotification holds the caller-supplied fields of a notification.
type NewNotification struct {
	Type    NotificationType
	Title   string
	Message string
	Data    *NotificationData
}

// NotificationList is the response payload for the notifications endpoint.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}
