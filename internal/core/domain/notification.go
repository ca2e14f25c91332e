package domain

import (
	"fmt"
	"time"
)

// NotificationVariant controls how a notification is rendered.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// NotificationKind identifies what produced a notification.
type NotificationKind string

const (
	KindLoginSucceeded NotificationKind = "login_succeeded"
	KindLoginFailed    NotificationKind = "login_failed"
	KindLoggedOut      NotificationKind = "logged_out"
	KindClientCreated  NotificationKind = "client_created"
	KindSearchEmpty    NotificationKind = "search_empty"
)

// Notification is a short, non-blocking message for the user.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}

func LoginSucceeded(displayName string) Notification {
	return Notification{
		Title:       "Login Successful",
		Description: fmt.Sprintf("Welcome back, %s!", displayName),
		Variant:     VariantDefault,
	}
}

func LoginFailed() Notification {
	return Notification{
		Title:       "Login Failed",
		Description: "Invalid username or password. Please try again.",
		Variant:     VariantDestructive,
	}
}

func LoggedOut() Notification {
	return Notification{
		Title:       "Logged Out",
		Description: "You have been successfully logged out.",
		Variant:     VariantDefault,
	}
}

func ClientCreated(c *Client) Notification {
	return Notification{
		Title:       "Client Created",
		Description: fmt.Sprintf("New client %s (ID: %s) has been added successfully.", c.FullName(), c.ID),
		Variant:     VariantDefault,
	}
}

func SearchEmpty() Notification {
	return Notification{
		Title:       "No Results",
		Description: "No clients found matching your search criteria.",
		Variant:     VariantDestructive,
	}
}

// Activity is an audit entry derived from an emitted notification.
type Activity struct {
	Kind        NotificationKind    `json:"kind" bson:"kind"`
	Actor       string              `json:"actor" bson:"actor"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description" bson:"description"`
	Variant     NotificationVariant `json:"variant" bson:"variant"`
	OccurredAt  time.Time           `json:"occurred_at" bson:"occurred_at"`
}
