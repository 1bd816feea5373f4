package domain

import (
	"strings"
	"time"
)

// Raw rows as read from the backend. They are immutable once written and
// the analytics core only ever reads them.

type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	OrganizationID string
	CreatedAt      time.Time
}

// DisplayName falls back to the email, then the id.
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

type Session struct {
	UserID          string
	CreatedAt       time.Time
	DurationSeconds int64
}

type ScreenView struct {
	UserID     string
	ScreenName string
	CreatedAt  time.Time
}

const (
	AssetEventView     = "view"
	AssetEventDownload = "download"
)

type AssetEvent struct {
	UserID    string
	AssetID   string
	AssetName string
	Category  string
	EventType string
	CreatedAt time.Time
}

type Post struct {
	ID        string
	AuthorID  string
	Title     string
	CreatedAt time.Time
}

// PostReaction is a like or a comment.
type PostReaction struct {
	PostID    string
	UserID    string
	CreatedAt time.Time
}

type AIQuery struct {
	UserID    string
	Topic     string
	CreatedAt time.Time
}

type Chat struct {
	ID        string
	CreatedBy string
	IsGroup   bool
	CreatedAt time.Time
}

type Message struct {
	ChatID    string
	SenderID  string
	CreatedAt time.Time
}

type ProfileView struct {
	ViewerID     string
	ViewedUserID string
	CreatedAt    time.Time
}

type Search struct {
	UserID    string
	Query     string
	CreatedAt time.Time
}

type Notification struct {
	ID             string
	Title          string
	Type           string
	RecipientCount int
	CreatedAt      time.Time
}

const (
	NotificationOpened  = "opened"
	NotificationClicked = "clicked"
)

type NotificationEvent struct {
	NotificationID string
	UserID         string
	EventType      string
	CreatedAt      time.Time
}

type Category struct {
	ID   string
	Name string
}
