package domain

import "time"

type EventType string

const (
	ScreenView        EventType = "screen_view"
	AssetView         EventType = "asset_view"
	AssetDownload     EventType = "asset_download"
	AIQuery           EventType = "ai_query"
	ProfileView       EventType = "profile_view"
	Search            EventType = "search"
	NotificationOpen  EventType = "notification_open"
	NotificationClick EventType = "notification_click"
)

var eventTypes = map[EventType]bool{
	ScreenView:        true,
	AssetView:         true,
	AssetDownload:     true,
	AIQuery:           true,
	ProfileView:       true,
	Search:            true,
	NotificationOpen:  true,
	NotificationClick: true,
}

func (t EventType) Valid() bool { return eventTypes[t] }

// Event is one tracked app action. ResourceID is what the action was on:
// screen name, asset id, AI topic, viewed user id, search text or
// notification id, depending on Type.
type Event struct {
	Type       EventType
	UserID     string
	ResourceID string
	Attributes map[string]string // asset_name, category
	EventTime  time.Time
	DedupeKey  string
}

func (e *Event) Attr(key string) string {
	if e.Attributes == nil {
		return ""
	}
	return e.Attributes[key]
}
