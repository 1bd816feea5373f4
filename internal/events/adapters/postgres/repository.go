package postgres

import (
	"context"
	"fmt"

	analytics "conveymed-analytics/internal/analytics/core/domain"
	"conveymed-analytics/internal/events/core/domain"
	"conveymed-analytics/internal/events/core/ports"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

// SQL templates, one per owning table. The analytics reader queries the
// same tables.
const (
	insertScreenViewSQL = `
INSERT INTO screen_views (user_id, screen_name, created_at, dedupe_key)
VALUES ($1, $2, $3, $4)
ON CONFLICT (dedupe_key) DO NOTHING;
`
	insertAssetEventSQL = `
INSERT INTO asset_events (user_id, asset_id, asset_name, category, event_type, created_at, dedupe_key)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (dedupe_key) DO NOTHING;
`
	insertAIQuerySQL = `
INSERT INTO ai_queries (user_id, topic, created_at, dedupe_key)
VALUES ($1, $2, $3, $4)
ON CONFLICT (dedupe_key) DO NOTHING;
`
	insertProfileViewSQL = `
INSERT INTO profile_views (viewer_id, viewed_user_id, created_at, dedupe_key)
VALUES ($1, $2, $3, $4)
ON CONFLICT (dedupe_key) DO NOTHING;
`
	insertSearchSQL = `
INSERT INTO searches (user_id, query, created_at, dedupe_key)
VALUES ($1, $2, $3, $4)
ON CONFLICT (dedupe_key) DO NOTHING;
`
	insertNotificationEventSQL = `
INSERT INTO notification_events (notification_id, user_id, event_type, created_at, dedupe_key)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (dedupe_key) DO NOTHING;
`
)

func (r *EventRepository) InsertEvent(ctx context.Context, e *domain.Event) (bool, error) {
	query, args, err := insertFor(e)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func insertFor(e *domain.Event) (string, []any, error) {
	switch e.Type {
	case domain.ScreenView:
		return insertScreenViewSQL, []any{e.UserID, e.ResourceID, e.EventTime, e.DedupeKey}, nil
	case domain.AssetView, domain.AssetDownload:
		kind := analytics.AssetEventView
		if e.Type == domain.AssetDownload {
			kind = analytics.AssetEventDownload
		}
		return insertAssetEventSQL, []any{
			e.UserID,
			e.ResourceID,
			nullable(e.Attr("asset_name")),
			nullable(e.Attr("category")),
			kind,
			e.EventTime,
			e.DedupeKey,
		}, nil
	case domain.AIQuery:
		return insertAIQuerySQL, []any{e.UserID, e.ResourceID, e.EventTime, e.DedupeKey}, nil
	case domain.ProfileView:
		return insertProfileViewSQL, []any{e.UserID, e.ResourceID, e.EventTime, e.DedupeKey}, nil
	case domain.Search:
		return insertSearchSQL, []any{e.UserID, e.ResourceID, e.EventTime, e.DedupeKey}, nil
	case domain.NotificationOpen, domain.NotificationClick:
		kind := analytics.NotificationOpened
		if e.Type == domain.NotificationClick {
			kind = analytics.NotificationClicked
		}
		return insertNotificationEventSQL, []any{e.ResourceID, e.UserID, kind, e.EventTime, e.DedupeKey}, nil
	default:
		return "", nil, fmt.Errorf("no table for event type %q", e.Type)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
