package postgres

import (
	"context"

	"github.com/lib/pq"

	"conveymed-analytics/internal/analytics/core/domain"
	"conveymed-analytics/internal/analytics/core/ports"
)

// AnalyticsRepository reads raw rows for the analytics sections. It never
// aggregates; counting happens in the aggregate package.
type AnalyticsRepository struct {
	db DB
}

func NewAnalyticsRepository(db DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

var _ ports.AnalyticsReaderPort = (*AnalyticsRepository)(nil)

const userColumns = `id,
    COALESCE(first_name, ''),
    COALESCE(last_name, ''),
    COALESCE(email, ''),
    COALESCE(organization_id, ''),
    created_at`

func scanUser(rows RowScanner) (domain.User, error) {
	var u domain.User
	err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.OrganizationID, &u.CreatedAt)
	return u, err
}

func (r *AnalyticsRepository) ListUsers(ctx context.Context, f domain.Filter) ([]domain.User, error) {
	query, args := selectFrom("users", userColumns).filter("id", f).build()
	return collect(ctx, r.db, query, args, scanUser)
}

func (r *AnalyticsRepository) CountUsers(ctx context.Context, s domain.Scope) (int, error) {
	query, args := selectFrom("users", "").withScope("id", s).buildCount()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var total int64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *AnalyticsRepository) ListSessions(ctx context.Context, f domain.Filter) ([]domain.Session, error) {
	query, args := selectFrom("user_sessions", "user_id, created_at, COALESCE(duration_seconds, 0)").
		filter("user_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.Session, error) {
		var s domain.Session
		err := rows.Scan(&s.UserID, &s.CreatedAt, &s.DurationSeconds)
		return s, err
	})
}

func (r *AnalyticsRepository) ListScreenViews(ctx context.Context, f domain.Filter) ([]domain.ScreenView, error) {
	query, args := selectFrom("screen_views", "user_id, screen_name, created_at").
		filter("user_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.ScreenView, error) {
		var v domain.ScreenView
		err := rows.Scan(&v.UserID, &v.ScreenName, &v.CreatedAt)
		return v, err
	})
}

func (r *AnalyticsRepository) ListAssetEvents(ctx context.Context, f domain.Filter, eventTypes ...string) ([]domain.AssetEvent, error) {
	q := selectFrom("asset_events",
		"user_id, asset_id, COALESCE(asset_name, ''), COALESCE(category, ''), event_type, created_at").
		filter("user_id", f)
	if len(eventTypes) > 0 {
		q.where("event_type = ANY(%s)", pq.Array(eventTypes))
	}
	query, args := q.build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.AssetEvent, error) {
		var e domain.AssetEvent
		err := rows.Scan(&e.UserID, &e.AssetID, &e.AssetName, &e.Category, &e.EventType, &e.CreatedAt)
		return e, err
	})
}

func (r *AnalyticsRepository) ListPosts(ctx context.Context, f domain.Filter) ([]domain.Post, error) {
	query, args := selectFrom("posts", "id, author_id, COALESCE(title, ''), created_at").
		filter("author_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.Post, error) {
		var p domain.Post
		err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.CreatedAt)
		return p, err
	})
}

func (r *AnalyticsRepository) ListLikes(ctx context.Context, f domain.Filter) ([]domain.PostReaction, error) {
	return r.listReactions(ctx, "post_likes", f)
}

func (r *AnalyticsRepository) ListComments(ctx context.Context, f domain.Filter) ([]domain.PostReaction, error) {
	return r.listReactions(ctx, "post_comments", f)
}

func (r *AnalyticsRepository) listReactions(ctx context.Context, table string, f domain.Filter) ([]domain.PostReaction, error) {
	query, args := selectFrom(table, "post_id, user_id, created_at").
		filter("user_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.PostReaction, error) {
		var p domain.PostReaction
		err := rows.Scan(&p.PostID, &p.UserID, &p.CreatedAt)
		return p, err
	})
}

func (r *AnalyticsRepository) ListAIQueries(ctx context.Context, f domain.Filter) ([]domain.AIQuery, error) {
	query, args := selectFrom("ai_queries", "user_id, COALESCE(topic, ''), created_at").
		filter("user_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.AIQuery, error) {
		var q domain.AIQuery
		err := rows.Scan(&q.UserID, &q.Topic, &q.CreatedAt)
		return q, err
	})
}

func (r *AnalyticsRepository) ListChats(ctx context.Context, f domain.Filter) ([]domain.Chat, error) {
	query, args := selectFrom("chats", "id, created_by, is_group, created_at").
		filter("created_by", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.Chat, error) {
		var c domain.Chat
		err := rows.Scan(&c.ID, &c.CreatedBy, &c.IsGroup, &c.CreatedAt)
		return c, err
	})
}

func (r *AnalyticsRepository) ListMessages(ctx context.Context, f domain.Filter) ([]domain.Message, error) {
	query, args := selectFrom("messages", "chat_id, sender_id, created_at").
		filter("sender_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.Message, error) {
		var m domain.Message
		err := rows.Scan(&m.ChatID, &m.SenderID, &m.CreatedAt)
		return m, err
	})
}

func (r *AnalyticsRepository) ListProfileViews(ctx context.Context, f domain.Filter) ([]domain.ProfileView, error) {
	query, args := selectFrom("profile_views", "viewer_id, viewed_user_id, created_at").
		filter("viewer_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.ProfileView, error) {
		var v domain.ProfileView
		err := rows.Scan(&v.ViewerID, &v.ViewedUserID, &v.CreatedAt)
		return v, err
	})
}

func (r *AnalyticsRepository) ListSearches(ctx context.Context, f domain.Filter) ([]domain.Search, error) {
	query, args := selectFrom("searches", "user_id, query, created_at").
		filter("user_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.Search, error) {
		var s domain.Search
		err := rows.Scan(&s.UserID, &s.Query, &s.CreatedAt)
		return s, err
	})
}

// ListNotifications ignores the scope: notifications are broadcast and
// have no actor column.
func (r *AnalyticsRepository) ListNotifications(ctx context.Context, f domain.Filter) ([]domain.Notification, error) {
	query, args := selectFrom("notifications",
		"id, COALESCE(title, ''), COALESCE(type, ''), COALESCE(recipient_count, 0), created_at").
		withRange(f.Range).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.Notification, error) {
		var (
			n          domain.Notification
			recipients int64
		)
		err := rows.Scan(&n.ID, &n.Title, &n.Type, &recipients, &n.CreatedAt)
		n.RecipientCount = int(recipients)
		return n, err
	})
}

func (r *AnalyticsRepository) ListNotificationEvents(ctx context.Context, f domain.Filter) ([]domain.NotificationEvent, error) {
	query, args := selectFrom("notification_events", "notification_id, user_id, event_type, created_at").
		filter("user_id", f).
		build()
	return collect(ctx, r.db, query, args, func(rows RowScanner) (domain.NotificationEvent, error) {
		var e domain.NotificationEvent
		err := rows.Scan(&e.NotificationID, &e.UserID, &e.EventType, &e.CreatedAt)
		return e, err
	})
}

const activeCategoriesSQL = `
SELECT id, name
FROM categories
WHERE is_active
ORDER BY name`

func (r *AnalyticsRepository) ActiveCategories(ctx context.Context) ([]domain.Category, error) {
	return collect(ctx, r.db, activeCategoriesSQL, nil, func(rows RowScanner) (domain.Category, error) {
		var c domain.Category
		err := rows.Scan(&c.ID, &c.Name)
		return c, err
	})
}

const organizationMembersSQL = `
SELECT id
FROM users
WHERE organization_id = $1
ORDER BY created_at`

func (r *AnalyticsRepository) OrganizationMemberIDs(ctx context.Context, organizationID string) ([]string, error) {
	return collect(ctx, r.db, organizationMembersSQL, []any{organizationID}, scanString)
}

func (r *AnalyticsRepository) UserNames(ctx context.Context, ids []string) (map[string]domain.User, error) {
	out := make(map[string]domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := "SELECT " + userColumns + "\nFROM users\nWHERE id = ANY($1)"
	users, err := collect(ctx, r.db, query, []any{pq.Array(ids)}, scanUser)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

const existingContentSQL = `
SELECT id
FROM content_items
WHERE id = ANY($1)`

func (r *AnalyticsRepository) ExistingContentIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	found, err := collect(ctx, r.db, existingContentSQL, []any{pq.Array(ids)}, scanString)
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

func scanString(rows RowScanner) (string, error) {
	var s string
	err := rows.Scan(&s)
	return s, err
}

// collect runs query and scans every row. Backend errors are returned
// unchanged.
func collect[T any](ctx context.Context, db DB, query string, args []any, scan func(RowScanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
