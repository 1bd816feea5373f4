package ports

import (
	"context"

	"conveymed-analytics/internal/analytics/core/domain"
)

// AnalyticsReaderPort is the Query Layer. Every method returns raw rows
// (or the backend error unchanged) and never aggregates.
type AnalyticsReaderPort interface {
	ListUsers(ctx context.Context, f domain.Filter) ([]domain.User, error)
	CountUsers(ctx context.Context, s domain.Scope) (int, error)
	ListSessions(ctx context.Context, f domain.Filter) ([]domain.Session, error)
	ListScreenViews(ctx context.Context, f domain.Filter) ([]domain.ScreenView, error)
	// ListAssetEvents returns every event type when eventTypes is empty.
	ListAssetEvents(ctx context.Context, f domain.Filter, eventTypes ...string) ([]domain.AssetEvent, error)
	ListPosts(ctx context.Context, f domain.Filter) ([]domain.Post, error)
	ListLikes(ctx context.Context, f domain.Filter) ([]domain.PostReaction, error)
	ListComments(ctx context.Context, f domain.Filter) ([]domain.PostReaction, error)
	ListAIQueries(ctx context.Context, f domain.Filter) ([]domain.AIQuery, error)
	ListChats(ctx context.Context, f domain.Filter) ([]domain.Chat, error)
	ListMessages(ctx context.Context, f domain.Filter) ([]domain.Message, error)
	ListProfileViews(ctx context.Context, f domain.Filter) ([]domain.ProfileView, error)
	ListSearches(ctx context.Context, f domain.Filter) ([]domain.Search, error)
	ListNotifications(ctx context.Context, f domain.Filter) ([]domain.Notification, error)
	ListNotificationEvents(ctx context.Context, f domain.Filter) ([]domain.NotificationEvent, error)
	ActiveCategories(ctx context.Context) ([]domain.Category, error)

	// OrganizationMemberIDs resolves an organization filter into a scope.
	OrganizationMemberIDs(ctx context.Context, organizationID string) ([]string, error)

	// Second phase lookups, called with the top-N ids only.
	UserNames(ctx context.Context, ids []string) (map[string]domain.User, error)
	ExistingContentIDs(ctx context.Context, ids []string) (map[string]bool, error)
}
