package usecase

import (
	"context"

	"conveymed-analytics/internal/analytics/core/domain"
)

// noRows stands in for the reader when the scope can never match a row,
// e.g. an organization without members.
type noRows struct{}

func (noRows) ListUsers(context.Context, domain.Filter) ([]domain.User, error) {
	return nil, nil
}
func (noRows) CountUsers(context.Context, domain.Scope) (int, error) {
	return 0, nil
}
func (noRows) ListSessions(context.Context, domain.Filter) ([]domain.Session, error) {
	return nil, nil
}
func (noRows) ListScreenViews(context.Context, domain.Filter) ([]domain.ScreenView, error) {
	return nil, nil
}
func (noRows) ListAssetEvents(context.Context, domain.Filter, ...string) ([]domain.AssetEvent, error) {
	return nil, nil
}
func (noRows) ListPosts(context.Context, domain.Filter) ([]domain.Post, error) {
	return nil, nil
}
func (noRows) ListLikes(context.Context, domain.Filter) ([]domain.PostReaction, error) {
	return nil, nil
}
func (noRows) ListComments(context.Context, domain.Filter) ([]domain.PostReaction, error) {
	return nil, nil
}
func (noRows) ListAIQueries(context.Context, domain.Filter) ([]domain.AIQuery, error) {
	return nil, nil
}
func (noRows) ListChats(context.Context, domain.Filter) ([]domain.Chat, error) {
	return nil, nil
}
func (noRows) ListMessages(context.Context, domain.Filter) ([]domain.Message, error) {
	return nil, nil
}
func (noRows) ListProfileViews(context.Context, domain.Filter) ([]domain.ProfileView, error) {
	return nil, nil
}
func (noRows) ListSearches(context.Context, domain.Filter) ([]domain.Search, error) {
	return nil, nil
}
func (noRows) ListNotifications(context.Context, domain.Filter) ([]domain.Notification, error) {
	return nil, nil
}
func (noRows) ListNotificationEvents(context.Context, domain.Filter) ([]domain.NotificationEvent, error) {
	return nil, nil
}
func (noRows) ActiveCategories(context.Context) ([]domain.Category, error) {
	return nil, nil
}
func (noRows) OrganizationMemberIDs(context.Context, string) ([]string, error) {
	return nil, nil
}
func (noRows) UserNames(context.Context, []string) (map[string]domain.User, error) {
	return map[string]domain.User{}, nil
}
func (noRows) ExistingContentIDs(context.Context, []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}
