package usecase_test

import (
	"context"
	"sync"

	"conveymed-analytics/internal/analytics/core/domain"
)

// fakeReader, AnalyticsReaderPort'u test için fake'ler. Every method first
// runs hook (when set) and fails with errs[method] when present.
type fakeReader struct {
	mu    sync.Mutex
	calls map[string]int

	hook func(ctx context.Context, method string) error
	errs map[string]error

	users         []domain.User
	totalUsers    int
	sessions      []domain.Session
	screenViews   []domain.ScreenView
	assetEvents   []domain.AssetEvent
	posts         []domain.Post
	likes         []domain.PostReaction
	comments      []domain.PostReaction
	aiQueries     []domain.AIQuery
	chats         []domain.Chat
	messages      []domain.Message
	profileViews  []domain.ProfileView
	searches      []domain.Search
	notifications []domain.Notification
	notifEvents   []domain.NotificationEvent
	categories    []domain.Category
	members       map[string][]string
	existing      map[string]bool

	lastFilter    domain.Filter
	lastNameIDs   []string
	lastContentID []string
}

func (f *fakeReader) enter(ctx context.Context, method string) error {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[method]++
	hook := f.hook
	err := f.errs[method]
	f.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx, method); herr != nil {
			return herr
		}
	}
	return err
}

func (f *fakeReader) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeReader) record(flt domain.Filter) {
	f.mu.Lock()
	f.lastFilter = flt
	f.mu.Unlock()
}

func (f *fakeReader) ListUsers(ctx context.Context, flt domain.Filter) ([]domain.User, error) {
	if err := f.enter(ctx, "ListUsers"); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeReader) CountUsers(ctx context.Context, s domain.Scope) (int, error) {
	if err := f.enter(ctx, "CountUsers"); err != nil {
		return 0, err
	}
	return f.totalUsers, nil
}

func (f *fakeReader) ListSessions(ctx context.Context, flt domain.Filter) ([]domain.Session, error) {
	if err := f.enter(ctx, "ListSessions"); err != nil {
		return nil, err
	}
	f.record(flt)
	return f.sessions, nil
}

func (f *fakeReader) ListScreenViews(ctx context.Context, flt domain.Filter) ([]domain.ScreenView, error) {
	if err := f.enter(ctx, "ListScreenViews"); err != nil {
		return nil, err
	}
	f.record(flt)
	return f.screenViews, nil
}

func (f *fakeReader) ListAssetEvents(ctx context.Context, flt domain.Filter, eventTypes ...string) ([]domain.AssetEvent, error) {
	if err := f.enter(ctx, "ListAssetEvents"); err != nil {
		return nil, err
	}
	if len(eventTypes) == 0 {
		return f.assetEvents, nil
	}
	var out []domain.AssetEvent
	for _, e := range f.assetEvents {
		for _, t := range eventTypes {
			if e.EventType == t {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeReader) ListPosts(ctx context.Context, flt domain.Filter) ([]domain.Post, error) {
	if err := f.enter(ctx, "ListPosts"); err != nil {
		return nil, err
	}
	return f.posts, nil
}

func (f *fakeReader) ListLikes(ctx context.Context, flt domain.Filter) ([]domain.PostReaction, error) {
	if err := f.enter(ctx, "ListLikes"); err != nil {
		return nil, err
	}
	return f.likes, nil
}

func (f *fakeReader) ListComments(ctx context.Context, flt domain.Filter) ([]domain.PostReaction, error) {
	if err := f.enter(ctx, "ListComments"); err != nil {
		return nil, err
	}
	return f.comments, nil
}

func (f *fakeReader) ListAIQueries(ctx context.Context, flt domain.Filter) ([]domain.AIQuery, error) {
	if err := f.enter(ctx, "ListAIQueries"); err != nil {
		return nil, err
	}
	return f.aiQueries, nil
}

func (f *fakeReader) ListChats(ctx context.Context, flt domain.Filter) ([]domain.Chat, error) {
	if err := f.enter(ctx, "ListChats"); err != nil {
		return nil, err
	}
	return f.chats, nil
}

func (f *fakeReader) ListMessages(ctx context.Context, flt domain.Filter) ([]domain.Message, error) {
	if err := f.enter(ctx, "ListMessages"); err != nil {
		return nil, err
	}
	return f.messages, nil
}

func (f *fakeReader) ListProfileViews(ctx context.Context, flt domain.Filter) ([]domain.ProfileView, error) {
	if err := f.enter(ctx, "ListProfileViews"); err != nil {
		return nil, err
	}
	return f.profileViews, nil
}

func (f *fakeReader) ListSearches(ctx context.Context, flt domain.Filter) ([]domain.Search, error) {
	if err := f.enter(ctx, "ListSearches"); err != nil {
		return nil, err
	}
	return f.searches, nil
}

func (f *fakeReader) ListNotifications(ctx context.Context, flt domain.Filter) ([]domain.Notification, error) {
	if err := f.enter(ctx, "ListNotifications"); err != nil {
		return nil, err
	}
	return f.notifications, nil
}

func (f *fakeReader) ListNotificationEvents(ctx context.Context, flt domain.Filter) ([]domain.NotificationEvent, error) {
	if err := f.enter(ctx, "ListNotificationEvents"); err != nil {
		return nil, err
	}
	return f.notifEvents, nil
}

func (f *fakeReader) ActiveCategories(ctx context.Context) ([]domain.Category, error) {
	if err := f.enter(ctx, "ActiveCategories"); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeReader) OrganizationMemberIDs(ctx context.Context, organizationID string) ([]string, error) {
	if err := f.enter(ctx, "OrganizationMemberIDs"); err != nil {
		return nil, err
	}
	return f.members[organizationID], nil
}

func (f *fakeReader) UserNames(ctx context.Context, ids []string) (map[string]domain.User, error) {
	if err := f.enter(ctx, "UserNames"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastNameIDs = append([]string(nil), ids...)
	f.mu.Unlock()

	out := make(map[string]domain.User)
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				out[id] = u
			}
		}
	}
	return out, nil
}

func (f *fakeReader) ExistingContentIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	if err := f.enter(ctx, "ExistingContentIDs"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastContentID = append([]string(nil), ids...)
	f.mu.Unlock()

	out := make(map[string]bool)
	for _, id := range ids {
		if f.existing[id] {
			out[id] = true
		}
	}
	return out, nil
}
