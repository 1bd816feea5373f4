package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"conveymed-analytics/internal/analytics/core/aggregate"
	"conveymed-analytics/internal/analytics/core/domain"
	"conveymed-analytics/internal/analytics/core/ports"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrUnknownTimeframe = errors.New("unknown timeframe")
	ErrUnknownSection   = errors.New("unknown section")
)

type SectionInput struct {
	Timeframe string // preset key or "custom"
	Start     *time.Time
	End       *time.Time

	OrganizationID string // optional
}

type SectionsUseCase struct {
	reader     ports.AnalyticsReaderPort
	timeframes domain.Timeframes
	log        *zap.Logger
	now        func() time.Time
}

func NewSectionsUseCase(reader ports.AnalyticsReaderPort, timeframes domain.Timeframes, log *zap.Logger) *SectionsUseCase {
	if len(timeframes) == 0 {
		timeframes = domain.DefaultTimeframes()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SectionsUseCase{
		reader:     reader,
		timeframes: timeframes,
		log:        log,
		now:        time.Now,
	}
}

// WithClock replaces time.Now for preset resolution.
func (uc *SectionsUseCase) WithClock(now func() time.Time) *SectionsUseCase {
	uc.now = now
	return uc
}

func (uc *SectionsUseCase) Timeframes() domain.Timeframes {
	return uc.timeframes
}

// Resolve validates the input and turns it into a query filter. Presets
// ignore Start/End. An organization with no members yields an empty
// scope that matches nothing.
func (uc *SectionsUseCase) Resolve(ctx context.Context, in SectionInput) (domain.Filter, error) {
	key := in.Timeframe
	if key == "" {
		key = domain.DefaultTimeframe
		if in.Start != nil || in.End != nil {
			key = domain.CustomTimeframe
		}
	}

	var f domain.Filter
	if key == domain.CustomTimeframe {
		f.Range = domain.DateRange{Start: in.Start, End: in.End}
		if !f.Range.Valid() {
			return domain.Filter{}, ErrInvalidTimeRange
		}
	} else {
		tf, ok := uc.timeframes.Lookup(key)
		if !ok {
			return domain.Filter{}, ErrUnknownTimeframe
		}
		f.Range = tf.Resolve(uc.now())
	}

	if in.OrganizationID != "" {
		ids, err := uc.reader.OrganizationMemberIDs(ctx, in.OrganizationID)
		if err != nil {
			return domain.Filter{}, err
		}
		if ids == nil {
			ids = []string{}
		}
		f.Scope = domain.Scope{UserIDs: ids}
	}
	return f, nil
}

// Load resolves the input and loads one section.
func (uc *SectionsUseCase) Load(ctx context.Context, key domain.SectionKey, in SectionInput) (any, error) {
	f, err := uc.Resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.LoadWithFilter(ctx, key, f)
}

// LoadWithFilter fetches the section's rows, aggregates them and runs the
// name / existence lookups for the top-N rows only. Backend errors are
// returned unchanged.
func (uc *SectionsUseCase) LoadWithFilter(ctx context.Context, key domain.SectionKey, f domain.Filter) (any, error) {
	reader := uc.reader
	if f.Scope.Empty() {
		reader = noRows{}
	}

	started := uc.now()
	var (
		out any
		err error
	)
	switch key {
	case domain.SectionUserActivity:
		out, err = uc.userActivity(ctx, reader, f)
	case domain.SectionScreenEngagement:
		out, err = uc.screenEngagement(ctx, reader, f)
	case domain.SectionFeedActivity:
		out, err = uc.feedActivity(ctx, reader, f)
	case domain.SectionDownloads:
		out, err = uc.downloads(ctx, reader, f)
	case domain.SectionContent:
		out, err = uc.content(ctx, reader, f)
	case domain.SectionAIUsage:
		out, err = uc.aiUsage(ctx, reader, f)
	case domain.SectionChatActivity:
		out, err = uc.chatActivity(ctx, reader, f)
	case domain.SectionDirectoryUsage:
		out, err = uc.directoryUsage(ctx, reader, f)
	case domain.SectionNotifications:
		out, err = uc.notifications(ctx, reader, f)
	case domain.SectionGrowth:
		out, err = uc.growth(ctx, reader, f)
	case domain.SectionUserReport:
		out, err = uc.userReport(ctx, reader, f)
	default:
		return nil, ErrUnknownSection
	}
	if err != nil {
		uc.log.Warn("section load failed", zap.String("section", string(key)), zap.Error(err))
		return nil, err
	}

	uc.log.Debug("section loaded",
		zap.String("section", string(key)),
		zap.Duration("took", uc.now().Sub(started)),
	)
	return out, nil
}

func (uc *SectionsUseCase) userActivity(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.UserActivitySummary, error) {
	var (
		total    int
		sessions []domain.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = r.CountUsers(gctx, f.Scope)
		return err
	})
	g.Go(func() (err error) {
		sessions, err = r.ListSessions(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := aggregate.UserActivity(total, sessions)
	if err := resolveNames(ctx, r, out.TopUsers); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SectionsUseCase) screenEngagement(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.ScreenEngagementSummary, error) {
	views, err := r.ListScreenViews(ctx, f)
	if err != nil {
		return nil, err
	}
	return aggregate.ScreenEngagement(views), nil
}

func (uc *SectionsUseCase) feedActivity(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.FeedActivitySummary, error) {
	var (
		posts           []domain.Post
		likes, comments []domain.PostReaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		posts, err = r.ListPosts(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		likes, err = r.ListLikes(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		comments, err = r.ListComments(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := aggregate.FeedActivity(posts, likes, comments)

	authors := make([]string, 0, len(out.TopPosts))
	for _, p := range out.TopPosts {
		authors = append(authors, p.AuthorID)
	}
	if len(authors) > 0 {
		users, err := r.UserNames(ctx, authors)
		if err != nil {
			return nil, err
		}
		aggregate.ApplyAuthors(out.TopPosts, users)
	}
	return out, nil
}

func (uc *SectionsUseCase) downloads(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.DownloadsSummary, error) {
	events, err := r.ListAssetEvents(ctx, f, domain.AssetEventDownload)
	if err != nil {
		return nil, err
	}
	out := aggregate.Downloads(events)
	if err := checkInApp(ctx, r, out.TopAssets); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SectionsUseCase) content(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.ContentSummary, error) {
	var (
		events     []domain.AssetEvent
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		events, err = r.ListAssetEvents(gctx, f, domain.AssetEventView)
		return err
	})
	g.Go(func() (err error) {
		categories, err = r.ActiveCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := aggregate.ContentEngagement(events, categories)
	if err := checkInApp(ctx, r, out.TopAssets); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SectionsUseCase) aiUsage(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.AIUsageSummary, error) {
	queries, err := r.ListAIQueries(ctx, f)
	if err != nil {
		return nil, err
	}
	out := aggregate.AIUsage(queries)
	if err := resolveNames(ctx, r, out.TopUsers); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SectionsUseCase) chatActivity(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.ChatActivitySummary, error) {
	var (
		chats    []domain.Chat
		messages []domain.Message
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		chats, err = r.ListChats(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		messages, err = r.ListMessages(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := aggregate.ChatActivity(chats, messages)
	if err := resolveNames(ctx, r, out.TopSenders); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SectionsUseCase) directoryUsage(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.DirectoryUsageSummary, error) {
	var (
		views    []domain.ProfileView
		searches []domain.Search
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		views, err = r.ListProfileViews(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		searches, err = r.ListSearches(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := aggregate.DirectoryUsage(views, searches)
	if err := resolveNames(ctx, r, out.TopProfiles); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SectionsUseCase) notifications(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.NotificationsSummary, error) {
	var (
		notifications []domain.Notification
		events        []domain.NotificationEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		notifications, err = r.ListNotifications(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		events, err = r.ListNotificationEvents(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregate.Notifications(notifications, events), nil
}

// growth reads every user in scope regardless of the range; the curve and
// the total are all-time figures.
func (uc *SectionsUseCase) growth(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.GrowthSummary, error) {
	var (
		users    []domain.User
		sessions []domain.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = r.ListUsers(gctx, domain.Filter{Scope: f.Scope})
		return err
	})
	g.Go(func() (err error) {
		sessions, err = r.ListSessions(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregate.Growth(users, sessions, f.Range), nil
}

func (uc *SectionsUseCase) userReport(ctx context.Context, r ports.AnalyticsReaderPort, f domain.Filter) (*domain.UserReport, error) {
	var (
		users      []domain.User
		sessions   []domain.Session
		views      []domain.ScreenView
		assets     []domain.AssetEvent
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = r.ListUsers(gctx, domain.Filter{Scope: f.Scope})
		return err
	})
	g.Go(func() (err error) {
		sessions, err = r.ListSessions(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		views, err = r.ListScreenViews(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		assets, err = r.ListAssetEvents(gctx, f, domain.AssetEventView)
		return err
	})
	g.Go(func() (err error) {
		categories, err = r.ActiveCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregate.UserReport(users, sessions, views, assets, categories), nil
}

func resolveNames(ctx context.Context, r ports.AnalyticsReaderPort, items []domain.RankedItem) error {
	ids := aggregate.RankedIDs(items)
	if len(ids) == 0 {
		return nil
	}
	users, err := r.UserNames(ctx, ids)
	if err != nil {
		return err
	}
	aggregate.ApplyNames(items, users)
	return nil
}

func checkInApp(ctx context.Context, r ports.AnalyticsReaderPort, items []domain.RankedItem) error {
	ids := aggregate.RankedIDs(items)
	if len(ids) == 0 {
		return nil
	}
	existing, err := r.ExistingContentIDs(ctx, ids)
	if err != nil {
		return err
	}
	aggregate.AnnotateInApp(items, existing)
	return nil
}
