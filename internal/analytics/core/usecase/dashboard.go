package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"conveymed-analytics/internal/analytics/core/aggregate"
	"conveymed-analytics/internal/analytics/core/domain"
)

// ErrSuperseded is returned to a refresh that lost to a newer one from the
// same viewer. Its results were discarded.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// SectionState is what the dashboard shows for one section.
type SectionState struct {
	Data      any        `json:"data"`
	Loading   bool       `json:"loading"`
	Error     string     `json:"error,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// filter is what Data was loaded with.
	filter domain.Filter
}

type DashboardView struct {
	Viewer   string                             `json:"viewer"`
	Filter   *domain.Filter                     `json:"filter,omitempty"`
	Sections map[domain.SectionKey]SectionState `json:"sections"`
	Summary  domain.ExecutiveSummary            `json:"summary"`
}

type viewerState struct {
	filter   *domain.Filter
	sections map[domain.SectionKey]*SectionState
}

// Dashboard holds per-viewer section state. Sections load concurrently and
// independently: a failing section records its error and keeps whatever
// data it had before.
type Dashboard struct {
	sections *SectionsUseCase
	tracker  *Tracker
	log      *zap.Logger
	limit    int

	mu      sync.Mutex
	viewers map[string]*viewerState
}

func NewDashboard(sections *SectionsUseCase, tracker *Tracker, maxConcurrency int, log *zap.Logger) *Dashboard {
	if tracker == nil {
		tracker = NewTracker()
	}
	if maxConcurrency <= 0 {
		maxConcurrency = len(domain.DashboardSections)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dashboard{
		sections: sections,
		tracker:  tracker,
		log:      log,
		limit:    maxConcurrency,
		viewers:  make(map[string]*viewerState),
	}
}

// Refresh reloads the given sections (all dashboard sections when empty)
// for viewer. Input errors are returned before any state changes. When a
// newer refresh from the same viewer starts, this one is cancelled and
// returns ErrSuperseded.
func (d *Dashboard) Refresh(ctx context.Context, viewer string, in SectionInput, keys []domain.SectionKey) (*DashboardView, error) {
	if len(keys) == 0 {
		keys = domain.DashboardSections
	}
	for _, k := range keys {
		if _, ok := domain.ParseSection(string(k)); !ok {
			return nil, ErrUnknownSection
		}
	}

	f, err := d.sections.Resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	ctx, token := d.begin(ctx, viewer, f, keys)
	defer d.tracker.Finish(viewer, token)

	g := new(errgroup.Group)
	g.SetLimit(d.limit)
	for _, key := range keys {
		g.Go(func() error {
			data, err := d.sections.LoadWithFilter(ctx, key, f)
			d.settle(viewer, token, key, f, data, err)
			return nil
		})
	}
	_ = g.Wait()

	if !d.tracker.IsCurrent(viewer, token) {
		d.log.Info("dashboard refresh superseded", zap.String("viewer", viewer), zap.String("request_id", token))
		return nil, ErrSuperseded
	}
	return d.View(viewer), nil
}

func (d *Dashboard) begin(ctx context.Context, viewer string, f domain.Filter, keys []domain.SectionKey) (context.Context, string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, token := d.tracker.Begin(ctx, viewer)

	vs := d.viewer(viewer)
	vs.filter = &f
	// sections of a cancelled refresh that this one does not reload
	for _, st := range vs.sections {
		st.Loading = false
	}
	for _, k := range keys {
		st, ok := vs.sections[k]
		if !ok {
			st = &SectionState{}
			vs.sections[k] = st
		}
		st.Loading = true
	}
	return ctx, token
}

func (d *Dashboard) settle(viewer, token string, key domain.SectionKey, f domain.Filter, data any, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// stale sonuç: yeni request state'in sahibi
	if !d.tracker.IsCurrent(viewer, token) {
		return
	}

	st := d.viewer(viewer).sections[key]
	st.Loading = false
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			d.log.Error("dashboard section failed",
				zap.String("section", string(key)),
				zap.String("viewer", viewer),
				zap.Error(err),
			)
		}
		st.Error = err.Error()
		return
	}
	now := time.Now().UTC()
	st.Data = data
	st.filter = f
	st.Error = ""
	st.UpdatedAt = &now
}

// viewer must be called with d.mu held.
func (d *Dashboard) viewer(id string) *viewerState {
	vs, ok := d.viewers[id]
	if !ok {
		vs = &viewerState{sections: make(map[domain.SectionKey]*SectionState)}
		d.viewers[id] = vs
	}
	return vs
}

// View is a snapshot of the viewer's dashboard.
func (d *Dashboard) View(viewer string) *DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := &DashboardView{
		Viewer:   viewer,
		Sections: make(map[domain.SectionKey]SectionState),
	}
	vs, ok := d.viewers[viewer]
	if !ok {
		out.Summary = aggregate.ExecutiveSummary(nil, nil)
		return out
	}
	if vs.filter != nil {
		f := *vs.filter
		out.Filter = &f
	}
	for k, st := range vs.sections {
		out.Sections[k] = *st
	}

	ua, _ := dataOf(vs, domain.SectionUserActivity).(*domain.UserActivitySummary)
	feed, _ := dataOf(vs, domain.SectionFeedActivity).(*domain.FeedActivitySummary)
	out.Summary = aggregate.ExecutiveSummary(ua, feed)
	return out
}

// Summary returns the last loaded data for one section, provided it was
// loaded with f.
func (d *Dashboard) Summary(viewer string, key domain.SectionKey, f domain.Filter) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	vs, ok := d.viewers[viewer]
	if !ok {
		return nil, false
	}
	st, ok := vs.sections[key]
	if !ok || st.Data == nil || !st.filter.Equal(f) {
		return nil, false
	}
	return st.Data, true
}

// LastFilter is the filter of the viewer's latest refresh.
func (d *Dashboard) LastFilter(viewer string) (domain.Filter, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	vs, ok := d.viewers[viewer]
	if !ok || vs.filter == nil {
		return domain.Filter{}, false
	}
	return *vs.filter, true
}

func dataOf(vs *viewerState, key domain.SectionKey) any {
	if st, ok := vs.sections[key]; ok {
		return st.Data
	}
	return nil
}
