package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveymed-analytics/internal/analytics/core/domain"
	"conveymed-analytics/internal/analytics/core/usecase"
)

// ------------------------------------------------------------
// TRACKER
// ------------------------------------------------------------

func TestTracker_NewRequestCancelsPrevious(t *testing.T) {
	tr := usecase.NewTracker()

	ctx1, tok1 := tr.Begin(context.Background(), "viewer")
	ctx2, tok2 := tr.Begin(context.Background(), "viewer")

	assert.NotEqual(t, tok1, tok2)
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())
	assert.False(t, tr.IsCurrent("viewer", tok1))
	assert.True(t, tr.IsCurrent("viewer", tok2))

	// başka viewer etkilenmez
	ctx3, tok3 := tr.Begin(context.Background(), "other")
	assert.NoError(t, ctx2.Err())
	assert.True(t, tr.IsCurrent("other", tok3))

	tr.Finish("viewer", tok1) // stale, no-op
	assert.True(t, tr.IsCurrent("viewer", tok2))

	tr.Finish("viewer", tok2)
	assert.False(t, tr.IsCurrent("viewer", tok2))
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
	assert.NoError(t, ctx3.Err())
}

// ------------------------------------------------------------
// DASHBOARD
// ------------------------------------------------------------

func newDashboard(r *fakeReader) *usecase.Dashboard {
	return usecase.NewDashboard(newSections(r), nil, 2, nil)
}

func TestDashboard_RefreshAllSections(t *testing.T) {
	r := &fakeReader{
		totalUsers: 10,
		sessions:   []domain.Session{{UserID: "u1"}, {UserID: "u2"}},
		posts:      []domain.Post{{ID: "p1"}, {ID: "p2"}},
		likes:      []domain.PostReaction{{PostID: "p1", UserID: "u1"}},
	}
	d := newDashboard(r)

	view, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{}, nil)
	require.NoError(t, err)

	assert.Len(t, view.Sections, len(domain.DashboardSections))
	for key, st := range view.Sections {
		assert.False(t, st.Loading, key)
		assert.Empty(t, st.Error, key)
		assert.NotNil(t, st.Data, key)
		assert.NotNil(t, st.UpdatedAt, key)
	}
	_, hasReport := view.Sections[domain.SectionUserReport]
	assert.False(t, hasReport)

	assert.Equal(t, "10", view.Summary.TotalUsers)
	assert.Equal(t, "20.0%", view.Summary.ActiveRate)
	assert.Equal(t, "50.0%", view.Summary.EngagementRate)
	require.NotNil(t, view.Filter)

	f, ok := d.LastFilter("viewer")
	require.True(t, ok)
	assert.Equal(t, *view.Filter, f)

	data, ok := d.Summary("viewer", domain.SectionUserActivity, f)
	require.True(t, ok)
	assert.IsType(t, &domain.UserActivitySummary{}, data)
}

func TestDashboard_SummaryOnlyMatchesItsFilter(t *testing.T) {
	r := &fakeReader{
		sessions:    []domain.Session{{UserID: "u1"}},
		screenViews: []domain.ScreenView{{UserID: "u1", ScreenName: "Home"}},
	}
	d := newDashboard(r)

	_, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{Timeframe: "90d"}, nil)
	require.NoError(t, err)
	ninety, _ := d.LastFilter("viewer")

	_, err = d.Refresh(context.Background(), "viewer", usecase.SectionInput{Timeframe: "all"},
		[]domain.SectionKey{domain.SectionScreenEngagement})
	require.NoError(t, err)
	all, ok := d.LastFilter("viewer")
	require.True(t, ok)
	assert.True(t, all.Range.IsUnbounded())

	// user_activity hâlâ 90d ile yüklenmiş durumda
	_, ok = d.Summary("viewer", domain.SectionUserActivity, all)
	assert.False(t, ok)
	_, ok = d.Summary("viewer", domain.SectionUserActivity, ninety)
	assert.True(t, ok)
	_, ok = d.Summary("viewer", domain.SectionScreenEngagement, all)
	assert.True(t, ok)
	_, ok = d.Summary("viewer", domain.SectionScreenEngagement, ninety)
	assert.False(t, ok)
}

func TestDashboard_FailedSectionKeepsPriorData(t *testing.T) {
	r := &fakeReader{
		screenViews: []domain.ScreenView{{UserID: "u1", ScreenName: "Home"}},
	}
	d := newDashboard(r)
	keys := []domain.SectionKey{domain.SectionScreenEngagement, domain.SectionAIUsage}

	first, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{}, keys)
	require.NoError(t, err)
	prior := first.Sections[domain.SectionScreenEngagement].Data
	require.NotNil(t, prior)

	r.mu.Lock()
	r.errs = map[string]error{"ListScreenViews": errors.New("timeout")}
	r.mu.Unlock()

	second, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{}, keys)
	require.NoError(t, err)

	failed := second.Sections[domain.SectionScreenEngagement]
	assert.Equal(t, "timeout", failed.Error)
	assert.False(t, failed.Loading)
	assert.Same(t, prior, failed.Data)

	ok := second.Sections[domain.SectionAIUsage]
	assert.Empty(t, ok.Error)
}

func TestDashboard_InvalidInputLeavesStateAlone(t *testing.T) {
	d := newDashboard(&fakeReader{})

	_, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{Timeframe: "bogus"}, nil)
	assert.ErrorIs(t, err, usecase.ErrUnknownTimeframe)

	_, err = d.Refresh(context.Background(), "viewer", usecase.SectionInput{}, []domain.SectionKey{"nope"})
	assert.ErrorIs(t, err, usecase.ErrUnknownSection)

	view := d.View("viewer")
	assert.Empty(t, view.Sections)
	assert.Nil(t, view.Filter)
	assert.Equal(t, "-", view.Summary.TotalUsers)
}

func TestDashboard_LastRequestWins(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once

	r := &fakeReader{sessions: []domain.Session{{UserID: "u1"}}}
	r.hook = func(ctx context.Context, method string) error {
		if method != "ListSessions" {
			return nil
		}
		blocked := false
		once.Do(func() { blocked = true })
		if !blocked {
			return nil
		}
		// ilk refresh: iptal edilene kadar bekle
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
	d := newDashboard(r)
	keys := []domain.SectionKey{domain.SectionUserActivity}

	type result struct {
		view *usecase.DashboardView
		err  error
	}
	firstDone := make(chan result, 1)
	go func() {
		v, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{Timeframe: "90d"}, keys)
		firstDone <- result{v, err}
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first refresh never reached the reader")
	}

	second, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{Timeframe: "all"}, keys)
	require.NoError(t, err)

	var first result
	select {
	case first = <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("first refresh was not cancelled")
	}
	assert.ErrorIs(t, first.err, usecase.ErrSuperseded)
	assert.Nil(t, first.view)

	st := second.Sections[domain.SectionUserActivity]
	assert.Empty(t, st.Error)
	assert.False(t, st.Loading)
	require.NotNil(t, st.Data)
	assert.Equal(t, 1, st.Data.(*domain.UserActivitySummary).ActiveUsers)

	// stale sonuç state'i bozmamalı
	view := d.View("viewer")
	assert.Empty(t, view.Sections[domain.SectionUserActivity].Error)
	require.NotNil(t, view.Filter)
	assert.True(t, view.Filter.Range.IsUnbounded())
}

func TestDashboard_SupersededSectionsStopLoading(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once

	r := &fakeReader{sessions: []domain.Session{{UserID: "u1"}}}
	r.hook = func(ctx context.Context, method string) error {
		if method != "ListScreenViews" {
			return nil
		}
		blocked := false
		once.Do(func() { blocked = true })
		if !blocked {
			return nil
		}
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
	d := newDashboard(r)

	firstDone := make(chan error, 1)
	go func() {
		_, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{},
			[]domain.SectionKey{domain.SectionUserActivity, domain.SectionScreenEngagement})
		firstDone <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first refresh never reached the reader")
	}

	// ikinci refresh screen_engagement'ı kapsamıyor
	second, err := d.Refresh(context.Background(), "viewer", usecase.SectionInput{},
		[]domain.SectionKey{domain.SectionUserActivity})
	require.NoError(t, err)
	assert.False(t, second.Sections[domain.SectionUserActivity].Loading)

	select {
	case err := <-firstDone:
		assert.ErrorIs(t, err, usecase.ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first refresh was not cancelled")
	}

	view := d.View("viewer")
	for key, st := range view.Sections {
		assert.False(t, st.Loading, key)
	}
	assert.Empty(t, view.Sections[domain.SectionScreenEngagement].Error)
}
