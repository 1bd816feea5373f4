package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"conveymed-analytics/internal/analytics/core/domain"
	analytics "conveymed-analytics/internal/analytics/core/usecase"
	"conveymed-analytics/internal/export/adapters/guard"
	"conveymed-analytics/internal/export/core/usecase"
	"conveymed-analytics/internal/export/csvx"
	"conveymed-analytics/internal/export/workbook"
)

var exportNow = time.Date(2026, 3, 31, 15, 4, 5, 0, time.UTC)

// fakeLoader, SectionLoader'ı test için fake'ler.
type fakeLoader struct {
	mu       sync.Mutex
	data     map[domain.SectionKey]any
	errs     map[domain.SectionKey]error
	loaded   []domain.SectionKey
	resolved []analytics.SectionInput
	block    chan struct{}
}

func (f *fakeLoader) Resolve(ctx context.Context, in analytics.SectionInput) (domain.Filter, error) {
	f.mu.Lock()
	f.resolved = append(f.resolved, in)
	f.mu.Unlock()
	if in.Timeframe == "bogus" {
		return domain.Filter{}, analytics.ErrUnknownTimeframe
	}
	return domain.Filter{}, nil
}

func (f *fakeLoader) LoadWithFilter(ctx context.Context, key domain.SectionKey, flt domain.Filter) (any, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append(f.loaded, key)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	if d, ok := f.data[key]; ok {
		return d, nil
	}
	return nil, errors.New("no data for " + string(key))
}

// fakeCache; loadedWith olmayan section'lar sıfır filter ile yüklenmiş sayılır.
type fakeCache struct {
	data       map[domain.SectionKey]any
	loadedWith map[domain.SectionKey]domain.Filter
	filter     *domain.Filter
}

func (c *fakeCache) Summary(viewer string, key domain.SectionKey, f domain.Filter) (any, bool) {
	d, ok := c.data[key]
	if !ok || !c.loadedWith[key].Equal(f) {
		return nil, false
	}
	return d, true
}

func (c *fakeCache) LastFilter(viewer string) (domain.Filter, bool) {
	if c.filter == nil {
		return domain.Filter{}, false
	}
	return *c.filter, true
}

func allSections() map[domain.SectionKey]any {
	inApp := false
	return map[domain.SectionKey]any{
		domain.SectionUserActivity: &domain.UserActivitySummary{
			TotalUsers: 10, ActiveUsers: 4, ActiveRate: "40.0",
			TopUsers: []domain.RankedItem{{ID: "u1", Name: "Smith, John", Count: 3}},
		},
		domain.SectionScreenEngagement: &domain.ScreenEngagementSummary{},
		domain.SectionFeedActivity:     &domain.FeedActivitySummary{TotalPosts: 10, PostsWithEngagement: 4, PostsNoEngagement: 6, EngagementRate: "40.0"},
		domain.SectionDownloads: &domain.DownloadsSummary{
			TotalDownloads: 1,
			TopAssets:      []domain.RankedItem{{ID: "gone", Name: "Old Deck", Count: 1, InApp: &inApp}},
		},
		domain.SectionContent:        &domain.ContentSummary{},
		domain.SectionAIUsage:        &domain.AIUsageSummary{},
		domain.SectionChatActivity:   &domain.ChatActivitySummary{},
		domain.SectionDirectoryUsage: &domain.DirectoryUsageSummary{},
		domain.SectionNotifications:  &domain.NotificationsSummary{OpenRate: "-", ClickRate: "-"},
		domain.SectionGrowth:         &domain.GrowthSummary{GrowthRate: "-", RetentionRate: "-"},
		domain.SectionUserReport: &domain.UserReport{
			ScreenColumns: []string{"Home"},
			Rows: []domain.UserReportRow{{
				Name: "Smith, John", Email: "john@example.com", SessionTime: "0s", LastActive: "Never",
				Screens: map[string]int{"Home": 2},
			}},
		},
	}
}

func newExport(loader *fakeLoader, cache *fakeCache) *usecase.ExportUseCase {
	return usecase.NewExportUseCase(loader, cache, guard.NewMemoryGuard(), 4, nil).
		WithClock(func() time.Time { return exportNow })
}

// ------------------------------------------------------------
// CSV
// ------------------------------------------------------------

func TestExportCSV_UsesDashboardCache(t *testing.T) {
	loader := &fakeLoader{}
	cache := &fakeCache{data: allSections()}
	uc := newExport(loader, cache)

	art, err := uc.ExportCSV(context.Background(), usecase.ExportRequest{
		Viewer:   "viewer",
		Sections: []domain.SectionKey{domain.SectionUserActivity, domain.SectionFeedActivity, domain.SectionDownloads},
	})
	require.NoError(t, err)

	assert.Equal(t, "conveymed-analytics-2026-03-31.csv", art.Filename)
	assert.Equal(t, usecase.ContentTypeCSV, art.ContentType)
	assert.Empty(t, loader.loaded)

	body := string(art.Body)
	assert.True(t, strings.HasPrefix(body, csvx.BOM+"\"Executive Summary\""))
	assert.Contains(t, body, "Total Users,10")
	assert.Contains(t, body, "Engagement Rate,40.0%")
	assert.Contains(t, body, "Posts Without Engagement,6")
	assert.Contains(t, body, "\"Smith, John\",3")
	assert.Contains(t, body, "Old Deck,,1,0,No")
	assert.Equal(t, 3, strings.Count(body, "\n---\n"))
}

func TestExportCSV_FreshInputBypassesCache(t *testing.T) {
	loader := &fakeLoader{data: allSections()}
	cache := &fakeCache{data: map[domain.SectionKey]any{}}
	uc := newExport(loader, cache)

	_, err := uc.ExportCSV(context.Background(), usecase.ExportRequest{
		Viewer:   "viewer",
		Sections: []domain.SectionKey{domain.SectionGrowth},
		Input:    &analytics.SectionInput{Timeframe: "90d"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.SectionKey{domain.SectionGrowth}, loader.loaded)
	require.Len(t, loader.resolved, 1)
	assert.Equal(t, "90d", loader.resolved[0].Timeframe)
}

func TestExportCSV_ReloadsSectionsCachedUnderAnotherFilter(t *testing.T) {
	since := exportNow.AddDate(0, 0, -90)
	ninety := domain.Filter{Range: domain.DateRange{Start: &since}}

	loader := &fakeLoader{data: map[domain.SectionKey]any{
		domain.SectionUserActivity: &domain.UserActivitySummary{TotalUsers: 99, ActiveRate: "-"},
	}}
	cache := &fakeCache{
		data:       allSections(),
		loadedWith: map[domain.SectionKey]domain.Filter{domain.SectionUserActivity: ninety},
		filter:     &domain.Filter{},
	}
	uc := newExport(loader, cache)

	art, err := uc.ExportCSV(context.Background(), usecase.ExportRequest{
		Viewer:   "viewer",
		Sections: []domain.SectionKey{domain.SectionUserActivity, domain.SectionScreenEngagement},
	})
	require.NoError(t, err)

	// sadece farklı filter ile yüklenen section tekrar yüklenir
	assert.Equal(t, []domain.SectionKey{domain.SectionUserActivity}, loader.loaded)
	assert.Contains(t, string(art.Body), "Total Users,99")
}

func TestExportCSV_FailureProducesNothing(t *testing.T) {
	loader := &fakeLoader{
		data: allSections(),
		errs: map[domain.SectionKey]error{domain.SectionChatActivity: errors.New("db down")},
	}
	uc := newExport(loader, &fakeCache{})

	art, err := uc.ExportCSV(context.Background(), usecase.ExportRequest{Viewer: "viewer"})
	assert.Error(t, err)
	assert.Nil(t, art)

	// hata sonrası tekrar export edilebilmeli
	status, err := uc.Status(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusIdle, status)
}

func TestExportCSV_UnknownSection(t *testing.T) {
	uc := newExport(&fakeLoader{}, &fakeCache{})

	_, err := uc.ExportCSV(context.Background(), usecase.ExportRequest{Viewer: "v", Sections: []domain.SectionKey{"nope"}})
	assert.ErrorIs(t, err, analytics.ErrUnknownSection)
}

// ------------------------------------------------------------
// STATE MACHINE
// ------------------------------------------------------------

func TestExport_SecondConcurrentExportRejected(t *testing.T) {
	loader := &fakeLoader{data: allSections(), block: make(chan struct{})}
	uc := newExport(loader, &fakeCache{})

	done := make(chan error, 1)
	go func() {
		_, err := uc.ExportUserReport(context.Background(), usecase.ExportRequest{Viewer: "viewer"})
		done <- err
	}()

	require.Eventually(t, func() bool {
		s, _ := uc.Status(context.Background(), "viewer")
		return s == usecase.StatusExporting
	}, 2*time.Second, 5*time.Millisecond)

	_, err := uc.ExportCSV(context.Background(), usecase.ExportRequest{Viewer: "viewer"})
	assert.ErrorIs(t, err, usecase.ErrExportInProgress)

	close(loader.block)
	require.NoError(t, <-done)

	s, _ := uc.Status(context.Background(), "viewer")
	assert.Equal(t, usecase.StatusIdle, s)
}

// ------------------------------------------------------------
// ZIP
// ------------------------------------------------------------

func TestExportZip(t *testing.T) {
	loader := &fakeLoader{data: allSections()}
	cache := &fakeCache{data: allSections(), filter: &domain.Filter{}}
	uc := newExport(loader, cache)

	art, err := uc.ExportZip(context.Background(), usecase.ExportRequest{Viewer: "viewer"})
	require.NoError(t, err)
	assert.Equal(t, "conveymed-analytics-2026-03-31.zip", art.Filename)

	// user report her zaman taze yüklenir
	assert.Equal(t, []domain.SectionKey{domain.SectionUserReport}, loader.loaded)

	zr, err := zip.NewReader(bytes.NewReader(art.Body), int64(len(art.Body)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	assert.Len(t, names, len(domain.DashboardSections)+2)
	assert.Contains(t, names, "summary-2026-03-31.csv")
	assert.Contains(t, names, "user_report-2026-03-31.csv")
	assert.Contains(t, names, "feed_activity-2026-03-31.csv")
}

func TestExportZip_UserReportLoadedOnce(t *testing.T) {
	loader := &fakeLoader{data: allSections()}
	cache := &fakeCache{data: allSections(), filter: &domain.Filter{}}
	uc := newExport(loader, cache)

	art, err := uc.ExportZip(context.Background(), usecase.ExportRequest{
		Viewer:   "viewer",
		Sections: []domain.SectionKey{domain.SectionFeedActivity, domain.SectionUserReport},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.SectionKey{domain.SectionUserReport}, loader.loaded)

	zr, err := zip.NewReader(bytes.NewReader(art.Body), int64(len(art.Body)))
	require.NoError(t, err)

	var names []string
	var summary string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name != "summary-2026-03-31.csv" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		summary = string(b)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"feed_activity-2026-03-31.csv",
		"summary-2026-03-31.csv",
		"user_report-2026-03-31.csv",
	}, names)
	assert.Contains(t, summary, domain.SectionFeedActivity.Title())
	assert.NotContains(t, summary, domain.SectionUserReport.Title())
}

// ------------------------------------------------------------
// WORKBOOK
// ------------------------------------------------------------

func TestExportUserReport(t *testing.T) {
	loader := &fakeLoader{data: allSections()}
	uc := newExport(loader, &fakeCache{})

	art, err := uc.ExportUserReport(context.Background(), usecase.ExportRequest{Viewer: "viewer"})
	require.NoError(t, err)
	assert.Equal(t, "user-report-2026-03-31.xlsx", art.Filename)
	assert.Equal(t, usecase.ContentTypeXLSX, art.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(art.Body))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(workbook.SheetName, "H2")
	require.NoError(t, err)
	assert.Equal(t, "Home", v)
	v, _ = f.GetCellValue(workbook.SheetName, "H3")
	assert.Equal(t, "2", v)
}

func TestExportUserReport_InvalidInput(t *testing.T) {
	uc := newExport(&fakeLoader{}, &fakeCache{})

	_, err := uc.ExportUserReport(context.Background(), usecase.ExportRequest{
		Viewer: "viewer",
		Input:  &analytics.SectionInput{Timeframe: "bogus"},
	})
	assert.ErrorIs(t, err, analytics.ErrUnknownTimeframe)
}

// ------------------------------------------------------------
// SECTION LAYOUTS
// ------------------------------------------------------------

func TestSectionCSV_EverySection(t *testing.T) {
	for key, data := range allSections() {
		s, err := usecase.SectionCSV(key, data)
		require.NoError(t, err, key)
		assert.Equal(t, key.Title(), s.Title)
	}

	_, err := usecase.SectionCSV(domain.SectionGrowth, "not a summary")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "growth-2026-03-31.csv", usecase.Filename("growth", "csv", exportNow))
}
