package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"conveymed-analytics/internal/analytics/core/aggregate"
	"conveymed-analytics/internal/analytics/core/domain"
	analytics "conveymed-analytics/internal/analytics/core/usecase"
	"conveymed-analytics/internal/export/bundle"
	"conveymed-analytics/internal/export/core/ports"
	"conveymed-analytics/internal/export/csvx"
	"conveymed-analytics/internal/export/workbook"
)

var ErrExportInProgress = errors.New("an export is already running for this viewer")

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeZip  = "application/zip"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	StatusIdle      = "idle"
	StatusExporting = "exporting"

	filePrefix = "conveymed-analytics"
	dateLayout = "2006-01-02"
)

type SectionLoader interface {
	Resolve(ctx context.Context, in analytics.SectionInput) (domain.Filter, error)
	LoadWithFilter(ctx context.Context, key domain.SectionKey, f domain.Filter) (any, error)
}

// SectionCache is the dashboard's already computed state. Summary only
// returns data that was loaded with the given filter.
type SectionCache interface {
	Summary(viewer string, key domain.SectionKey, f domain.Filter) (any, bool)
	LastFilter(viewer string) (domain.Filter, bool)
}

type ExportRequest struct {
	Viewer   string
	Sections []domain.SectionKey // empty = every dashboard section

	// Input forces a fresh load with these bounds. When nil the export
	// reuses the viewer's dashboard state and filter.
	Input *analytics.SectionInput
}

// Artifact is a finished export file.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportUseCase struct {
	loader SectionLoader
	cache  SectionCache
	guard  ports.ExportGuard
	log    *zap.Logger
	limit  int
	now    func() time.Time
}

func NewExportUseCase(loader SectionLoader, cache SectionCache, guard ports.ExportGuard, maxConcurrency int, log *zap.Logger) *ExportUseCase {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExportUseCase{
		loader: loader,
		cache:  cache,
		guard:  guard,
		log:    log,
		limit:  maxConcurrency,
		now:    time.Now,
	}
}

func (uc *ExportUseCase) WithClock(now func() time.Time) *ExportUseCase {
	uc.now = now
	return uc
}

// Filename stamps kind with the export date.
func Filename(kind, ext string, date time.Time) string {
	return fmt.Sprintf("%s-%s.%s", kind, date.Format(dateLayout), ext)
}

// Status reports whether the viewer has an export running.
func (uc *ExportUseCase) Status(ctx context.Context, viewer string) (string, error) {
	busy, err := uc.guard.Active(ctx, viewer)
	if err != nil {
		return "", err
	}
	if busy {
		return StatusExporting, nil
	}
	return StatusIdle, nil
}

// ExportCSV renders the selected sections into one CSV document headed by
// the executive summary.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, req ExportRequest) (*Artifact, error) {
	var out *Artifact
	err := uc.guarded(ctx, req.Viewer, "csv", func(ctx context.Context) error {
		keys, err := sectionKeys(req.Sections)
		if err != nil {
			return err
		}
		loaded, _, err := uc.collect(ctx, req, keys)
		if err != nil {
			return err
		}
		sections, err := renderAll(keys, loaded)
		if err != nil {
			return err
		}
		sections = append([]csvx.Section{ExecutiveSummaryCSV(executive(loaded))}, sections...)

		out = &Artifact{
			Filename:    Filename(filePrefix, "csv", uc.now()),
			ContentType: ContentTypeCSV,
			Body:        csvx.RenderSections(sections...),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExportZip packs one CSV per section, the combined summary CSV and a
// freshly loaded per-user report CSV.
func (uc *ExportUseCase) ExportZip(ctx context.Context, req ExportRequest) (*Artifact, error) {
	var out *Artifact
	err := uc.guarded(ctx, req.Viewer, "zip", func(ctx context.Context) error {
		keys, err := sectionKeys(req.Sections)
		if err != nil {
			return err
		}
		// the report gets its own file, loaded once below
		keys = slices.DeleteFunc(slices.Clone(keys), func(k domain.SectionKey) bool {
			return k == domain.SectionUserReport
		})
		loaded, f, err := uc.collect(ctx, req, keys)
		if err != nil {
			return err
		}
		sections, err := renderAll(keys, loaded)
		if err != nil {
			return err
		}

		report, err := uc.loader.LoadWithFilter(ctx, domain.SectionUserReport, f)
		if err != nil {
			return err
		}
		reportCSV, err := SectionCSV(domain.SectionUserReport, report)
		if err != nil {
			return err
		}

		now := uc.now()
		files := make([]bundle.File, 0, len(sections)+2)
		summary := append([]csvx.Section{ExecutiveSummaryCSV(executive(loaded))}, sections...)
		files = append(files, bundle.File{Name: Filename("summary", "csv", now), Body: csvx.RenderSections(summary...)})
		for i, s := range sections {
			files = append(files, bundle.File{Name: Filename(string(keys[i]), "csv", now), Body: csvx.RenderSections(s)})
		}
		files = append(files, bundle.File{
			Name: Filename(string(domain.SectionUserReport), "csv", now),
			Body: csvx.RenderSections(reportCSV),
		})

		body, err := bundle.Zip(files, now)
		if err != nil {
			return err
		}
		out = &Artifact{
			Filename:    Filename(filePrefix, "zip", now),
			ContentType: ContentTypeZip,
			Body:        body,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExportUserReport loads the per-user report and renders the workbook.
func (uc *ExportUseCase) ExportUserReport(ctx context.Context, req ExportRequest) (*Artifact, error) {
	var out *Artifact
	err := uc.guarded(ctx, req.Viewer, "user_report", func(ctx context.Context) error {
		f, err := uc.filter(ctx, req)
		if err != nil {
			return err
		}
		data, err := uc.loader.LoadWithFilter(ctx, domain.SectionUserReport, f)
		if err != nil {
			return err
		}
		report, ok := data.(*domain.UserReport)
		if !ok {
			return fmt.Errorf("unexpected user report type %T", data)
		}
		body, err := workbook.BuildUserReport(report)
		if err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		out = &Artifact{
			Filename:    Filename("user-report", "xlsx", uc.now()),
			ContentType: ContentTypeXLSX,
			Body:        body,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// guarded runs fn while holding the viewer's export lock. The lock is
// released whatever the outcome.
func (uc *ExportUseCase) guarded(ctx context.Context, viewer, kind string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()
	ok, err := uc.guard.Acquire(ctx, viewer, token)
	if err != nil {
		return fmt.Errorf("acquire export lock: %w", err)
	}
	if !ok {
		return ErrExportInProgress
	}
	defer func() {
		if err := uc.guard.Release(context.WithoutCancel(ctx), viewer, token); err != nil {
			uc.log.Warn("export lock release failed", zap.String("viewer", viewer), zap.Error(err))
		}
	}()

	started := uc.now()
	if err := fn(ctx); err != nil {
		uc.log.Error("export failed",
			zap.String("viewer", viewer),
			zap.String("kind", kind),
			zap.String("export_id", token),
			zap.Error(err),
		)
		return err
	}
	uc.log.Info("export finished",
		zap.String("viewer", viewer),
		zap.String("kind", kind),
		zap.String("export_id", token),
		zap.Duration("took", uc.now().Sub(started)),
	)
	return nil
}

func (uc *ExportUseCase) filter(ctx context.Context, req ExportRequest) (domain.Filter, error) {
	if req.Input != nil {
		return uc.loader.Resolve(ctx, *req.Input)
	}
	if f, ok := uc.cache.LastFilter(req.Viewer); ok {
		return f, nil
	}
	return uc.loader.Resolve(ctx, analytics.SectionInput{})
}

// sectionKeys defaults to every dashboard section.
func sectionKeys(keys []domain.SectionKey) ([]domain.SectionKey, error) {
	if len(keys) == 0 {
		return domain.DashboardSections, nil
	}
	for _, k := range keys {
		if _, ok := domain.ParseSection(string(k)); !ok {
			return nil, analytics.ErrUnknownSection
		}
	}
	return keys, nil
}

// collect returns the data for keys, in order. Cached dashboard data is
// reused only when the request carries no input of its own and the section
// was loaded with the same filter.
func (uc *ExportUseCase) collect(ctx context.Context, req ExportRequest, keys []domain.SectionKey) ([]any, domain.Filter, error) {
	f, err := uc.filter(ctx, req)
	if err != nil {
		return nil, domain.Filter{}, err
	}

	loaded := make([]any, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.limit)
	for i, key := range keys {
		if req.Input == nil {
			if data, ok := uc.cache.Summary(req.Viewer, key, f); ok {
				loaded[i] = data
				continue
			}
		}
		g.Go(func() error {
			data, err := uc.loader.LoadWithFilter(gctx, key, f)
			if err != nil {
				return fmt.Errorf("load %s: %w", key, err)
			}
			loaded[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.Filter{}, err
	}
	return loaded, f, nil
}

func renderAll(keys []domain.SectionKey, loaded []any) ([]csvx.Section, error) {
	out := make([]csvx.Section, 0, len(keys))
	for i, key := range keys {
		s, err := SectionCSV(key, loaded[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func executive(loaded []any) domain.ExecutiveSummary {
	var (
		ua   *domain.UserActivitySummary
		feed *domain.FeedActivitySummary
	)
	for _, d := range loaded {
		switch v := d.(type) {
		case *domain.UserActivitySummary:
			ua = v
		case *domain.FeedActivitySummary:
			feed = v
		}
	}
	return aggregate.ExecutiveSummary(ua, feed)
}
