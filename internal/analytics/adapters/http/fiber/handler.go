package fiber

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"conveymed-analytics/internal/analytics/adapters/http/params"
	"conveymed-analytics/internal/analytics/core/domain"
	"conveymed-analytics/internal/analytics/core/usecase"
	"conveymed-analytics/internal/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type SectionsUseCase interface {
	Timeframes() domain.Timeframes
	Load(ctx context.Context, key domain.SectionKey, in usecase.SectionInput) (any, error)
}

type DashboardUseCase interface {
	Refresh(ctx context.Context, viewer string, in usecase.SectionInput, keys []domain.SectionKey) (*usecase.DashboardView, error)
	View(viewer string) *usecase.DashboardView
}

type AnalyticsHandler struct {
	sections  SectionsUseCase
	dashboard DashboardUseCase
	now       func() time.Time
}

func NewAnalyticsHandler(sections SectionsUseCase, dashboard DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{sections: sections, dashboard: dashboard, now: time.Now}
}

// GetTimeframes godoc
// @Summary List timeframe presets
// @Description Presets accepted by the timeframe parameter. "custom" uses start/end.
// @Tags Analytics
// @Produce json
// @Success 200 {object} TimeframesResponse
// @Router /analytics/timeframes [get]
func (h *AnalyticsHandler) GetTimeframes(c *fiber.Ctx) error {
	tfs := h.sections.Timeframes()
	resp := TimeframesResponse{
		Default:    domain.DefaultTimeframe,
		Timeframes: make([]TimeframeResponse, 0, len(tfs)+1),
	}
	for _, tf := range tfs {
		resp.Timeframes = append(resp.Timeframes, TimeframeResponse{Key: tf.Key, Label: tf.Label, Days: tf.Days})
	}
	resp.Timeframes = append(resp.Timeframes, TimeframeResponse{Key: domain.CustomTimeframe, Label: "Custom range"})

	return c.Status(http.StatusOK).JSON(resp)
}

// GetSection godoc
// @Summary Load one dashboard section
// @Description Fetches and aggregates a single section for the given range and organization
// @Tags Analytics
// @Produce json
// @Param section path string true "Section key"
// @Param timeframe query string false "Preset key or custom"
// @Param start query string false "Start (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "End (RFC3339 or YYYY-MM-DD)"
// @Param org_id query string false "Organization id"
// @Success 200 {object} SectionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/sections/{section} [get]
func (h *AnalyticsHandler) GetSection(c *fiber.Ctx) error {
	key, ok := domain.ParseSection(strings.Clone(c.Params("section")))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "unknown_section",
			Message: usecase.ErrUnknownSection.Error(),
		})
	}

	in, err := params.SectionInput(c)
	if err != nil {
		return badRequest(c, err)
	}

	data, err := h.sections.Load(c.UserContext(), key, in)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(SectionResponse{
		Section:  string(key),
		Title:    key.Title(),
		LoadedAt: h.now().UTC(),
		Data:     data,
	})
}

// RefreshDashboard godoc
// @Summary Refresh the caller's dashboard
// @Description Reloads sections concurrently. A newer refresh by the same viewer supersedes this one.
// @Tags Analytics
// @Produce json
// @Param sections query string false "Comma separated section keys"
// @Param timeframe query string false "Preset key or custom"
// @Param start query string false "Start (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "End (RFC3339 or YYYY-MM-DD)"
// @Param org_id query string false "Organization id"
// @Success 200 {object} usecase.DashboardView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/dashboard/refresh [post]
func (h *AnalyticsHandler) RefreshDashboard(c *fiber.Ctx) error {
	keys, err := params.Sections(c.Query("sections"))
	if err != nil {
		return badRequest(c, err)
	}
	in, err := params.SectionInput(c)
	if err != nil {
		return badRequest(c, err)
	}

	view, err := h.dashboard.Refresh(c.UserContext(), middleware.ViewerID(c), in, keys)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(view)
}

// GetDashboard godoc
// @Summary Current dashboard state
// @Description Per-section data, loading flag and last error for the caller
// @Tags Analytics
// @Produce json
// @Success 200 {object} usecase.DashboardView
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.dashboard.View(middleware.ViewerID(c)))
}

func (h *AnalyticsHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidTimeRange),
		errors.Is(err, usecase.ErrUnknownTimeframe),
		errors.Is(err, usecase.ErrUnknownSection):
		return badRequest(c, err)
	case errors.Is(err, usecase.ErrSuperseded):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Error:   "superseded",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_query",
		Message: err.Error(),
	})
}
