package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"conveymed-analytics/internal/analytics/adapters/http/params"
	analytics "conveymed-analytics/internal/analytics/core/usecase"
	"conveymed-analytics/internal/export/core/usecase"
	"conveymed-analytics/internal/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportUseCase interface {
	ExportCSV(ctx context.Context, req usecase.ExportRequest) (*usecase.Artifact, error)
	ExportZip(ctx context.Context, req usecase.ExportRequest) (*usecase.Artifact, error)
	ExportUserReport(ctx context.Context, req usecase.ExportRequest) (*usecase.Artifact, error)
	Status(ctx context.Context, viewer string) (string, error)
}

type ExportHandler struct {
	uc ExportUseCase
}

func NewExportHandler(uc ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ExportCSV godoc
// @Summary Download sections as one CSV
// @Description Executive summary followed by the selected sections. Reuses the dashboard state unless a range is given.
// @Tags Export
// @Produce text/csv
// @Param sections query string false "Comma separated section keys"
// @Param timeframe query string false "Preset key or custom"
// @Param start query string false "Start (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "End (RFC3339 or YYYY-MM-DD)"
// @Param org_id query string false "Organization id"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/export/csv [get]
func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	return h.export(c, h.uc.ExportCSV)
}

// ExportZip godoc
// @Summary Download a zip of per-section CSVs
// @Description One CSV per section, a summary CSV and a freshly loaded user report CSV
// @Tags Export
// @Produce application/zip
// @Param sections query string false "Comma separated section keys"
// @Param timeframe query string false "Preset key or custom"
// @Param start query string false "Start (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "End (RFC3339 or YYYY-MM-DD)"
// @Param org_id query string false "Organization id"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/export/zip [get]
func (h *ExportHandler) ExportZip(c *fiber.Ctx) error {
	return h.export(c, h.uc.ExportZip)
}

// ExportUserReport godoc
// @Summary Download the per-user report workbook
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param timeframe query string false "Preset key or custom"
// @Param start query string false "Start (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "End (RFC3339 or YYYY-MM-DD)"
// @Param org_id query string false "Organization id"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/export/user-report [get]
func (h *ExportHandler) ExportUserReport(c *fiber.Ctx) error {
	return h.export(c, h.uc.ExportUserReport)
}

// GetStatus godoc
// @Summary Export state of the caller
// @Tags Export
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/export/status [get]
func (h *ExportHandler) GetStatus(c *fiber.Ctx) error {
	viewer := middleware.ViewerID(c)
	status, err := h.uc.Status(c.UserContext(), viewer)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
	return c.Status(http.StatusOK).JSON(StatusResponse{Viewer: viewer, Status: status})
}

func (h *ExportHandler) export(c *fiber.Ctx, run func(context.Context, usecase.ExportRequest) (*usecase.Artifact, error)) error {
	req, err := request(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	}

	art, err := run(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrExportInProgress):
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Error:   "export_in_progress",
				Message: err.Error(),
			})
		case errors.Is(err, analytics.ErrInvalidTimeRange),
			errors.Is(err, analytics.ErrUnknownTimeframe),
			errors.Is(err, analytics.ErrUnknownSection):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	c.Set(fiber.HeaderContentType, art.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.Filename))
	return c.Status(http.StatusOK).Send(art.Body)
}

func request(c *fiber.Ctx) (usecase.ExportRequest, error) {
	keys, err := params.Sections(c.Query("sections"))
	if err != nil {
		return usecase.ExportRequest{}, err
	}
	req := usecase.ExportRequest{
		Viewer:   middleware.ViewerID(c),
		Sections: keys,
	}
	if params.HasRange(c) {
		in, err := params.SectionInput(c)
		if err != nil {
			return usecase.ExportRequest{}, err
		}
		req.Input = &in
	}
	return req, nil
}
