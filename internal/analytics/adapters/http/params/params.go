// Package params reads the analytics query parameters shared by the
// dashboard and export endpoints.
package params

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"conveymed-analytics/internal/analytics/core/domain"
	"conveymed-analytics/internal/analytics/core/usecase"
)

var ErrInvalidParam = errors.New("invalid query parameter")

const dayLayout = "2006-01-02"

// HasRange reports whether the request names any range or scope parameter.
func HasRange(c *fiber.Ctx) bool {
	for _, k := range []string{"timeframe", "start", "end", "org_id"} {
		if c.Query(k) != "" {
			return true
		}
	}
	return false
}

// SectionInput reads timeframe, start, end and org_id. Bounds accept
// RFC3339 or a plain date; a plain end date covers the whole day. Strings
// are copied out of the request buffer so the input may outlive the
// handler.
func SectionInput(c *fiber.Ctx) (usecase.SectionInput, error) {
	in := usecase.SectionInput{
		Timeframe:      query(c, "timeframe"),
		OrganizationID: query(c, "org_id"),
	}

	start, err := parseTime(c.Query("start"), false)
	if err != nil {
		return usecase.SectionInput{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseTime(c.Query("end"), true)
	if err != nil {
		return usecase.SectionInput{}, fmt.Errorf("end: %w", err)
	}
	in.Start, in.End = start, end
	return in, nil
}

// Sections parses a comma separated section list. Empty means "all".
func Sections(raw string) ([]domain.SectionKey, error) {
	var out []domain.SectionKey
	seen := make(map[domain.SectionKey]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, ok := domain.ParseSection(strings.Clone(part))
		if !ok {
			return nil, fmt.Errorf("%w: %s", usecase.ErrUnknownSection, part)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out, nil
}

func query(c *fiber.Ctx, key string) string {
	return strings.Clone(strings.TrimSpace(c.Query(key)))
}

func parseTime(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidParam, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
