package aggregate

import (
	"sort"
	"strings"
	"time"

	"conveymed-analytics/internal/analytics/core/domain"
)

// NeverActive marks users without sessions in the report.
const NeverActive = "Never"

// UserReport builds one row per user. Screen and asset columns are the
// distinct names found in the rows; category columns are the active
// categories. Columns are sorted case-insensitively.
func UserReport(
	users []domain.User,
	sessions []domain.Session,
	views []domain.ScreenView,
	assetEvents []domain.AssetEvent,
	categories []domain.Category,
) *domain.UserReport {
	rows := make([]domain.UserReportRow, len(users))
	index := make(map[string]int, len(users))
	lastActive := make([]time.Time, len(users))
	for i, u := range users {
		index[u.ID] = i
		rows[i] = domain.UserReportRow{
			UserID:         u.ID,
			Name:           u.DisplayName(),
			Email:          u.Email,
			OrganizationID: u.OrganizationID,
			JoinedAt:       u.CreatedAt.UTC().Format(dayLayout),
			Screens:        map[string]int{},
			Categories:     map[string]int{},
			Assets:         map[string]int{},
		}
	}

	for _, s := range sessions {
		i, ok := index[s.UserID]
		if !ok {
			continue
		}
		rows[i].Sessions++
		if s.DurationSeconds > 0 {
			rows[i].SessionSeconds += s.DurationSeconds
		}
		if s.CreatedAt.After(lastActive[i]) {
			lastActive[i] = s.CreatedAt
		}
	}

	screens := NewTally()
	for _, v := range views {
		i, ok := index[v.UserID]
		if !ok || v.ScreenName == "" {
			continue
		}
		screens.Add(v.ScreenName, v.UserID)
		rows[i].Screens[v.ScreenName]++
	}

	active := make(map[string]bool, len(categories))
	categoryColumns := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.Name == "" || active[c.Name] {
			continue
		}
		active[c.Name] = true
		categoryColumns = append(categoryColumns, c.Name)
	}

	assets := NewTally()
	for _, e := range assetEvents {
		i, ok := index[e.UserID]
		if !ok {
			continue
		}
		if active[e.Category] {
			rows[i].Categories[e.Category]++
		}
		name := e.AssetName
		if name == "" {
			name = e.AssetID
		}
		if name == "" {
			continue
		}
		assets.Add(name, e.UserID)
		rows[i].Assets[name]++
	}

	for i := range rows {
		rows[i].SessionTime = FormatDuration(rows[i].SessionSeconds)
		if lastActive[i].IsZero() {
			rows[i].LastActive = NeverActive
		} else {
			rows[i].LastActive = lastActive[i].UTC().Format(dayLayout)
		}
	}

	return &domain.UserReport{
		ScreenColumns:   sortColumns(screens.Keys()),
		CategoryColumns: sortColumns(categoryColumns),
		AssetColumns:    sortColumns(assets.Keys()),
		Rows:            rows,
	}
}

func sortColumns(cols []string) []string {
	sort.SliceStable(cols, func(i, j int) bool {
		return strings.ToLower(cols[i]) < strings.ToLower(cols[j])
	})
	return cols
}
