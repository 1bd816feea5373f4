package aggregate

import (
	"sort"

	"conveymed-analytics/internal/analytics/core/domain"
)

// GrowthCurvePoints caps the cumulative curve.
const GrowthCurvePoints = 30

const dayLayout = "2006-01-02"

// Growth builds the cumulative signup curve over every user in scope and
// measures new and returning users against r. A returning user has
// sessions on at least two distinct days.
func Growth(users []domain.User, sessions []domain.Session, r domain.DateRange) *domain.GrowthSummary {
	sorted := make([]domain.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	out := &domain.GrowthSummary{TotalUsers: len(users)}
	curve := make([]domain.GrowthPoint, 0)
	for i, u := range sorted {
		if r.Contains(u.CreatedAt) {
			out.NewUsers++
		}
		day := u.CreatedAt.UTC().Format(dayLayout)
		if n := len(curve); n > 0 && curve[n-1].Date == day {
			curve[n-1].Total = i + 1
			continue
		}
		curve = append(curve, domain.GrowthPoint{Date: day, Total: i + 1})
	}
	if len(curve) > GrowthCurvePoints {
		curve = curve[len(curve)-GrowthCurvePoints:]
	}
	out.Curve = curve
	out.GrowthRate = Rate(out.NewUsers, out.TotalUsers-out.NewUsers, NoValue)

	days := make(map[string]distinct)
	for _, s := range sessions {
		if s.UserID == "" {
			continue
		}
		set, ok := days[s.UserID]
		if !ok {
			set = distinct{}
			days[s.UserID] = set
		}
		set.add(s.CreatedAt.UTC().Format(dayLayout))
	}
	out.ActiveUsers = len(days)
	for _, set := range days {
		if len(set) >= 2 {
			out.ReturningUsers++
		}
	}
	out.RetentionRate = Rate(out.ReturningUsers, out.ActiveUsers, NoValue)
	return out
}
