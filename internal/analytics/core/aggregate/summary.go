package aggregate

import (
	"strconv"

	"conveymed-analytics/internal/analytics/core/domain"
)

// ExecutiveSummary pulls headline figures from the user activity and feed
// sections. A missing section renders its figures as "-".
func ExecutiveSummary(ua *domain.UserActivitySummary, feed *domain.FeedActivitySummary) domain.ExecutiveSummary {
	out := domain.ExecutiveSummary{
		TotalUsers:     NoValue,
		ActiveUsers:    NoValue,
		ActiveRate:     NoValue,
		TotalPosts:     NoValue,
		EngagementRate: NoValue,
	}
	if ua != nil {
		out.TotalUsers = strconv.Itoa(ua.TotalUsers)
		out.ActiveUsers = strconv.Itoa(ua.ActiveUsers)
		out.ActiveRate = Percent(ua.ActiveRate)
	}
	if feed != nil {
		out.TotalPosts = strconv.Itoa(feed.TotalPosts)
		out.EngagementRate = Percent(feed.EngagementRate)
	}
	return out
}
