package usecase

import (
	"fmt"
	"strconv"

	"conveymed-analytics/internal/analytics/core/aggregate"
	"conveymed-analytics/internal/analytics/core/domain"
	"conveymed-analytics/internal/export/csvx"
	"conveymed-analytics/internal/export/workbook"
)

// SectionCSV maps one loaded section summary to its CSV block.
func SectionCSV(key domain.SectionKey, data any) (csvx.Section, error) {
	s := csvx.Section{Title: key.Title()}

	switch d := data.(type) {
	case *domain.UserActivitySummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Users", Value: itoa(d.TotalUsers)},
			{Metric: "Active Users", Value: itoa(d.ActiveUsers)},
			{Metric: "Active Rate", Value: aggregate.Percent(d.ActiveRate)},
			{Metric: "Total Sessions", Value: itoa(d.TotalSessions)},
			{Metric: "Avg Sessions per User", Value: aggregate.FormatFloat(d.AvgSessionsPerUser)},
			{Metric: "Total Session Time", Value: d.TotalSessionTime},
			{Metric: "Avg Session Duration", Value: d.AvgSessionDuration},
		}
		s.Tables = []csvx.Table{countTable("Top Users", "Name", "Sessions", d.TopUsers)}

	case *domain.ScreenEngagementSummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Views", Value: itoa(d.TotalViews)},
			{Metric: "Unique Viewers", Value: itoa(d.UniqueViewers)},
			{Metric: "Unique Screens", Value: itoa(d.UniqueScreens)},
		}
		t := csvx.Table{Title: "Top Screens", Headers: []string{"Screen", "Views", "Unique Users"}}
		for _, it := range d.TopScreens {
			t.Rows = append(t.Rows, []string{it.Name, itoa(it.Count), itoa(it.UniqueUsers)})
		}
		s.Tables = []csvx.Table{t}

	case *domain.FeedActivitySummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Posts", Value: itoa(d.TotalPosts)},
			{Metric: "Total Likes", Value: itoa(d.TotalLikes)},
			{Metric: "Total Comments", Value: itoa(d.TotalComments)},
			{Metric: "Posts With Engagement", Value: itoa(d.PostsWithEngagement)},
			{Metric: "Posts Without Engagement", Value: itoa(d.PostsNoEngagement)},
			{Metric: "Engagement Rate", Value: aggregate.Percent(d.EngagementRate)},
			{Metric: "Avg Unique Users per Post", Value: aggregate.FormatFloat(d.AvgUniqueUsers)},
			{Metric: "Avg Unique Users per Engaged Post", Value: aggregate.FormatFloat(d.AvgUniqueUsersEngaged)},
		}
		t := csvx.Table{Title: "Top Posts", Headers: []string{"Title", "Author", "Likes", "Comments", "Points", "Unique Users"}}
		for _, p := range d.TopPosts {
			t.Rows = append(t.Rows, []string{p.Title, p.Author, itoa(p.Likes), itoa(p.Comments), itoa(p.Points), itoa(p.UniqueUsers)})
		}
		s.Tables = []csvx.Table{t}

	case *domain.DownloadsSummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Downloads", Value: itoa(d.TotalDownloads)},
			{Metric: "Unique Downloaders", Value: itoa(d.UniqueDownloaders)},
			{Metric: "Unique Assets", Value: itoa(d.UniqueAssets)},
		}
		s.Tables = []csvx.Table{assetTable("Top Downloads", "Downloads", d.TopAssets)}

	case *domain.ContentSummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Views", Value: itoa(d.TotalViews)},
			{Metric: "Unique Viewers", Value: itoa(d.UniqueViewers)},
			{Metric: "Unique Assets", Value: itoa(d.UniqueAssets)},
		}
		cats := csvx.Table{Title: "Top Categories", Headers: []string{"Category", "Views", "Unique Users"}}
		for _, it := range d.TopCategories {
			cats.Rows = append(cats.Rows, []string{it.Name, itoa(it.Count), itoa(it.UniqueUsers)})
		}
		s.Tables = []csvx.Table{assetTable("Top Assets", "Views", d.TopAssets), cats}

	case *domain.AIUsageSummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Queries", Value: itoa(d.TotalQueries)},
			{Metric: "Unique Users", Value: itoa(d.UniqueUsers)},
			{Metric: "Avg Queries per User", Value: aggregate.FormatFloat(d.AvgQueriesPerUser)},
		}
		s.Tables = []csvx.Table{
			countTable("Top Users", "Name", "Queries", d.TopUsers),
			countTable("Top Topics", "Topic", "Queries", d.TopTopics),
		}

	case *domain.ChatActivitySummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Chats", Value: itoa(d.TotalChats)},
			{Metric: "Group Chats", Value: itoa(d.GroupChats)},
			{Metric: "Direct Chats", Value: itoa(d.DirectChats)},
			{Metric: "Total Messages", Value: itoa(d.TotalMessages)},
			{Metric: "Active Senders", Value: itoa(d.ActiveSenders)},
			{Metric: "Avg Messages per Chat", Value: aggregate.FormatFloat(d.AvgMessagesPerChat)},
		}
		s.Tables = []csvx.Table{countTable("Top Senders", "Name", "Messages", d.TopSenders)}

	case *domain.DirectoryUsageSummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Profile Views", Value: itoa(d.TotalProfileViews)},
			{Metric: "Unique Viewers", Value: itoa(d.UniqueViewers)},
			{Metric: "Profiles Viewed", Value: itoa(d.ProfilesViewed)},
			{Metric: "Total Searches", Value: itoa(d.TotalSearches)},
			{Metric: "Unique Searchers", Value: itoa(d.UniqueSearchers)},
		}
		s.Tables = []csvx.Table{
			countTable("Most Viewed Profiles", "Name", "Views", d.TopProfiles),
			countTable("Top Search Terms", "Term", "Searches", d.TopSearchTerms),
		}

	case *domain.NotificationsSummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Notifications", Value: itoa(d.TotalNotifications)},
			{Metric: "Delivered", Value: itoa(d.Delivered)},
			{Metric: "Opened", Value: itoa(d.Opened)},
			{Metric: "Clicked", Value: itoa(d.Clicked)},
			{Metric: "Unique Clickers", Value: itoa(d.UniqueClickers)},
			{Metric: "Open Rate", Value: aggregate.Percent(d.OpenRate)},
			{Metric: "Click Rate", Value: aggregate.Percent(d.ClickRate)},
		}
		t := csvx.Table{Title: "Top Notifications", Headers: []string{"Title", "Type", "Clicks", "Unique Users"}}
		for _, it := range d.TopNotifications {
			t.Rows = append(t.Rows, []string{it.Name, it.Value, itoa(it.Count), itoa(it.UniqueUsers)})
		}
		s.Tables = []csvx.Table{t}

	case *domain.GrowthSummary:
		s.Stats = []csvx.Stat{
			{Metric: "Total Users", Value: itoa(d.TotalUsers)},
			{Metric: "New Users", Value: itoa(d.NewUsers)},
			{Metric: "Growth Rate", Value: aggregate.Percent(d.GrowthRate)},
			{Metric: "Active Users", Value: itoa(d.ActiveUsers)},
			{Metric: "Returning Users", Value: itoa(d.ReturningUsers)},
			{Metric: "Retention Rate", Value: aggregate.Percent(d.RetentionRate)},
		}
		t := csvx.Table{Title: "Growth Curve", Headers: []string{"Date", "Total Users"}}
		for _, p := range d.Curve {
			t.Rows = append(t.Rows, []string{p.Date, itoa(p.Total)})
		}
		s.Tables = []csvx.Table{t}

	case *domain.UserReport:
		t := csvx.Table{Headers: workbook.Headers(d)}
		for _, row := range d.Rows {
			cells := workbook.Cells(d, row)
			line := make([]string, len(cells))
			for i, c := range cells {
				line[i] = fmt.Sprint(c)
			}
			t.Rows = append(t.Rows, line)
		}
		s.Tables = []csvx.Table{t}

	default:
		return csvx.Section{}, fmt.Errorf("no csv layout for section %s (%T)", key, data)
	}
	return s, nil
}

// ExecutiveSummaryCSV is the headline block of the combined export.
func ExecutiveSummaryCSV(sum domain.ExecutiveSummary) csvx.Section {
	return csvx.Section{
		Title: "Executive Summary",
		Stats: []csvx.Stat{
			{Metric: "Total Users", Value: sum.TotalUsers},
			{Metric: "Active Users", Value: sum.ActiveUsers},
			{Metric: "Active Rate", Value: sum.ActiveRate},
			{Metric: "Total Posts", Value: sum.TotalPosts},
			{Metric: "Engagement Rate", Value: sum.EngagementRate},
		},
	}
}

func countTable(title, nameHeader, countHeader string, items []domain.RankedItem) csvx.Table {
	t := csvx.Table{Title: title, Headers: []string{nameHeader, countHeader}}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{it.Name, itoa(it.Count)})
	}
	return t
}

func assetTable(title, countHeader string, items []domain.RankedItem) csvx.Table {
	t := csvx.Table{Title: title, Headers: []string{"Asset", "Category", countHeader, "Unique Users", "In App"}}
	for _, it := range items {
		inApp := aggregate.NoValue
		if it.InApp != nil {
			inApp = "No"
			if *it.InApp {
				inApp = "Yes"
			}
		}
		t.Rows = append(t.Rows, []string{it.Name, it.Value, itoa(it.Count), itoa(it.UniqueUsers), inApp})
	}
	return t
}

func itoa(n int) string { return strconv.Itoa(n) }
