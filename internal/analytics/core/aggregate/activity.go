package aggregate

import "conveymed-analytics/internal/analytics/core/domain"

// UserActivity summarises sessions against the scope's user count. Top
// users carry ids only; names are resolved by the caller.
func UserActivity(totalUsers int, sessions []domain.Session) *domain.UserActivitySummary {
	byUser := NewTally()
	var seconds int64
	for _, s := range sessions {
		byUser.Add(s.UserID, s.UserID)
		if s.DurationSeconds > 0 {
			seconds += s.DurationSeconds
		}
	}

	var avg int64
	if len(sessions) > 0 {
		avg = seconds / int64(len(sessions))
	}

	return &domain.UserActivitySummary{
		TotalUsers:         totalUsers,
		ActiveUsers:        byUser.Len(),
		ActiveRate:         Rate(byUser.Len(), totalUsers, "0.0"),
		TotalSessions:      len(sessions),
		AvgSessionsPerUser: Average(len(sessions), byUser.Len()),
		TotalSessionTime:   FormatDuration(seconds),
		AvgSessionDuration: FormatDuration(avg),
		TopUsers:           idItems(byUser.Top(domain.TopN)),
	}
}

func ScreenEngagement(views []domain.ScreenView) *domain.ScreenEngagementSummary {
	screens := NewTally()
	viewers := distinct{}
	for _, v := range views {
		screens.Add(v.ScreenName, v.UserID)
		viewers.add(v.UserID)
	}

	top := make([]domain.RankedItem, 0, domain.TopN)
	for _, e := range screens.Top(domain.TopN) {
		top = append(top, domain.RankedItem{Name: e.Key, Count: e.Count, UniqueUsers: e.UniqueUsers})
	}

	return &domain.ScreenEngagementSummary{
		TotalViews:    len(views),
		UniqueViewers: len(viewers),
		UniqueScreens: screens.Len(),
		TopScreens:    top,
	}
}

func AIUsage(queries []domain.AIQuery) *domain.AIUsageSummary {
	users := NewTally()
	topics := NewTally()
	for _, q := range queries {
		users.Add(q.UserID, q.UserID)
		if q.Topic != "" {
			topics.Add(q.Topic, q.UserID)
		}
	}

	topTopics := make([]domain.RankedItem, 0, domain.TopN)
	for _, e := range topics.Top(domain.TopN) {
		topTopics = append(topTopics, domain.RankedItem{Name: e.Key, Count: e.Count, UniqueUsers: e.UniqueUsers})
	}

	return &domain.AIUsageSummary{
		TotalQueries:      len(queries),
		UniqueUsers:       users.Len(),
		AvgQueriesPerUser: Average(len(queries), users.Len()),
		TopUsers:          idItems(users.Top(domain.TopN)),
		TopTopics:         topTopics,
	}
}

func ChatActivity(chats []domain.Chat, messages []domain.Message) *domain.ChatActivitySummary {
	out := &domain.ChatActivitySummary{
		TotalChats:    len(chats),
		TotalMessages: len(messages),
	}
	for _, c := range chats {
		if c.IsGroup {
			out.GroupChats++
		} else {
			out.DirectChats++
		}
	}

	senders := NewTally()
	for _, m := range messages {
		senders.Add(m.SenderID, m.SenderID)
	}
	out.ActiveSenders = senders.Len()
	out.AvgMessagesPerChat = Average(len(messages), len(chats))
	out.TopSenders = idItems(senders.Top(domain.TopN))
	return out
}

// DirectoryUsage ranks viewed profiles and search terms. Terms are
// matched case-insensitively after trimming.
func DirectoryUsage(views []domain.ProfileView, searches []domain.Search) *domain.DirectoryUsageSummary {
	profiles := NewTally()
	viewers := distinct{}
	for _, v := range views {
		profiles.Add(v.ViewedUserID, v.ViewerID)
		viewers.add(v.ViewerID)
	}

	terms := NewTally()
	searchers := distinct{}
	for _, s := range searches {
		searchers.add(s.UserID)
		if term := normalizeTerm(s.Query); term != "" {
			terms.Add(term, s.UserID)
		}
	}

	topTerms := make([]domain.RankedItem, 0, domain.TopN)
	for _, e := range terms.Top(domain.TopN) {
		topTerms = append(topTerms, domain.RankedItem{Name: e.Key, Count: e.Count, UniqueUsers: e.UniqueUsers})
	}

	return &domain.DirectoryUsageSummary{
		TotalProfileViews: len(views),
		UniqueViewers:     len(viewers),
		ProfilesViewed:    profiles.Len(),
		TotalSearches:     len(searches),
		UniqueSearchers:   len(searchers),
		TopProfiles:       idItems(profiles.Top(domain.TopN)),
		TopSearchTerms:    topTerms,
	}
}

// idItems turns user-keyed entries into ranked items whose name starts
// out as the id.
func idItems(entries []Entry) []domain.RankedItem {
	out := make([]domain.RankedItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.RankedItem{ID: e.Key, Name: e.Key, Count: e.Count, UniqueUsers: e.UniqueUsers})
	}
	return out
}

// ApplyNames swaps ids for display names where one is known.
func ApplyNames(items []domain.RankedItem, users map[string]domain.User) {
	for i := range items {
		if u, ok := users[items[i].ID]; ok {
			items[i].Name = u.DisplayName()
		}
	}
}

// RankedIDs collects the ids of ranked items, skipping blanks.
func RankedIDs(lists ...[]domain.RankedItem) []string {
	seen := distinct{}
	var ids []string
	for _, items := range lists {
		for _, it := range items {
			if it.ID == "" {
				continue
			}
			if _, ok := seen[it.ID]; ok {
				continue
			}
			seen.add(it.ID)
			ids = append(ids, it.ID)
		}
	}
	return ids
}
