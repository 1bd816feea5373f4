package aggregate

import "conveymed-analytics/internal/analytics/core/domain"

// Downloads ranks downloaded assets. Rows of other event types are
// skipped.
func Downloads(events []domain.AssetEvent) *domain.DownloadsSummary {
	assets, users, names, categories := tallyAssets(events, domain.AssetEventDownload)
	return &domain.DownloadsSummary{
		TotalDownloads:    assets.Total(),
		UniqueDownloaders: len(users),
		UniqueAssets:      assets.Len(),
		TopAssets:         assetItems(assets.Top(domain.TopN), names, categories),
	}
}

// ContentEngagement ranks viewed assets and their categories. When a list
// of active categories is given, category ranking is limited to it.
func ContentEngagement(events []domain.AssetEvent, active []domain.Category) *domain.ContentSummary {
	assets, users, names, categories := tallyAssets(events, domain.AssetEventView)

	allowed := make(map[string]bool, len(active))
	for _, c := range active {
		allowed[c.Name] = true
	}
	byCategory := NewTally()
	for _, e := range events {
		if e.EventType != domain.AssetEventView || e.Category == "" {
			continue
		}
		if len(allowed) > 0 && !allowed[e.Category] {
			continue
		}
		byCategory.Add(e.Category, e.UserID)
	}

	topCategories := make([]domain.RankedItem, 0, domain.TopN)
	for _, e := range byCategory.Top(domain.TopN) {
		topCategories = append(topCategories, domain.RankedItem{Name: e.Key, Count: e.Count, UniqueUsers: e.UniqueUsers})
	}

	return &domain.ContentSummary{
		TotalViews:    assets.Total(),
		UniqueViewers: len(users),
		UniqueAssets:  assets.Len(),
		TopAssets:     assetItems(assets.Top(domain.TopN), names, categories),
		TopCategories: topCategories,
	}
}

// AnnotateInApp marks each item by whether its id is still present in the
// content catalog. Missing ids are reported as not in app.
func AnnotateInApp(items []domain.RankedItem, existing map[string]bool) {
	for i := range items {
		inApp := existing[items[i].ID]
		items[i].InApp = &inApp
	}
}

func tallyAssets(events []domain.AssetEvent, eventType string) (*Tally, distinct, map[string]string, map[string]string) {
	assets := NewTally()
	users := distinct{}
	names := make(map[string]string)
	categories := make(map[string]string)
	for _, e := range events {
		if e.EventType != eventType {
			continue
		}
		assets.Add(e.AssetID, e.UserID)
		users.add(e.UserID)
		if _, ok := names[e.AssetID]; !ok && e.AssetName != "" {
			names[e.AssetID] = e.AssetName
		}
		if _, ok := categories[e.AssetID]; !ok && e.Category != "" {
			categories[e.AssetID] = e.Category
		}
	}
	return assets, users, names, categories
}

func assetItems(entries []Entry, names, categories map[string]string) []domain.RankedItem {
	out := make([]domain.RankedItem, 0, len(entries))
	for _, e := range entries {
		name := names[e.Key]
		if name == "" {
			name = e.Key
		}
		out = append(out, domain.RankedItem{
			ID:          e.Key,
			Name:        name,
			Value:       categories[e.Key],
			Count:       e.Count,
			UniqueUsers: e.UniqueUsers,
		})
	}
	return out
}
