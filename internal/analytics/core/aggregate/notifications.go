package aggregate

import (
	"strings"

	"conveymed-analytics/internal/analytics/core/domain"
)

// Notifications reports delivery, open and click figures. Opens count
// each recipient once per notification; clicks count every click.
// Events for notifications outside the list are ignored.
func Notifications(notifications []domain.Notification, events []domain.NotificationEvent) *domain.NotificationsSummary {
	byID := make(map[string]domain.Notification, len(notifications))
	out := &domain.NotificationsSummary{TotalNotifications: len(notifications)}
	for _, n := range notifications {
		byID[n.ID] = n
		if n.RecipientCount > 0 {
			out.Delivered += n.RecipientCount
		}
	}

	opened := distinct{}
	clickers := distinct{}
	clicks := NewTally()
	for _, e := range events {
		if _, ok := byID[e.NotificationID]; !ok {
			continue
		}
		switch e.EventType {
		case domain.NotificationOpened:
			opened.add(e.NotificationID + "\x00" + e.UserID)
		case domain.NotificationClicked:
			clicks.Add(e.NotificationID, e.UserID)
			clickers.add(e.UserID)
		}
	}

	out.Opened = len(opened)
	out.Clicked = clicks.Total()
	out.UniqueClickers = len(clickers)
	out.OpenRate = Rate(out.Opened, out.Delivered, NoValue)
	out.ClickRate = Rate(out.Clicked, out.Delivered, NoValue)

	top := make([]domain.RankedItem, 0, domain.TopN)
	for _, e := range clicks.Top(domain.TopN) {
		n := byID[e.Key]
		top = append(top, domain.RankedItem{
			ID:          n.ID,
			Name:        n.Title,
			Value:       n.Type,
			Count:       e.Count,
			UniqueUsers: e.UniqueUsers,
		})
	}
	out.TopNotifications = top
	return out
}

func normalizeTerm(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
