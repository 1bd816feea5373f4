package aggregate

import (
	"sort"

	"conveymed-analytics/internal/analytics/core/domain"
)

type postStats struct {
	likes        int
	comments     int
	participants distinct
}

// FeedActivity measures engagement on the given posts. Likes and comments
// on posts outside the list are ignored. A post is engaged when at least
// one user liked or commented on it.
func FeedActivity(posts []domain.Post, likes, comments []domain.PostReaction) *domain.FeedActivitySummary {
	stats := make(map[string]*postStats, len(posts))
	for _, p := range posts {
		stats[p.ID] = &postStats{participants: distinct{}}
	}

	out := &domain.FeedActivitySummary{TotalPosts: len(posts)}
	for _, l := range likes {
		if st, ok := stats[l.PostID]; ok {
			st.likes++
			st.participants.add(l.UserID)
			out.TotalLikes++
		}
	}
	for _, c := range comments {
		if st, ok := stats[c.PostID]; ok {
			st.comments++
			st.participants.add(c.UserID)
			out.TotalComments++
		}
	}

	participants := 0
	ranked := make([]domain.PostRank, 0, len(posts))
	for _, p := range posts {
		st := stats[p.ID]
		n := len(st.participants)
		if n > 0 {
			out.PostsWithEngagement++
			participants += n
		}
		points := st.likes + st.comments
		if points == 0 {
			continue
		}
		ranked = append(ranked, domain.PostRank{
			ID:          p.ID,
			Title:       p.Title,
			AuthorID:    p.AuthorID,
			Author:      p.AuthorID,
			Likes:       st.likes,
			Comments:    st.comments,
			Points:      points,
			UniqueUsers: n,
		})
	}

	out.PostsNoEngagement = out.TotalPosts - out.PostsWithEngagement
	out.EngagementRate = Rate(out.PostsWithEngagement, out.TotalPosts, "0.0")
	out.AvgUniqueUsers = Average(participants, out.TotalPosts)
	out.AvgUniqueUsersEngaged = Average(participants, out.PostsWithEngagement)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	if len(ranked) > domain.TopPostsN {
		ranked = ranked[:domain.TopPostsN]
	}
	out.TopPosts = ranked
	return out
}

// ApplyAuthors replaces author ids on ranked posts with display names.
func ApplyAuthors(posts []domain.PostRank, users map[string]domain.User) {
	for i := range posts {
		if u, ok := users[posts[i].AuthorID]; ok {
			posts[i].Author = u.DisplayName()
		}
	}
}
