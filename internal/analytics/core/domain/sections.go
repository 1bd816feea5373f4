package domain

type SectionKey string

const (
	SectionUserActivity     SectionKey = "user_activity"
	SectionScreenEngagement SectionKey = "screen_engagement"
	SectionFeedActivity     SectionKey = "feed_activity"
	SectionDownloads        SectionKey = "downloads"
	SectionContent          SectionKey = "content"
	SectionAIUsage          SectionKey = "ai_usage"
	SectionChatActivity     SectionKey = "chat_activity"
	SectionDirectoryUsage   SectionKey = "directory_usage"
	SectionNotifications    SectionKey = "notifications"
	SectionGrowth           SectionKey = "growth"
	SectionUserReport       SectionKey = "user_report"
)

// DashboardSections is the dashboard order. The user report is loaded on
// demand only.
var DashboardSections = []SectionKey{
	SectionUserActivity,
	SectionScreenEngagement,
	SectionFeedActivity,
	SectionDownloads,
	SectionContent,
	SectionAIUsage,
	SectionChatActivity,
	SectionDirectoryUsage,
	SectionNotifications,
	SectionGrowth,
}

var sectionTitles = map[SectionKey]string{
	SectionUserActivity:     "User Activity",
	SectionScreenEngagement: "Screen Engagement",
	SectionFeedActivity:     "Feed Activity",
	SectionDownloads:        "Downloads",
	SectionContent:          "Content & Training",
	SectionAIUsage:          "AI Usage",
	SectionChatActivity:     "Chat Activity",
	SectionDirectoryUsage:   "Directory Usage",
	SectionNotifications:    "Notifications",
	SectionGrowth:           "Growth & Retention",
	SectionUserReport:       "User Report",
}

func ParseSection(s string) (SectionKey, bool) {
	k := SectionKey(s)
	_, ok := sectionTitles[k]
	return k, ok
}

func (k SectionKey) Title() string {
	if t, ok := sectionTitles[k]; ok {
		return t
	}
	return string(k)
}

// Top-N sizes.
const (
	TopN      = 10
	TopPostsN = 5
)

// RankedItem is one row of a ranked table. InApp is only set for content
// that went through the existence check.
type RankedItem struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Value       string `json:"value,omitempty"`
	Count       int    `json:"count"`
	UniqueUsers int    `json:"unique_users,omitempty"`
	InApp       *bool  `json:"in_app,omitempty"`
}

type UserActivitySummary struct {
	TotalUsers         int          `json:"total_users"`
	ActiveUsers        int          `json:"active_users"`
	ActiveRate         string       `json:"active_rate"`
	TotalSessions      int          `json:"total_sessions"`
	AvgSessionsPerUser float64      `json:"avg_sessions_per_user"`
	TotalSessionTime   string       `json:"total_session_time"`
	AvgSessionDuration string       `json:"avg_session_duration"`
	TopUsers           []RankedItem `json:"top_users"`
}

type ScreenEngagementSummary struct {
	TotalViews    int          `json:"total_views"`
	UniqueViewers int          `json:"unique_viewers"`
	UniqueScreens int          `json:"unique_screens"`
	TopScreens    []RankedItem `json:"top_screens"`
}

type PostRank struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AuthorID    string `json:"author_id"`
	Author      string `json:"author"`
	Likes       int    `json:"likes"`
	Comments    int    `json:"comments"`
	Points      int    `json:"points"`
	UniqueUsers int    `json:"unique_users"`
}

type FeedActivitySummary struct {
	TotalPosts            int        `json:"total_posts"`
	TotalLikes            int        `json:"total_likes"`
	TotalComments         int        `json:"total_comments"`
	PostsWithEngagement   int        `json:"posts_with_engagement"`
	PostsNoEngagement     int        `json:"posts_no_engagement"`
	EngagementRate        string     `json:"engagement_rate"`
	AvgUniqueUsers        float64    `json:"avg_unique_users"`
	AvgUniqueUsersEngaged float64    `json:"avg_unique_users_engaged"`
	TopPosts              []PostRank `json:"top_posts"`
}

type DownloadsSummary struct {
	TotalDownloads    int          `json:"total_downloads"`
	UniqueDownloaders int          `json:"unique_downloaders"`
	UniqueAssets      int          `json:"unique_assets"`
	TopAssets         []RankedItem `json:"top_assets"`
}

type ContentSummary struct {
	TotalViews    int          `json:"total_views"`
	UniqueViewers int          `json:"unique_viewers"`
	UniqueAssets  int          `json:"unique_assets"`
	TopAssets     []RankedItem `json:"top_assets"`
	TopCategories []RankedItem `json:"top_categories"`
}

type AIUsageSummary struct {
	TotalQueries      int          `json:"total_queries"`
	UniqueUsers       int          `json:"unique_users"`
	AvgQueriesPerUser float64      `json:"avg_queries_per_user"`
	TopUsers          []RankedItem `json:"top_users"`
	TopTopics         []RankedItem `json:"top_topics"`
}

type ChatActivitySummary struct {
	TotalChats         int          `json:"total_chats"`
	GroupChats         int          `json:"group_chats"`
	DirectChats        int          `json:"direct_chats"`
	TotalMessages      int          `json:"total_messages"`
	ActiveSenders      int          `json:"active_senders"`
	AvgMessagesPerChat float64      `json:"avg_messages_per_chat"`
	TopSenders         []RankedItem `json:"top_senders"`
}

type DirectoryUsageSummary struct {
	TotalProfileViews int          `json:"total_profile_views"`
	UniqueViewers     int          `json:"unique_viewers"`
	ProfilesViewed    int          `json:"profiles_viewed"`
	TotalSearches     int          `json:"total_searches"`
	UniqueSearchers   int          `json:"unique_searchers"`
	TopProfiles       []RankedItem `json:"top_profiles"`
	TopSearchTerms    []RankedItem `json:"top_search_terms"`
}

type NotificationsSummary struct {
	TotalNotifications int          `json:"total_notifications"`
	Delivered          int          `json:"delivered"`
	Opened             int          `json:"opened"`
	Clicked            int          `json:"clicked"`
	UniqueClickers     int          `json:"unique_clickers"`
	OpenRate           string       `json:"open_rate"`
	ClickRate          string       `json:"click_rate"`
	TopNotifications   []RankedItem `json:"top_notifications"`
}

type GrowthPoint struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

type GrowthSummary struct {
	TotalUsers     int           `json:"total_users"`
	NewUsers       int           `json:"new_users"`
	GrowthRate     string        `json:"growth_rate"`
	ActiveUsers    int           `json:"active_users"`
	ReturningUsers int           `json:"returning_users"`
	RetentionRate  string        `json:"retention_rate"`
	Curve          []GrowthPoint `json:"curve"`
}

type UserReportRow struct {
	UserID         string         `json:"user_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	OrganizationID string         `json:"organization_id"`
	JoinedAt       string         `json:"joined_at"`
	Sessions       int            `json:"sessions"`
	SessionSeconds int64          `json:"session_seconds"`
	SessionTime    string         `json:"session_time"`
	LastActive     string         `json:"last_active"`
	Screens        map[string]int `json:"screens"`
	Categories     map[string]int `json:"categories"`
	Assets         map[string]int `json:"assets"`
}

// UserReport columns are discovered from the data on every run, so two
// reports over different rows can have different schemas.
type UserReport struct {
	ScreenColumns   []string        `json:"screen_columns"`
	CategoryColumns []string        `json:"category_columns"`
	AssetColumns    []string        `json:"asset_columns"`
	Rows            []UserReportRow `json:"rows"`
}

// ExecutiveSummary pulls figures from two sections; either may be missing.
type ExecutiveSummary struct {
	TotalUsers     string `json:"total_users"`
	ActiveUsers    string `json:"active_users"`
	ActiveRate     string `json:"active_rate"`
	TotalPosts     string `json:"total_posts"`
	EngagementRate string `json:"engagement_rate"`
}
