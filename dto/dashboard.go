package dto

import "github.com/lac-hong-legacy/epsilon_api/progression"

type ActivityDay struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
}

type StatItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ProgressSummary is the aggregate shown on the dashboard overview card.
type ProgressSummary struct {
	Completed        int  `json:"completed"`
	Total            int  `json:"total"`
	Percent          int  `json:"percent"`
	CatalogEstimated bool `json:"catalog_estimated"`
}

type DashboardResponse struct {
	User            CurrentUser           `json:"user"`
	Greeting        string                `json:"greeting"`
	XP              int                   `json:"xp"`
	Level           progression.LevelInfo `json:"level"`
	StreakDays      int                   `json:"streak_days"`
	Progress        ProgressSummary       `json:"progress"`
	Stats           []StatItem            `json:"stats"`
	WeeklyActivity  []ActivityDay         `json:"weekly_activity"`
	RecentResources []ResourceResponse    `json:"recent_resources"`
}

type ProfileResponse struct {
	User        CurrentUser                 `json:"user"`
	Level       progression.LevelInfo       `json:"level"`
	StreakDays  int                         `json:"streak_days"`
	Stats       []StatItem                  `json:"stats"`
	Earned      []progression.Badge         `json:"earned_badges"`
	Locked      []progression.Badge         `json:"locked_badges"`
	Criteria    []progression.BadgeProgress `json:"criteria"`
	HasProgress bool                        `json:"has_progress"`
}

type BadgesResponse struct {
	Badges []progression.Badge `json:"badges"`
}

// StatsFromCounts orders the counters the way the dashboard and profile
// cards list them.
func StatsFromCounts(c progression.Counts) []StatItem {
	return []StatItem{
		{Label: "Lessons", Value: c.Lessons},
		{Label: "Quizzes", Value: c.Quizzes},
		{Label: "Videos", Value: c.Videos},
		{Label: "Downloads", Value: c.Downloads},
	}
}
