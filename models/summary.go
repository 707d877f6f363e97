package models

// TotalQuestionsSummary aggregates solved-problem counts across platforms for one
// user. One column per platform/difficulty, platform-prefixed so contributions
// never collide. Counts default to 0 when a platform is unlinked or a fetch failed.
type TotalQuestionsSummary struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"-"`
	UserID string `gorm:"uniqueIndex;not null" json:"-"`

	LeetcodeTotal  int `gorm:"default:0" json:"leetcode_total"`
	LeetcodeEasy   int `gorm:"default:0" json:"leetcode_easy"`
	LeetcodeMedium int `gorm:"default:0" json:"leetcode_medium"`
	LeetcodeHard   int `gorm:"default:0" json:"leetcode_hard"`

	CodeforcesTotal int `gorm:"default:0" json:"codeforces_total"`

	CodechefTotal int `gorm:"default:0" json:"codechef_total"`

	Timestamps `json:"-"`
}

// ContestRankingSummary aggregates current and peak contest ratings per platform.
// Ratings are pointers: nil (JSON null) means "no rating known", never zero.
type ContestRankingSummary struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"-"`
	UserID string `gorm:"uniqueIndex;not null" json:"-"`

	LeetcodeRecentContestRating *float64 `json:"leetcode_recent_contest_rating"`
	LeetcodeMaxContestRating    *float64 `json:"leetcode_max_contest_rating"`

	CodeforcesRecentContestRating *int `json:"codeforces_recent_contest_rating"`
	CodeforcesMaxContestRating    *int `json:"codeforces_max_contest_rating"`

	CodechefStars               *string `json:"codechef_stars"`
	CodechefRecentContestRating *int    `json:"codechef_recent_contest_rating"`
	CodechefMaxContestRating    *int    `json:"codechef_max_contest_rating"`

	Timestamps `json:"-"`
}
