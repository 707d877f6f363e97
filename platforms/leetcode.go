// platforms/leetcode.go
package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"codefolio-backend/utils"
)

const leetcodeBaseURL = "https://leetcode.com"

// LeetCodeSnapshot is a best-effort view of one LeetCode account.
type LeetCodeSnapshot struct {
	Username     string `json:"username"`
	RealName     string `json:"real_name,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	GlobalRank   int    `json:"global_rank,omitempty"`
	TotalSolved  int    `json:"total_solved"`
	EasySolved   int    `json:"easy_solved"`
	MediumSolved int    `json:"medium_solved"`
	HardSolved   int    `json:"hard_solved"`

	RecentContestRating *float64 `json:"recent_contest_rating"`
	MaxContestRating    *float64 `json:"max_contest_rating"`

	// SubmissionsByDay maps UTC day (YYYY-MM-DD) to submission count.
	SubmissionsByDay map[string]int `json:"submissions_by_day,omitempty"`
}

type LeetCodeClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewLeetCodeClient() *LeetCodeClient {
	return &LeetCodeClient{
		BaseURL:    leetcodeBaseURL,
		HTTPClient: utils.HTTPClient,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

const profileQuery = `
query userPublicProfile($username: String!) {
  matchedUser(username: $username) {
    username
    profile { realName userAvatar ranking }
    submitStatsGlobal { acSubmissionNum { difficulty count } }
    userCalendar { submissionCalendar }
  }
  userContestRanking(username: $username) { rating }
  userContestRankingHistory(username: $username) { attended rating }
}`

const upcomingContestsQuery = `
query upcomingContests {
  upcomingContests { title titleSlug startTime duration }
}`

func (c *LeetCodeClient) sendGraphqlQuery(ctx context.Context, query string, variables map[string]any, out any) error {
	requestBody, err := json.Marshal(graphqlRequest{
		Query:     strings.ReplaceAll(query, "\n", " "),
		Variables: variables,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/graphql/", bytes.NewReader(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.BaseURL)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("leetcode request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read leetcode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leetcode returned %s: %s", resp.Status, string(body))
	}

	var response graphqlResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to decode leetcode response: %w", err)
	}
	if len(response.Errors) > 0 {
		return fmt.Errorf("leetcode graphql error: %s", response.Errors[0].Message)
	}
	if err := json.Unmarshal(response.Data, out); err != nil {
		return fmt.Errorf("failed to decode leetcode data: %w", err)
	}
	return nil
}

// FetchStats fetches solved counts, contest ratings and the submission calendar
// for one username in a single GraphQL round trip.
func (c *LeetCodeClient) FetchStats(ctx context.Context, username string) (*LeetCodeSnapshot, error) {
	var data struct {
		MatchedUser *struct {
			Username string `json:"username"`
			Profile  struct {
				RealName   string `json:"realName"`
				UserAvatar string `json:"userAvatar"`
				Ranking    int    `json:"ranking"`
			} `json:"profile"`
			SubmitStatsGlobal struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
			UserCalendar struct {
				SubmissionCalendar string `json:"submissionCalendar"`
			} `json:"userCalendar"`
		} `json:"matchedUser"`
		UserContestRanking *struct {
			Rating float64 `json:"rating"`
		} `json:"userContestRanking"`
		UserContestRankingHistory []struct {
			Attended bool    `json:"attended"`
			Rating   float64 `json:"rating"`
		} `json:"userContestRankingHistory"`
	}

	if err := c.sendGraphqlQuery(ctx, profileQuery, map[string]any{"username": username}, &data); err != nil {
		return nil, err
	}
	if data.MatchedUser == nil {
		return nil, fmt.Errorf("leetcode user %q: %w", username, ErrNotFound)
	}

	snapshot := &LeetCodeSnapshot{
		Username:   data.MatchedUser.Username,
		RealName:   data.MatchedUser.Profile.RealName,
		AvatarURL:  data.MatchedUser.Profile.UserAvatar,
		GlobalRank: data.MatchedUser.Profile.Ranking,
	}

	for _, entry := range data.MatchedUser.SubmitStatsGlobal.AcSubmissionNum {
		switch entry.Difficulty {
		case "All":
			snapshot.TotalSolved = entry.Count
		case "Easy":
			snapshot.EasySolved = entry.Count
		case "Medium":
			snapshot.MediumSolved = entry.Count
		case "Hard":
			snapshot.HardSolved = entry.Count
		}
	}

	if data.UserContestRanking != nil {
		rating := data.UserContestRanking.Rating
		snapshot.RecentContestRating = &rating

		var max float64
		for _, h := range data.UserContestRankingHistory {
			if h.Attended && h.Rating > max {
				max = h.Rating
			}
		}
		if max > 0 {
			snapshot.MaxContestRating = &max
		} else {
			snapshot.MaxContestRating = &rating
		}
	}

	snapshot.SubmissionsByDay = parseSubmissionCalendar(data.MatchedUser.UserCalendar.SubmissionCalendar)

	return snapshot, nil
}

// FetchUpcomingContests lists contests that have not started yet.
func (c *LeetCodeClient) FetchUpcomingContests(ctx context.Context) ([]ContestInfo, error) {
	var data struct {
		UpcomingContests []struct {
			Title     string `json:"title"`
			TitleSlug string `json:"titleSlug"`
			StartTime int64  `json:"startTime"`
			Duration  int64  `json:"duration"`
		} `json:"upcomingContests"`
	}
	if err := c.sendGraphqlQuery(ctx, upcomingContestsQuery, nil, &data); err != nil {
		return nil, err
	}

	contests := make([]ContestInfo, 0, len(data.UpcomingContests))
	for _, uc := range data.UpcomingContests {
		contests = append(contests, ContestInfo{
			Platform: PlatformLeetCode,
			Key:      uc.TitleSlug,
			Name:     uc.Title,
			URL:      fmt.Sprintf("%s/contest/%s/", leetcodeBaseURL, uc.TitleSlug),
			StartsAt: time.Unix(uc.StartTime, 0).UTC(),
			Duration: time.Duration(uc.Duration) * time.Second,
		})
	}
	return contests, nil
}

// parseSubmissionCalendar decodes LeetCode's calendar, a JSON string mapping
// unix timestamps (as strings) to daily submission counts.
func parseSubmissionCalendar(raw string) map[string]int {
	if raw == "" {
		return nil
	}
	var calendar map[string]int
	if err := json.Unmarshal([]byte(raw), &calendar); err != nil {
		return nil
	}

	byDay := make(map[string]int, len(calendar))
	for tsStr, count := range calendar {
		ts, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			continue
		}
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")
		byDay[day] += count
	}
	return byDay
}
