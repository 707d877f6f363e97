// platforms/codechef.go
package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"codefolio-backend/utils"

	"github.com/PuerkitoBio/goquery"
)

const codechefBaseURL = "https://www.codechef.com"

// CodechefSnapshot is a best-effort view of one CodeChef account. CodeChef has no
// public profile API, so this is scraped from the profile page.
type CodechefSnapshot struct {
	Username string `json:"username"`

	ProblemsSolved int     `json:"problems_solved"`
	Stars          *string `json:"stars"`
	Rating         *int    `json:"rating"`
	HighestRating  *int    `json:"highest_rating"`
}

type CodechefClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewCodechefClient() *CodechefClient {
	return &CodechefClient{
		BaseURL:    codechefBaseURL,
		HTTPClient: utils.HTTPClient,
	}
}

var (
	highestRatingRe  = regexp.MustCompile(`Highest Rating\s*(\d+)`)
	problemsSolvedRe = regexp.MustCompile(`Total Problems Solved:\s*(\d+)`)
	digitsRe         = regexp.MustCompile(`\d+`)
)

// FetchProfile scrapes the public profile page for one username.
func (c *CodechefClient) FetchProfile(ctx context.Context, username string) (*CodechefSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/users/%s", c.BaseURL, username), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; codefolio)")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("codechef request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("codechef user %q: %w", username, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("codechef returned %s for user %q", resp.Status, username)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse codechef profile page: %w", err)
	}

	snapshot := &CodechefSnapshot{Username: username}

	// An unknown username serves the generic page without a rating widget.
	ratingText := strings.TrimSpace(doc.Find(".rating-number").First().Text())
	if ratingText == "" {
		return nil, fmt.Errorf("codechef user %q: %w", username, ErrNotFound)
	}
	if m := digitsRe.FindString(ratingText); m != "" {
		if rating, err := strconv.Atoi(m); err == nil {
			snapshot.Rating = &rating
		}
	}

	if starCount := doc.Find(".rating-star span").Length(); starCount > 0 {
		stars := fmt.Sprintf("%d★", starCount)
		snapshot.Stars = &stars
	}

	headerText := doc.Find(".rating-header").Text()
	if m := highestRatingRe.FindStringSubmatch(headerText); len(m) == 2 {
		if highest, err := strconv.Atoi(m[1]); err == nil {
			snapshot.HighestRating = &highest
		}
	}

	solvedText := doc.Find("section.problems-solved").Text()
	if m := problemsSolvedRe.FindStringSubmatch(solvedText); len(m) == 2 {
		snapshot.ProblemsSolved, _ = strconv.Atoi(m[1])
	}

	return snapshot, nil
}

// FetchUpcomingContests reads the public contest listing API.
func (c *CodechefClient) FetchUpcomingContests(ctx context.Context) ([]ContestInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/api/list/contests/all", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("codechef contest request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("codechef contest list returned %s", resp.Status)
	}

	var payload struct {
		FutureContests []struct {
			ContestCode     string `json:"contest_code"`
			ContestName     string `json:"contest_name"`
			ContestStartISO string `json:"contest_start_date_iso"`
			ContestDuration string `json:"contest_duration"` // minutes
		} `json:"future_contests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode codechef contest list: %w", err)
	}

	var contests []ContestInfo
	for _, fc := range payload.FutureContests {
		startsAt, err := time.Parse(time.RFC3339, fc.ContestStartISO)
		if err != nil {
			continue
		}
		minutes, _ := strconv.Atoi(fc.ContestDuration)
		contests = append(contests, ContestInfo{
			Platform: PlatformCodechef,
			Key:      fc.ContestCode,
			Name:     fc.ContestName,
			URL:      fmt.Sprintf("%s/%s", c.BaseURL, fc.ContestCode),
			StartsAt: startsAt.UTC(),
			Duration: time.Duration(minutes) * time.Minute,
		})
	}
	return contests, nil
}
