// platforms/codeforces.go
package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"codefolio-backend/utils"
)

const codeforcesBaseURL = "https://codeforces.com/api"

// CodeforcesSnapshot is a best-effort view of one Codeforces account.
type CodeforcesSnapshot struct {
	Handle    string `json:"handle"`
	Rank      string `json:"rank,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`

	// TotalSolved counts distinct problems with an OK verdict.
	TotalSolved int `json:"total_solved"`

	Rating    *int `json:"rating"`
	MaxRating *int `json:"max_rating"`

	// SubmissionsByDay maps UTC day (YYYY-MM-DD) to submission count.
	SubmissionsByDay map[string]int `json:"submissions_by_day,omitempty"`
}

type CodeforcesClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewCodeforcesClient() *CodeforcesClient {
	return &CodeforcesClient{
		BaseURL:    codeforcesBaseURL,
		HTTPClient: utils.HTTPClient,
	}
}

// getJSON performs one Codeforces API call and unwraps the status envelope.
func (c *CodeforcesClient) getJSON(ctx context.Context, method string, params url.Values, result any) error {
	endpoint := fmt.Sprintf("%s/%s", c.BaseURL, method)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("codeforces request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var envelope struct {
		Status  string          `json:"status"`
		Comment string          `json:"comment"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode codeforces response: %w", err)
	}
	if envelope.Status != "OK" {
		return fmt.Errorf("codeforces %s failed: %s", method, envelope.Comment)
	}
	return json.Unmarshal(envelope.Result, result)
}

type codeforcesSubmission struct {
	Verdict             string `json:"verdict"`
	CreationTimeSeconds int64  `json:"creationTimeSeconds"`
	Problem             struct {
		ContestID int    `json:"contestId"`
		Index     string `json:"index"`
	} `json:"problem"`
}

// FetchProfile combines user.info and user.status into one snapshot.
func (c *CodeforcesClient) FetchProfile(ctx context.Context, handle string) (*CodeforcesSnapshot, error) {
	var users []struct {
		Handle    string `json:"handle"`
		Rating    int    `json:"rating"`
		MaxRating int    `json:"maxRating"`
		Rank      string `json:"rank"`
		Avatar    string `json:"avatar"`
	}
	if err := c.getJSON(ctx, "user.info", url.Values{"handles": {handle}}, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("codeforces handle %q: %w", handle, ErrNotFound)
	}

	snapshot := &CodeforcesSnapshot{
		Handle:    users[0].Handle,
		Rank:      users[0].Rank,
		AvatarURL: users[0].Avatar,
	}
	// An unrated account reports rating 0; keep the JSON null contract.
	if users[0].Rating > 0 {
		rating, maxRating := users[0].Rating, users[0].MaxRating
		snapshot.Rating = &rating
		snapshot.MaxRating = &maxRating
	}

	var submissions []codeforcesSubmission
	if err := c.getJSON(ctx, "user.status", url.Values{"handle": {handle}}, &submissions); err != nil {
		return nil, err
	}

	solved := make(map[string]bool)
	byDay := make(map[string]int)
	for _, sub := range submissions {
		byDay[time.Unix(sub.CreationTimeSeconds, 0).UTC().Format("2006-01-02")]++
		if sub.Verdict == "OK" && sub.Problem.ContestID != 0 && sub.Problem.Index != "" {
			solved[strconv.Itoa(sub.Problem.ContestID)+"-"+sub.Problem.Index] = true
		}
	}
	snapshot.TotalSolved = len(solved)
	snapshot.SubmissionsByDay = byDay

	return snapshot, nil
}

// FetchUpcomingContests lists contests in the BEFORE phase.
func (c *CodeforcesClient) FetchUpcomingContests(ctx context.Context) ([]ContestInfo, error) {
	var list []struct {
		ID               int    `json:"id"`
		Name             string `json:"name"`
		Phase            string `json:"phase"`
		StartTimeSeconds int64  `json:"startTimeSeconds"`
		DurationSeconds  int64  `json:"durationSeconds"`
	}
	if err := c.getJSON(ctx, "contest.list", nil, &list); err != nil {
		return nil, err
	}

	var contests []ContestInfo
	for _, entry := range list {
		if entry.Phase != "BEFORE" {
			continue
		}
		contests = append(contests, ContestInfo{
			Platform: PlatformCodeforces,
			Key:      strconv.Itoa(entry.ID),
			Name:     entry.Name,
			URL:      fmt.Sprintf("https://codeforces.com/contests/%d", entry.ID),
			StartsAt: time.Unix(entry.StartTimeSeconds, 0).UTC(),
			Duration: time.Duration(entry.DurationSeconds) * time.Second,
		})
	}
	return contests, nil
}
