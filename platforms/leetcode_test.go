package platforms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeetCodeTestClient(handler http.HandlerFunc) (*LeetCodeClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return &LeetCodeClient{BaseURL: server.URL, HTTPClient: server.Client()}, server
}

const leetcodeProfileFixture = `{
  "data": {
    "matchedUser": {
      "username": "tourist_fan",
      "profile": {"realName": "A Coder", "userAvatar": "https://cdn/avatar.png", "ranking": 12345},
      "submitStatsGlobal": {"acSubmissionNum": [
        {"difficulty": "All", "count": 150},
        {"difficulty": "Easy", "count": 80},
        {"difficulty": "Medium", "count": 55},
        {"difficulty": "Hard", "count": 15}
      ]},
      "userCalendar": {"submissionCalendar": "{\"1754006400\": 4, \"1754092800\": 2}"}
    },
    "userContestRanking": {"rating": 1688.42},
    "userContestRankingHistory": [
      {"attended": true, "rating": 1550.0},
      {"attended": true, "rating": 1802.17},
      {"attended": false, "rating": 1900.0},
      {"attended": true, "rating": 1688.42}
    ]
  }
}`

func TestLeetCodeFetchStats(t *testing.T) {
	client, server := newLeetCodeTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graphql/", r.URL.Path)
		require.Equal(t, "POST", r.Method)

		var req struct {
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "tourist_fan", req.Variables["username"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(leetcodeProfileFixture))
	})
	defer server.Close()

	snapshot, err := client.FetchStats(context.Background(), "tourist_fan")
	require.NoError(t, err)

	assert.Equal(t, "tourist_fan", snapshot.Username)
	assert.Equal(t, 150, snapshot.TotalSolved)
	assert.Equal(t, 80, snapshot.EasySolved)
	assert.Equal(t, 55, snapshot.MediumSolved)
	assert.Equal(t, 15, snapshot.HardSolved)

	require.NotNil(t, snapshot.RecentContestRating)
	assert.InDelta(t, 1688.42, *snapshot.RecentContestRating, 0.001)
	require.NotNil(t, snapshot.MaxContestRating)
	assert.InDelta(t, 1802.17, *snapshot.MaxContestRating, 0.001, "unattended contests must not count toward max")

	// 1754006400 and 1754092800 are consecutive UTC days in Aug 2025.
	assert.Equal(t, 4, snapshot.SubmissionsByDay["2025-08-01"])
	assert.Equal(t, 2, snapshot.SubmissionsByDay["2025-08-02"])
}

func TestLeetCodeFetchStatsUnknownUser(t *testing.T) {
	client, server := newLeetCodeTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"matchedUser": null}}`))
	})
	defer server.Close()

	_, err := client.FetchStats(context.Background(), "no_such_user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeetCodeFetchStatsNoContestHistory(t *testing.T) {
	client, server := newLeetCodeTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"matchedUser": {
					"username": "fresh",
					"profile": {},
					"submitStatsGlobal": {"acSubmissionNum": [{"difficulty": "All", "count": 3}]},
					"userCalendar": {"submissionCalendar": ""}
				},
				"userContestRanking": null,
				"userContestRankingHistory": null
			}
		}`))
	})
	defer server.Close()

	snapshot, err := client.FetchStats(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.TotalSolved)
	assert.Nil(t, snapshot.RecentContestRating)
	assert.Nil(t, snapshot.MaxContestRating)
	assert.Nil(t, snapshot.SubmissionsByDay)
}

func TestLeetCodeGraphqlErrorSurfaces(t *testing.T) {
	client, server := newLeetCodeTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": null, "errors": [{"message": "rate limited"}]}`))
	})
	defer server.Close()

	_, err := client.FetchStats(context.Background(), "whoever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestLeetCodeFetchUpcomingContests(t *testing.T) {
	client, server := newLeetCodeTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {"upcomingContests": [
				{"title": "Weekly Contest 412", "titleSlug": "weekly-contest-412", "startTime": 1756607400, "duration": 5400}
			]}
		}`))
	})
	defer server.Close()

	contests, err := client.FetchUpcomingContests(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 1)
	assert.Equal(t, PlatformLeetCode, contests[0].Platform)
	assert.Equal(t, "weekly-contest-412", contests[0].Key)
	assert.EqualValues(t, 5400, contests[0].Duration.Seconds())
}
