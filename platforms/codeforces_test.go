package platforms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodeforcesTestClient(mux *http.ServeMux) (*CodeforcesClient, *httptest.Server) {
	server := httptest.NewServer(mux)
	return &CodeforcesClient{BaseURL: server.URL, HTTPClient: server.Client()}, server
}

func TestCodeforcesFetchProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user.info", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tourist", r.URL.Query().Get("handles"))
		_, _ = w.Write([]byte(`{"status": "OK", "result": [
			{"handle": "tourist", "rating": 3822, "maxRating": 4009, "rank": "tourist", "avatar": "https://cdn/a.png"}
		]}`))
	})
	mux.HandleFunc("/user.status", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tourist", r.URL.Query().Get("handle"))
		// Two distinct solved problems; 1-A appears twice and one attempt failed.
		_, _ = w.Write([]byte(`{"status": "OK", "result": [
			{"verdict": "OK", "creationTimeSeconds": 1754006400, "problem": {"contestId": 1, "index": "A"}},
			{"verdict": "OK", "creationTimeSeconds": 1754010000, "problem": {"contestId": 1, "index": "A"}},
			{"verdict": "OK", "creationTimeSeconds": 1754092800, "problem": {"contestId": 2, "index": "B"}},
			{"verdict": "WRONG_ANSWER", "creationTimeSeconds": 1754092900, "problem": {"contestId": 3, "index": "C"}}
		]}`))
	})

	client, server := newCodeforcesTestClient(mux)
	defer server.Close()

	snapshot, err := client.FetchProfile(context.Background(), "tourist")
	require.NoError(t, err)

	assert.Equal(t, "tourist", snapshot.Handle)
	assert.Equal(t, 2, snapshot.TotalSolved)
	require.NotNil(t, snapshot.Rating)
	assert.Equal(t, 3822, *snapshot.Rating)
	require.NotNil(t, snapshot.MaxRating)
	assert.Equal(t, 4009, *snapshot.MaxRating)
	assert.Equal(t, 2, snapshot.SubmissionsByDay["2025-08-01"])
	assert.Equal(t, 2, snapshot.SubmissionsByDay["2025-08-02"])
}

func TestCodeforcesUnratedAccountKeepsNullRating(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user.info", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "result": [{"handle": "newbie", "rating": 0, "maxRating": 0}]}`))
	})
	mux.HandleFunc("/user.status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "result": []}`))
	})

	client, server := newCodeforcesTestClient(mux)
	defer server.Close()

	snapshot, err := client.FetchProfile(context.Background(), "newbie")
	require.NoError(t, err)
	assert.Nil(t, snapshot.Rating)
	assert.Nil(t, snapshot.MaxRating)
	assert.Zero(t, snapshot.TotalSolved)
}

func TestCodeforcesFailedStatusSurfacesComment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user.info", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "FAILED", "comment": "handles: User with handle ghost not found"}`))
	})

	client, server := newCodeforcesTestClient(mux)
	defer server.Close()

	_, err := client.FetchProfile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost not found")
}

func TestCodeforcesFetchUpcomingContests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contest.list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "result": [
			{"id": 1901, "name": "Codeforces Round 901", "phase": "BEFORE", "startTimeSeconds": 1756607400, "durationSeconds": 7200},
			{"id": 1900, "name": "Codeforces Round 900", "phase": "FINISHED", "startTimeSeconds": 1654000000, "durationSeconds": 7200}
		]}`))
	})

	client, server := newCodeforcesTestClient(mux)
	defer server.Close()

	contests, err := client.FetchUpcomingContests(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 1, "finished contests are filtered out")
	assert.Equal(t, "1901", contests[0].Key)
	assert.Equal(t, PlatformCodeforces, contests[0].Platform)
}
