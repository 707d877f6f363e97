package platforms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const codechefProfileFixture = `<!DOCTYPE html>
<html><body>
<div class="rating-header">
  <div class="rating-number">1810?</div>
  <small>(Highest Rating 1835)</small>
</div>
<div class="rating-star">
  <span>&#9733;</span><span>&#9733;</span><span>&#9733;</span><span>&#9733;</span>
</div>
<section class="rating-data-section problems-solved">
  <h3>Total Problems Solved: 80</h3>
</section>
</body></html>`

func newCodechefTestClient(mux *http.ServeMux) (*CodechefClient, *httptest.Server) {
	server := httptest.NewServer(mux)
	return &CodechefClient{BaseURL: server.URL, HTTPClient: server.Client()}, server
}

func TestCodechefFetchProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/chef_user", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(codechefProfileFixture))
	})

	client, server := newCodechefTestClient(mux)
	defer server.Close()

	snapshot, err := client.FetchProfile(context.Background(), "chef_user")
	require.NoError(t, err)

	assert.Equal(t, 80, snapshot.ProblemsSolved)
	require.NotNil(t, snapshot.Rating)
	assert.Equal(t, 1810, *snapshot.Rating)
	require.NotNil(t, snapshot.HighestRating)
	assert.Equal(t, 1835, *snapshot.HighestRating)
	require.NotNil(t, snapshot.Stars)
	assert.Equal(t, "4★", *snapshot.Stars)
}

func TestCodechefProfileWithoutRatingWidgetIsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>CodeChef</h1></body></html>`))
	})

	client, server := newCodechefTestClient(mux)
	defer server.Close()

	_, err := client.FetchProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodechefHTTP404IsNotFound(t *testing.T) {
	client, server := newCodechefTestClient(http.NewServeMux())
	defer server.Close()

	_, err := client.FetchProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodechefFetchUpcomingContests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/list/contests/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"future_contests": [
				{"contest_code": "START150", "contest_name": "Starters 150", "contest_start_date_iso": "2026-09-03T14:30:00+05:30", "contest_duration": "120"}
			],
			"past_contests": []
		}`))
	})

	client, server := newCodechefTestClient(mux)
	defer server.Close()

	contests, err := client.FetchUpcomingContests(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 1)
	assert.Equal(t, "START150", contests[0].Key)
	assert.Equal(t, "Starters 150", contests[0].Name)
	assert.EqualValues(t, 120*60, contests[0].Duration.Seconds())
	assert.Equal(t, PlatformCodechef, contests[0].Platform)
}
