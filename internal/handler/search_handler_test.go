package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTweetsAndUsers(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "golang_alice")
	_, bobToken := createUser(t, "bob")

	createTweet(t, router, aliceToken, "learning Golang today")
	createTweet(t, router, bobToken, "nothing to see here")

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=golang", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Tweets, 1)
	assert.Equal(t, "learning Golang today", resp.Tweets[0].Content)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "golang_alice", resp.Users[0].Username)
}

func TestSearchMatchesAuthorUsername(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "gopherina")
	_, bobToken := createUser(t, "bob")

	createTweet(t, router, aliceToken, "completely unrelated text")

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=gopherina", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	decodeJSON(t, w, &resp)
	assert.Len(t, resp.Tweets, 1)
}

func TestSearchEmptyQuery(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, "alice")

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	decodeJSON(t, w, &resp)
	assert.Empty(t, resp.Tweets)
	assert.Empty(t, resp.Users)
}

func TestTweetsByTag(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")

	createTweet(t, router, aliceToken, "shipping with #Go and #gin")
	createTweet(t, router, aliceToken, "thoughts on #golang")
	createTweet(t, router, aliceToken, "no tags at all")

	// Tag match is case-insensitive and whole-word: #Go must not match #golang.
	w := doRequest(t, router, http.MethodGet, "/api/v1/tags/go", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tweets []TweetResponse
	decodeJSON(t, w, &tweets)
	require.Len(t, tweets, 1)
	assert.Contains(t, tweets[0].Content, "#Go and")

	w = doRequest(t, router, http.MethodGet, "/api/v1/tags/golang", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &tweets)
	assert.Len(t, tweets, 1)
}
