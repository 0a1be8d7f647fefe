package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"
)

func TestCollectionLifecycle(t *testing.T) {
	router := setupRouter(t)
	user, token := createUser(t, "alice")

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", token, CollectionInput{
		Name:        "reading list",
		Description: "tweets to revisit",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created CollectionResponse
	decodeJSON(t, w, &created)
	assert.Equal(t, "reading list", created.Name)
	assert.Equal(t, user.ID, created.OwnerID)
	assert.Zero(t, created.TweetsCount)

	w = doRequest(t, router, http.MethodGet, "/api/v1/collections", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var collections []CollectionResponse
	decodeJSON(t, w, &collections)
	require.Len(t, collections, 1)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/collections/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/collections", token, nil)
	decodeJSON(t, w, &collections)
	assert.Empty(t, collections)
}

func TestAddTweetToCollectionIsIdempotent(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	tweet := createTweet(t, router, bobToken, "worth saving")

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", aliceToken, CollectionInput{Name: "saved"})
	require.Equal(t, http.StatusCreated, w.Code)
	var collection CollectionResponse
	decodeJSON(t, w, &collection)

	path := fmt.Sprintf("/api/v1/collections/%d/tweets", collection.ID)

	w = doRequest(t, router, http.MethodPost, path, aliceToken, CollectionTweetInput{TweetID: tweet.ID})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &collection)
	assert.Equal(t, int64(1), collection.TweetsCount)

	// Saving the same tweet twice keeps a single entry.
	w = doRequest(t, router, http.MethodPost, path, aliceToken, CollectionTweetInput{TweetID: tweet.ID})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &collection)
	assert.Equal(t, int64(1), collection.TweetsCount)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/collections/%d", collection.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail CollectionDetailResponse
	decodeJSON(t, w, &detail)
	require.Len(t, detail.Tweets, 1)
	assert.Equal(t, tweet.ID, detail.Tweets[0].ID)
}

func TestCollectionOwnership(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", aliceToken, CollectionInput{Name: "mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	var collection CollectionResponse
	decodeJSON(t, w, &collection)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/collections/%d", collection.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/collections/%d", collection.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteCollectionKeepsTweets(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, "alice")

	tweet := createTweet(t, router, token, "stays around")

	w := doRequest(t, router, http.MethodPost, "/api/v1/collections", token, CollectionInput{Name: "temp"})
	require.Equal(t, http.StatusCreated, w.Code)
	var collection CollectionResponse
	decodeJSON(t, w, &collection)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/collections/%d/tweets", collection.ID), token, CollectionTweetInput{TweetID: tweet.ID})

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/collections/%d", collection.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var survivor models.Tweet
	assert.NoError(t, database.DB.First(&survivor, tweet.ID).Error)
}
