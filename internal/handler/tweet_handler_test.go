package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"
)

func TestCreateTweetValidation(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, "alice")

	resp := createTweet(t, router, token, "hello world #go")
	assert.Equal(t, "hello world #go", resp.Content)
	assert.Equal(t, "alice", resp.AuthorUsername)
	assert.False(t, resp.IsRetweet)

	w := doRequest(t, router, http.MethodPost, "/api/v1/tweets", token, TweetInput{Content: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/tweets", token, TweetInput{Content: strings.Repeat("x", 281)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimelineShowsFollowedAndOwn(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	bob, bobToken := createUser(t, "bob")
	_, carolToken := createUser(t, "carol")

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bob.ID), aliceToken, nil)

	first := createTweet(t, router, bobToken, "from bob")
	second := createTweet(t, router, aliceToken, "from alice")
	createTweet(t, router, carolToken, "from carol, not followed")

	w := doRequest(t, router, http.MethodGet, "/api/v1/tweets/timeline", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedResponse[TweetResponse]
	decodeJSON(t, w, &resp)
	require.Equal(t, int64(2), resp.Meta.TotalItems)

	// Newest first, ties broken by id.
	assert.Equal(t, second.ID, resp.Data[0].ID)
	assert.Equal(t, first.ID, resp.Data[1].ID)
}

func TestExploreShowsEverything(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	createTweet(t, router, aliceToken, "one")
	createTweet(t, router, bobToken, "two")

	w := doRequest(t, router, http.MethodGet, "/api/v1/tweets/explore", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tweets []TweetResponse
	decodeJSON(t, w, &tweets)
	assert.Len(t, tweets, 2)
}

func TestPublicReadsWorkWithoutToken(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	tweet := createTweet(t, router, aliceToken, "open to everyone #public")
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/like", tweet.ID), bobToken, nil)
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/comments", tweet.ID), bobToken, CommentInput{Content: "hi"})

	w := doRequest(t, router, http.MethodGet, "/api/v1/tweets/explore", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", tweet.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var anon TweetResponse
	decodeJSON(t, w, &anon)
	assert.Equal(t, int64(1), anon.LikeCount)
	assert.False(t, anon.LikedByMe)

	// With a token the same endpoint fills in the viewer's like state.
	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", tweet.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var asBob TweetResponse
	decodeJSON(t, w, &asBob)
	assert.True(t, asBob.LikedByMe)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d/comments", tweet.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/tags/public", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tagged []TweetResponse
	decodeJSON(t, w, &tagged)
	assert.Len(t, tagged, 1)

	// Personalized and mutating routes still require a token.
	w = doRequest(t, router, http.MethodGet, "/api/v1/tweets/timeline", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doRequest(t, router, http.MethodPost, "/api/v1/tweets", "", TweetInput{Content: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleLike(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	tweet := createTweet(t, router, aliceToken, "like me")
	path := fmt.Sprintf("/api/v1/tweets/%d/like", tweet.ID)

	w := doRequest(t, router, http.MethodPost, path, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp LikeResponse
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Liked)
	assert.True(t, resp.Changed)
	assert.Equal(t, int64(1), resp.LikeCount)

	// Liking a liked tweet removes the like.
	w = doRequest(t, router, http.MethodPost, path, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Liked)
	assert.True(t, resp.Changed)
	assert.Equal(t, int64(0), resp.LikeCount)

	var likes int64
	database.DB.Model(&models.Like{}).Count(&likes)
	assert.Zero(t, likes)
}

func TestLikeNotifiesAuthorOnce(t *testing.T) {
	router := setupRouter(t)
	alice, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	tweet := createTweet(t, router, aliceToken, "hello")
	path := fmt.Sprintf("/api/v1/tweets/%d/like", tweet.ID)

	doRequest(t, router, http.MethodPost, path, bobToken, nil)

	var notifications []models.Notification
	database.DB.Where("recipient_id = ?", alice.ID).Find(&notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.VerbLiked, notifications[0].Verb)
	assert.False(t, notifications[0].Read)

	// Unlike does not notify.
	doRequest(t, router, http.MethodPost, path, bobToken, nil)
	var count int64
	database.DB.Model(&models.Notification{}).Where("recipient_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLikeOwnTweetDoesNotNotify(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")

	tweet := createTweet(t, router, aliceToken, "self like")
	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/like", tweet.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
}

func TestRetweetIsDeduplicated(t *testing.T) {
	router := setupRouter(t)
	alice, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	original := createTweet(t, router, aliceToken, "original")
	path := fmt.Sprintf("/api/v1/tweets/%d/retweet", original.ID)

	w := doRequest(t, router, http.MethodPost, path, bobToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp RetweetResponse
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Created)
	assert.True(t, resp.Tweet.IsRetweet)
	require.NotNil(t, resp.Tweet.ParentID)
	assert.Equal(t, original.ID, *resp.Tweet.ParentID)

	// Second retweet of the same tweet returns the existing one.
	w = doRequest(t, router, http.MethodPost, path, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Created)

	var retweets int64
	database.DB.Model(&models.Tweet{}).Where("is_retweet = ?", true).Count(&retweets)
	assert.Equal(t, int64(1), retweets)

	var notifications int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND verb = ?", alice.ID, models.VerbRetweeted).
		Count(&notifications)
	assert.Equal(t, int64(1), notifications)
}

func TestRetweetPairUniqueInSchema(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	bob, bobToken := createUser(t, "bob")

	original := createTweet(t, router, aliceToken, "original")
	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/retweet", original.ID), bobToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// The database itself rejects a second pure retweet of the same original,
	// so even two writers racing past the handler's check cannot both insert.
	parentID := original.ID
	dup := models.Tweet{AuthorID: bob.ID, ParentID: &parentID, IsRetweet: true}
	err := database.DB.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Quotes stay outside the constraint.
	quote := models.Tweet{AuthorID: bob.ID, ParentID: &parentID, Content: "my take"}
	assert.NoError(t, database.DB.Create(&quote).Error)
}

func TestQuoteAlwaysCreates(t *testing.T) {
	router := setupRouter(t)
	alice, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	original := createTweet(t, router, aliceToken, "original")
	path := fmt.Sprintf("/api/v1/tweets/%d/quote", original.ID)

	for i := 0; i < 2; i++ {
		w := doRequest(t, router, http.MethodPost, path, bobToken, TweetInput{Content: "take " + fmt.Sprint(i)})
		require.Equal(t, http.StatusCreated, w.Code)

		var quote TweetResponse
		decodeJSON(t, w, &quote)
		assert.False(t, quote.IsRetweet)
		require.NotNil(t, quote.ParentID)
		assert.Equal(t, original.ID, *quote.ParentID)
	}

	var quotes int64
	database.DB.Model(&models.Tweet{}).
		Where("parent_id = ? AND is_retweet = ?", original.ID, false).
		Count(&quotes)
	assert.Equal(t, int64(2), quotes)

	var notifications int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND verb = ?", alice.ID, models.VerbQuoted).
		Count(&notifications)
	assert.Equal(t, int64(2), notifications)
}

func TestComments(t *testing.T) {
	router := setupRouter(t)
	alice, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	tweet := createTweet(t, router, aliceToken, "discuss")
	path := fmt.Sprintf("/api/v1/tweets/%d/comments", tweet.ID)

	w := doRequest(t, router, http.MethodPost, path, bobToken, CommentInput{Content: "first"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPost, path, bobToken, CommentInput{Content: "second"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodGet, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []CommentResponse
	decodeJSON(t, w, &comments)
	require.Len(t, comments, 2)
	// Oldest first.
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)

	var notifications int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND verb = ?", alice.ID, models.VerbCommented).
		Count(&notifications)
	assert.Equal(t, int64(2), notifications)
}

func TestDeleteTweet(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	tweet := createTweet(t, router, aliceToken, "doomed")
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/like", tweet.ID), bobToken, nil)
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/tweets/%d/retweet", tweet.ID), bobToken, nil)

	// Only the author may delete.
	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/tweets/%d", tweet.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/tweets/%d", tweet.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tweets/%d", tweet.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The retweet survives with its parent reference cleared.
	var retweet models.Tweet
	require.NoError(t, database.DB.Where("is_retweet = ?", true).First(&retweet).Error)
	assert.Nil(t, retweet.ParentID)

	var likes int64
	database.DB.Model(&models.Like{}).Count(&likes)
	assert.Zero(t, likes)
}
