package handler

import (
	"net/http"
	"strings"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"
	"github.com/Negp05/twittor-listas/pkg/linkify"

	"github.com/gin-gonic/gin"
)

// searchLimit caps each side of a search result.
const searchLimit = 100

// SearchResponse bundles the tweet and user matches for a query.
type SearchResponse struct {
	Query  string               `json:"query"`
	Tweets []TweetResponse      `json:"tweets"`
	Users  []PublicUserResponse `json:"users"`
}

// Search godoc
// @Summary      Search tweets and users
// @Description  Case-insensitive substring search over tweet content, tweet author usernames and usernames.
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Search query"
// @Success      200  {object}  SearchResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /search [get]
func Search(c *gin.Context) {
	viewerID := c.GetUint("userID")
	q := strings.TrimSpace(c.Query("q"))

	response := SearchResponse{Query: q, Tweets: []TweetResponse{}, Users: []PublicUserResponse{}}
	if q == "" {
		c.JSON(http.StatusOK, response)
		return
	}
	pattern := "%" + strings.ToLower(q) + "%"

	var tweets []models.Tweet
	if err := database.DB.
		Joins("JOIN users ON users.id = tweets.author_id").
		Where("LOWER(tweets.content) LIKE ? OR LOWER(users.username) LIKE ?", pattern, pattern).
		Order("tweets.created_at DESC, tweets.id DESC").
		Limit(searchLimit).
		Find(&tweets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search tweets"})
		return
	}
	response.Tweets = buildTweetResponses(tweets, viewerID)

	var users []models.User
	if err := database.DB.
		Where("LOWER(username) LIKE ?", pattern).
		Limit(searchLimit / 2).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}
	for _, user := range users {
		response.Users = append(response.Users, buildPublicUserResponse(user, viewerID))
	}

	c.JSON(http.StatusOK, response)
}

// TweetsByTag godoc
// @Summary      Get tweets by hashtag
// @Description  Retrieves tweets containing the hashtag as a whole word, case-insensitive, newest first. The match rule is the same one the linkifier uses.
// @Tags         search
// @Produce      json
// @Param        tag path string true "Hashtag without the leading #"
// @Success      200  {array}  TweetResponse
// @Router       /tags/{tag} [get]
func TweetsByTag(c *gin.Context) {
	viewerID := c.GetUint("userID")
	tag := strings.ToLower(c.Param("tag"))

	// Substring prefilter in SQL, exact whole-word matching in Go so the
	// lookup rule stays identical to the render rule in pkg/linkify.
	var candidates []models.Tweet
	if err := database.DB.
		Where("LOWER(content) LIKE ?", "%#"+tag+"%").
		Order("created_at DESC, id DESC").
		Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tweets"})
		return
	}

	matches := []models.Tweet{}
	for _, tweet := range candidates {
		if linkify.HasTag(tweet.Content, tag) {
			matches = append(matches, tweet)
		}
	}

	c.JSON(http.StatusOK, buildTweetResponses(matches, viewerID))
}
