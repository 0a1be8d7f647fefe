package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// CollectionInput defines the structure for creating a collection.
type CollectionInput struct {
	Name        string `json:"name" binding:"required,max=100" example:"reading list"`
	Description string `json:"description"`
}

// CollectionTweetInput names the tweet to save into a collection.
type CollectionTweetInput struct {
	TweetID uint `json:"tweet_id" binding:"required"`
}

// CollectionResponse defines the structure for a collection.
type CollectionResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner_id"`
	TweetsCount int64     `json:"tweets_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CollectionDetailResponse is a collection with its saved tweets.
type CollectionDetailResponse struct {
	CollectionResponse
	Tweets []TweetResponse `json:"tweets"`
}

// endregion

// CreateCollection godoc
// @Summary      Create a collection
// @Description  Creates a private collection of tweets owned by the current user.
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CollectionInput true "Collection Info"
// @Success      201  {object}  CollectionResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /collections [post]
func CreateCollection(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input CollectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := models.Collection{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     viewerID,
	}
	if err := database.DB.Create(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	c.JSON(http.StatusCreated, buildCollectionResponse(collection))
}

// GetCollections godoc
// @Summary      Get own collections
// @Description  Retrieves the collections owned by the current user.
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  CollectionResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /collections [get]
func GetCollections(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var collections []models.Collection
	if err := database.DB.Where("owner_id = ?", viewerID).Order("created_at DESC, id DESC").Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve collections"})
		return
	}

	responses := []CollectionResponse{}
	for _, collection := range collections {
		responses = append(responses, buildCollectionResponse(collection))
	}
	c.JSON(http.StatusOK, responses)
}

// GetCollectionByID godoc
// @Summary      Get a collection with its tweets
// @Description  Retrieves one of the current user's collections and the tweets saved in it.
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Collection ID"
// @Success      200  {object}  CollectionDetailResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse "Collection not found"
// @Router       /collections/{id} [get]
func GetCollectionByID(c *gin.Context) {
	viewerID := c.GetUint("userID")

	collection, ok := loadOwnCollection(c, viewerID, true)
	if !ok {
		return
	}

	tweets := []TweetResponse{}
	for _, tweet := range collection.Tweets {
		if tweet != nil {
			tweets = append(tweets, buildTweetResponse(*tweet, viewerID))
		}
	}

	c.JSON(http.StatusOK, CollectionDetailResponse{
		CollectionResponse: buildCollectionResponse(collection),
		Tweets:             tweets,
	})
}

// DeleteCollection godoc
// @Summary      Delete a collection
// @Description  Deletes one of the current user's collections. Saved tweets themselves are untouched.
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Collection ID"
// @Success      200  {object}  map[string]string "{"message": "Collection deleted"}"
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse "Collection not found"
// @Router       /collections/{id} [delete]
func DeleteCollection(c *gin.Context) {
	viewerID := c.GetUint("userID")

	collection, ok := loadOwnCollection(c, viewerID, false)
	if !ok {
		return
	}

	if err := database.DB.Select("Tweets").Delete(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

// AddTweetToCollection godoc
// @Summary      Save a tweet into a collection
// @Description  Adds a tweet to one of the current user's collections. The add is a set union: saving an already-saved tweet is a no-op.
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                  true "Collection ID"
// @Param        input body CollectionTweetInput true "Tweet Info"
// @Success      200  {object}  CollectionResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse "Collection or tweet not found"
// @Router       /collections/{id}/tweets [post]
func AddTweetToCollection(c *gin.Context) {
	viewerID := c.GetUint("userID")

	collection, ok := loadOwnCollection(c, viewerID, false)
	if !ok {
		return
	}

	var input CollectionTweetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tweet models.Tweet
	if err := database.DB.First(&tweet, input.TweetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}

	// Append on the join table upserts, so a repeated save stays a no-op.
	if err := database.DB.Model(&collection).Association("Tweets").Append(&tweet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save tweet"})
		return
	}

	c.JSON(http.StatusOK, buildCollectionResponse(collection))
}

// region --- Helpers ---

// loadOwnCollection fetches the collection from the id path param and
// enforces ownership. Writes the error response itself when it returns false.
func loadOwnCollection(c *gin.Context, viewerID uint, withTweets bool) (models.Collection, bool) {
	var collection models.Collection
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
		return collection, false
	}

	query := database.DB
	if withTweets {
		query = query.Preload("Tweets")
	}
	if err := query.First(&collection, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return collection, false
	}
	if collection.OwnerID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your collection"})
		return collection, false
	}
	return collection, true
}

func buildCollectionResponse(collection models.Collection) CollectionResponse {
	membersCount := database.DB.Model(&collection).Association("Tweets").Count()

	return CollectionResponse{
		ID:          collection.ID,
		Name:        collection.Name,
		Description: collection.Description,
		OwnerID:     collection.OwnerID,
		TweetsCount: membersCount,
		CreatedAt:   collection.CreatedAt,
	}
}

// endregion
