package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxTweetLen is the content bound for tweets, quotes and comments.
const maxTweetLen = 280

// exploreLimit caps the public firehose.
const exploreLimit = 100

// region --- DTOs ---

// TweetInput defines the structure for creating a tweet.
type TweetInput struct {
	Content  string `json:"content" binding:"required,max=280" example:"hello world #go"`
	ImageRef string `json:"image_ref" example:"tweets/9d2a.png"`
}

// CommentInput defines the structure for commenting on a tweet.
type CommentInput struct {
	Content string `json:"content" binding:"required,max=280" example:"nice one"`
}

// TweetResponse defines the structure for a tweet with its counts.
type TweetResponse struct {
	ID             uint      `json:"id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	ImageRef       string    `json:"image_ref,omitempty"`
	ParentID       *uint     `json:"parent_id,omitempty"`
	IsRetweet      bool      `json:"is_retweet"`
	LikeCount      int64     `json:"like_count"`
	CommentCount   int64     `json:"comment_count"`
	LikedByMe      bool      `json:"liked_by_me"`
	CreatedAt      time.Time `json:"created_at"`
}

// LikeResponse reports the like state after a toggle.
type LikeResponse struct {
	Liked     bool  `json:"liked"`
	Changed   bool  `json:"changed"`
	LikeCount int64 `json:"like_count"`
}

// RetweetResponse wraps the retweet with whether this call created it.
type RetweetResponse struct {
	Tweet   TweetResponse `json:"tweet"`
	Created bool          `json:"created"`
}

// CommentResponse defines the structure for a comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	TweetID   uint      `json:"tweet_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// endregion

// region --- Tweet Handlers ---

// CreateTweet godoc
// @Summary      Create a tweet
// @Description  Creates a plain tweet authored by the current user. Content is required and capped at 280 characters.
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TweetInput true "Tweet Info"
// @Success      201  {object}  TweetResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /tweets [post]
func CreateTweet(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input TweetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tweet := models.Tweet{
		AuthorID: viewerID,
		Content:  input.Content,
		ImageRef: input.ImageRef,
	}
	if err := database.DB.Create(&tweet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tweet"})
		return
	}

	c.JSON(http.StatusCreated, buildTweetResponse(tweet, viewerID))
}

// GetTimeline godoc
// @Summary      Get the home timeline
// @Description  Retrieves tweets authored by the current user and everyone they follow, newest first.
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[TweetResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /tweets/timeline [get]
func GetTimeline(c *gin.Context) {
	viewerID := c.GetUint("userID")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pageParams(page, limit)

	var followingIDs []uint
	database.DB.Model(&models.Follow{}).Where("follower_id = ?", viewerID).Pluck("following_id", &followingIDs)
	authorIDs := append(followingIDs, viewerID)

	query := database.DB.Model(&models.Tweet{}).Where("author_id IN ?", authorIDs)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tweets"})
		return
	}

	var tweets []models.Tweet
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&tweets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tweets"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(buildTweetResponses(tweets, viewerID), totalItems, page, limit))
}

// Explore godoc
// @Summary      Explore all tweets
// @Description  Retrieves the most recent tweets from everyone, capped at 100. No token required; with one, liked_by_me reflects the caller.
// @Tags         tweets
// @Produce      json
// @Success      200  {array}  TweetResponse
// @Router       /tweets/explore [get]
func Explore(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var tweets []models.Tweet
	if err := database.DB.Order("created_at DESC, id DESC").Limit(exploreLimit).Find(&tweets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tweets"})
		return
	}

	c.JSON(http.StatusOK, buildTweetResponses(tweets, viewerID))
}

// GetTweetByID godoc
// @Summary      Get a single tweet
// @Description  Retrieves one tweet with its counts. No token required; with one, liked_by_me reflects the caller.
// @Tags         tweets
// @Produce      json
// @Param        id path int true "Tweet ID"
// @Success      200  {object}  TweetResponse
// @Failure      404  {object}  ErrorResponse "Tweet not found"
// @Router       /tweets/{id} [get]
func GetTweetByID(c *gin.Context) {
	viewerID := c.GetUint("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var tweet models.Tweet
	if err := database.DB.First(&tweet, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}

	c.JSON(http.StatusOK, buildTweetResponse(tweet, viewerID))
}

// DeleteTweet godoc
// @Summary      Delete a tweet
// @Description  Deletes the author's own tweet. Children keep living with their parent reference cleared; likes and comments go with the tweet.
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tweet ID"
// @Success      200  {object}  map[string]string "{"message": "Tweet deleted"}"
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Tweet not found"
// @Router       /tweets/{id} [delete]
func DeleteTweet(c *gin.Context) {
	viewerID := c.GetUint("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var tweet models.Tweet
	if err := database.DB.First(&tweet, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}
	if tweet.AuthorID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete a tweet"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Retweets and quotes survive the original; they only lose the link.
		if err := tx.Model(&models.Tweet{}).Where("parent_id = ?", tweet.ID).Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Notification{}).Where("tweet_id = ?", tweet.ID).Update("tweet_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweet.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweet.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&tweet).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tweet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tweet deleted"})
}

// endregion

// region --- Interaction Handlers ---

// ToggleLike godoc
// @Summary      Toggle a like on a tweet
// @Description  Likes the tweet if not yet liked, otherwise removes the like. Only the like transition notifies the author; self-likes never do.
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tweet ID"
// @Success      200  {object}  LikeResponse
// @Failure      404  {object}  ErrorResponse "Tweet not found"
// @Router       /tweets/{id}/like [post]
func ToggleLike(c *gin.Context) {
	viewerID := c.GetUint("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var tweet models.Tweet
	if err := database.DB.First(&tweet, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}

	var (
		liked   bool
		changed bool
		notif   *models.Notification
	)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND tweet_id = ?", viewerID, tweet.ID).First(&existing).Error
		if err == nil {
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			liked, changed = false, true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like := models.Like{UserID: viewerID, TweetID: tweet.ID}
		if err := tx.Create(&like).Error; err != nil {
			// Lost a toggle race on the unique (user, tweet) pair: the like
			// already exists, report the state without erroring.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				liked, changed = true, false
				return nil
			}
			return err
		}
		liked, changed = true, true

		n, err := createNotification(tx, viewerID, tweet.AuthorID, models.VerbLiked, &tweet.ID)
		if err != nil {
			return err
		}
		notif = n
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}
	pushNotification(notif)

	var likeCount int64
	database.DB.Model(&models.Like{}).Where("tweet_id = ?", tweet.ID).Count(&likeCount)

	c.JSON(http.StatusOK, LikeResponse{Liked: liked, Changed: changed, LikeCount: likeCount})
}

// Retweet godoc
// @Summary      Retweet a tweet
// @Description  Creates a contentless reshare of the tweet. At most one pure retweet exists per (user, original); a duplicate call returns the existing one and notifies nobody.
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Original Tweet ID"
// @Success      200  {object}  RetweetResponse "Already retweeted"
// @Success      201  {object}  RetweetResponse
// @Failure      404  {object}  ErrorResponse "Tweet not found"
// @Router       /tweets/{id}/retweet [post]
func Retweet(c *gin.Context) {
	viewerID := c.GetUint("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var original models.Tweet
	if err := database.DB.First(&original, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}

	var existing models.Tweet
	err := database.DB.Where("author_id = ? AND parent_id = ? AND is_retweet = ?", viewerID, original.ID, true).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, RetweetResponse{Tweet: buildTweetResponse(existing, viewerID), Created: false})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retweet"})
		return
	}

	var (
		retweet models.Tweet
		notif   *models.Notification
	)
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		parentID := original.ID
		retweet = models.Tweet{
			AuthorID:  viewerID,
			Content:   "",
			ParentID:  &parentID,
			IsRetweet: true,
		}
		if err := tx.Create(&retweet).Error; err != nil {
			return err
		}
		n, err := createNotification(tx, viewerID, original.AuthorID, models.VerbRetweeted, &original.ID)
		if err != nil {
			return err
		}
		notif = n
		return nil
	})
	if txErr != nil {
		// Lost a race on the partial unique (author, parent) retweet index:
		// someone else's insert won, so report theirs. The rolled-back
		// transaction also dropped the would-be duplicate notification.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			if err := database.DB.Where("author_id = ? AND parent_id = ? AND is_retweet = ?", viewerID, original.ID, true).First(&existing).Error; err == nil {
				c.JSON(http.StatusOK, RetweetResponse{Tweet: buildTweetResponse(existing, viewerID), Created: false})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retweet"})
		return
	}
	pushNotification(notif)

	c.JSON(http.StatusCreated, RetweetResponse{Tweet: buildTweetResponse(retweet, viewerID), Created: true})
}

// Quote godoc
// @Summary      Quote a tweet
// @Description  Creates a new tweet with own commentary referencing the original. Unlike retweets, quotes are never deduplicated; every quote notifies the original author, self-quotes excepted.
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int        true "Original Tweet ID"
// @Param        input body TweetInput true "Quote Info"
// @Success      201  {object}  TweetResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tweet not found"
// @Router       /tweets/{id}/quote [post]
func Quote(c *gin.Context) {
	viewerID := c.GetUint("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var original models.Tweet
	if err := database.DB.First(&original, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}

	var input TweetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		quote models.Tweet
		notif *models.Notification
	)
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		parentID := original.ID
		quote = models.Tweet{
			AuthorID: viewerID,
			Content:  input.Content,
			ImageRef: input.ImageRef,
			ParentID: &parentID,
		}
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		n, err := createNotification(tx, viewerID, original.AuthorID, models.VerbQuoted, &original.ID)
		if err != nil {
			return err
		}
		notif = n
		return nil
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to quote"})
		return
	}
	pushNotification(notif)

	c.JSON(http.StatusCreated, buildTweetResponse(quote, viewerID))
}

// CreateComment godoc
// @Summary      Comment on a tweet
// @Description  Adds a comment. Comments are never deduplicated; every one notifies the tweet's author, self-comments excepted.
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Tweet ID"
// @Param        input body CommentInput true "Comment Info"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tweet not found"
// @Router       /tweets/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID := c.GetUint("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var tweet models.Tweet
	if err := database.DB.First(&tweet, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		comment models.Comment
		notif   *models.Notification
	)
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		comment = models.Comment{UserID: viewerID, TweetID: tweet.ID, Content: input.Content}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		n, err := createNotification(tx, viewerID, tweet.AuthorID, models.VerbCommented, &tweet.ID)
		if err != nil {
			return err
		}
		notif = n
		return nil
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to comment"})
		return
	}
	pushNotification(notif)

	c.JSON(http.StatusCreated, buildCommentResponse(comment))
}

// GetComments godoc
// @Summary      List a tweet's comments
// @Description  Retrieves the comments on a tweet in conversation order. No token required.
// @Tags         tweets
// @Produce      json
// @Param        id path int true "Tweet ID"
// @Success      200  {array}  CommentResponse
// @Failure      404  {object}  ErrorResponse "Tweet not found"
// @Router       /tweets/{id}/comments [get]
func GetComments(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var tweet models.Tweet
	if err := database.DB.First(&tweet, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
		return
	}

	var comments []models.Comment
	if err := database.DB.Where("tweet_id = ?", tweet.ID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	responses := []CommentResponse{}
	for _, comment := range comments {
		responses = append(responses, buildCommentResponse(comment))
	}
	c.JSON(http.StatusOK, responses)
}

// endregion

// region --- Helpers ---

func buildTweetResponse(tweet models.Tweet, viewerID uint) TweetResponse {
	// These counts can be optimized later if performance is an issue
	var likeCount, commentCount, likedByMe int64
	database.DB.Model(&models.Like{}).Where("tweet_id = ?", tweet.ID).Count(&likeCount)
	database.DB.Model(&models.Comment{}).Where("tweet_id = ?", tweet.ID).Count(&commentCount)
	database.DB.Model(&models.Like{}).Where("tweet_id = ? AND user_id = ?", tweet.ID, viewerID).Count(&likedByMe)

	var author models.User
	database.DB.First(&author, tweet.AuthorID)

	return TweetResponse{
		ID:             tweet.ID,
		AuthorID:       tweet.AuthorID,
		AuthorUsername: author.Username,
		Content:        tweet.Content,
		ImageRef:       tweet.ImageRef,
		ParentID:       tweet.ParentID,
		IsRetweet:      tweet.IsRetweet,
		LikeCount:      likeCount,
		CommentCount:   commentCount,
		LikedByMe:      likedByMe > 0,
		CreatedAt:      tweet.CreatedAt,
	}
}

func buildTweetResponses(tweets []models.Tweet, viewerID uint) []TweetResponse {
	responses := []TweetResponse{}
	for _, tweet := range tweets {
		responses = append(responses, buildTweetResponse(tweet, viewerID))
	}
	return responses
}

func buildCommentResponse(comment models.Comment) CommentResponse {
	var user models.User
	database.DB.First(&user, comment.UserID)

	return CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Username:  user.Username,
		TweetID:   comment.TweetID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// endregion
