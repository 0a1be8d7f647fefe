package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// DraftInput defines the structure for saving a draft.
type DraftInput struct {
	Content string `json:"content" binding:"required,max=280" example:"my unfinished tweet"`
}

// DraftResponse defines the structure for a draft.
type DraftResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	TweetID   *uint     `json:"tweet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishResponse wraps the tweet created from a draft and whether this call
// published it.
type PublishResponse struct {
	Draft     DraftResponse  `json:"draft"`
	Tweet     *TweetResponse `json:"tweet,omitempty"`
	Published bool           `json:"published"` // false when the draft was already published
}

// endregion

// CreateDraft godoc
// @Summary      Save a draft
// @Description  Stores an unpublished tweet body for the current user.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body DraftInput true "Draft Info"
// @Success      201  {object}  DraftResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /drafts [post]
func CreateDraft(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input DraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := models.Draft{AuthorID: viewerID, Content: input.Content}
	if err := database.DB.Create(&draft).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusCreated, buildDraftResponse(draft))
}

// GetDrafts godoc
// @Summary      List own drafts
// @Description  Retrieves the current user's drafts, oldest first, published ones included.
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  DraftResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /drafts [get]
func GetDrafts(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var drafts []models.Draft
	if err := database.DB.Where("author_id = ?", viewerID).Order("created_at ASC, id ASC").Find(&drafts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve drafts"})
		return
	}

	responses := []DraftResponse{}
	for _, draft := range drafts {
		responses = append(responses, buildDraftResponse(draft))
	}
	c.JSON(http.StatusOK, responses)
}

// PublishDraft godoc
// @Summary      Publish a draft
// @Description  Turns the draft into a real tweet exactly once. Publishing an already-published draft is a no-op that returns the existing state.
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Draft ID"
// @Success      200  {object}  PublishResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Draft not found"
// @Router       /drafts/{id}/publish [post]
func PublishDraft(c *gin.Context) {
	viewerID := c.GetUint("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var draft models.Draft
	if err := database.DB.First(&draft, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}
	if draft.AuthorID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your draft"})
		return
	}

	if draft.Published {
		response := PublishResponse{Draft: buildDraftResponse(draft), Published: false}
		if draft.TweetID != nil {
			var tweet models.Tweet
			if err := database.DB.First(&tweet, *draft.TweetID).Error; err == nil {
				tr := buildTweetResponse(tweet, viewerID)
				response.Tweet = &tr
			}
		}
		c.JSON(http.StatusOK, response)
		return
	}

	var tweet models.Tweet
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		tweet = models.Tweet{AuthorID: viewerID, Content: draft.Content}
		if err := tx.Create(&tweet).Error; err != nil {
			return err
		}
		draft.Published = true
		draft.TweetID = &tweet.ID
		return tx.Save(&draft).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish draft"})
		return
	}

	tr := buildTweetResponse(tweet, viewerID)
	c.JSON(http.StatusOK, PublishResponse{Draft: buildDraftResponse(draft), Tweet: &tr, Published: true})
}

func buildDraftResponse(draft models.Draft) DraftResponse {
	return DraftResponse{
		ID:        draft.ID,
		Content:   draft.Content,
		Published: draft.Published,
		TweetID:   draft.TweetID,
		CreatedAt: draft.CreatedAt,
	}
}
