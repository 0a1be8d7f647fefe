package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// FollowResponse reports the state of the follow edge after the call, and
// whether this call changed it. Duplicate follows and missing unfollows are
// idempotent no-ops, so callers must look at Changed rather than the status code.
type FollowResponse struct {
	Following bool `json:"following"`
	Changed   bool `json:"changed"`
}

// RelationResponse describes the edges between the viewer and another user.
type RelationResponse struct {
	IsFollowing bool `json:"is_following"` // viewer -> target
	FollowsMe   bool `json:"follows_me"`   // target -> viewer
}

// endregion

// FollowUser godoc
// @Summary      Follow a user
// @Description  Creates a follow edge to the target user. Idempotent; following yourself is a no-op. Following is not a notified event.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  FollowResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{id}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID := c.GetUint("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	if viewerID == uint(targetUserID) {
		// Self-follow has no effect.
		c.JSON(http.StatusOK, FollowResponse{Following: false, Changed: false})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}

	follow := models.Follow{FollowerID: viewerID, FollowingID: target.ID}
	if err := database.DB.Create(&follow).Error; err != nil {
		// A concurrent duplicate loses the race on the unique pair index;
		// that is "already following", not an error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusOK, FollowResponse{Following: true, Changed: false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusOK, FollowResponse{Following: true, Changed: true})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the follow edge to the target user if present; no-op otherwise.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  FollowResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id}/unfollow [post]
func UnfollowUser(c *gin.Context) {
	viewerID := c.GetUint("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	result := database.DB.Where("follower_id = ? AND following_id = ?", viewerID, uint(targetUserID)).Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, FollowResponse{Following: false, Changed: result.RowsAffected > 0})
}

// GetRelation godoc
// @Summary      Get relation to a user
// @Description  Reports whether the viewer follows the target and vice versa.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  RelationResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id}/relation [get]
func GetRelation(c *gin.Context) {
	viewerID := c.GetUint("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	var isFollowing, followsMe int64
	database.DB.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", viewerID, uint(targetUserID)).Count(&isFollowing)
	database.DB.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", uint(targetUserID), viewerID).Count(&followsMe)

	c.JSON(http.StatusOK, RelationResponse{IsFollowing: isFollowing > 0, FollowsMe: followsMe > 0})
}

// GetFollowers godoc
// @Summary      List a user's followers
// @Description  Retrieves the users following the target user, newest edge first.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true   "Target User ID"
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PublicUserResponse]
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id}/followers [get]
func GetFollowers(c *gin.Context) {
	listRelatedUsers(c, "following_id", "follower_id")
}

// GetFollowing godoc
// @Summary      List who a user follows
// @Description  Retrieves the users the target user follows, newest edge first.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true   "Target User ID"
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PublicUserResponse]
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id}/following [get]
func GetFollowing(c *gin.Context) {
	listRelatedUsers(c, "follower_id", "following_id")
}

// listRelatedUsers pages over one side of the follow edge for the target
// user: matchColumn selects the edges, pickColumn names the user to return.
func listRelatedUsers(c *gin.Context, matchColumn, pickColumn string) {
	viewerID := c.GetUint("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pageParams(page, limit)

	query := database.DB.Model(&models.Follow{}).Where(matchColumn+" = ?", uint(targetUserID))

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count follows"})
		return
	}

	var follows []models.Follow
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve follows"})
		return
	}

	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		if pickColumn == "follower_id" {
			ids = append(ids, f.FollowerID)
		} else {
			ids = append(ids, f.FollowingID)
		}
	}

	var users []models.User
	if len(ids) > 0 {
		if err := database.DB.Find(&users, ids).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
			return
		}
	}

	userResponses := []PublicUserResponse{}
	for _, user := range users {
		userResponses = append(userResponses, buildPublicUserResponse(user, viewerID))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(userResponses, totalItems, page, limit))
}
