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

// region --- DTOs ---

// ListInput defines the structure for creating a list.
type ListInput struct {
	Name        string `json:"name" binding:"required,max=50" example:"gophers"`
	Description string `json:"description" binding:"max=255"`
	Private     bool   `json:"private"`
}

// ListMemberInput names the user to add to a list.
type ListMemberInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// ListResponse defines the structure for a list.
type ListResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Private      bool      `json:"private"`
	CreatorID    uint      `json:"creator_id"`
	MembersCount int64     `json:"members_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// MembershipResponse reports the membership state after an add or remove.
type MembershipResponse struct {
	Member  bool `json:"member"`
	Changed bool `json:"changed"`
}

// endregion

// CreateList godoc
// @Summary      Create a list
// @Description  Creates a named list of users owned by the current user.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ListInput true "List Info"
// @Success      201  {object}  ListResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /lists [post]
func CreateList(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input ListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := models.List{
		Name:        input.Name,
		Description: input.Description,
		Private:     input.Private,
		CreatorID:   viewerID,
	}
	if err := database.DB.Create(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
		return
	}

	c.JSON(http.StatusCreated, buildListResponse(list))
}

// GetMyLists godoc
// @Summary      Get own lists
// @Description  Retrieves the lists created by the current user.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /lists/mine [get]
func GetMyLists(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var lists []models.List
	if err := database.DB.Where("creator_id = ?", viewerID).Order("created_at DESC, id DESC").Find(&lists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lists"})
		return
	}

	responses := []ListResponse{}
	for _, list := range lists {
		responses = append(responses, buildListResponse(list))
	}
	c.JSON(http.StatusOK, responses)
}

// AddListMember godoc
// @Summary      Add a member to a list
// @Description  Adds a user to the list. Only the list's creator may change membership. Adding an existing member is a no-op.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int             true "List ID"
// @Param        input body ListMemberInput true "Member Info"
// @Success      200  {object}  MembershipResponse "Already a member"
// @Success      201  {object}  MembershipResponse
// @Failure      403  {object}  ErrorResponse "Not the list creator"
// @Failure      404  {object}  ErrorResponse "List or user not found"
// @Router       /lists/{id}/members [post]
func AddListMember(c *gin.Context) {
	viewerID := c.GetUint("userID")

	list, ok := loadOwnList(c, viewerID)
	if !ok {
		return
	}

	var input ListMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var member models.User
	if err := database.DB.First(&member, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Create(&models.ListMember{ListID: list.ID, UserID: member.ID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusOK, MembershipResponse{Member: true, Changed: false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusCreated, MembershipResponse{Member: true, Changed: true})
}

// RemoveListMember godoc
// @Summary      Remove a member from a list
// @Description  Removes a user from the list. Only the list's creator may change membership. Removing a non-member is a no-op.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "List ID"
// @Param        userID path int true "Member User ID"
// @Success      200  {object}  MembershipResponse
// @Failure      403  {object}  ErrorResponse "Not the list creator"
// @Failure      404  {object}  ErrorResponse "List not found"
// @Router       /lists/{id}/members/{userID} [delete]
func RemoveListMember(c *gin.Context) {
	viewerID := c.GetUint("userID")

	list, ok := loadOwnList(c, viewerID)
	if !ok {
		return
	}

	memberID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	result := database.DB.Where("list_id = ? AND user_id = ?", list.ID, uint(memberID)).Delete(&models.ListMember{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, MembershipResponse{Member: false, Changed: result.RowsAffected > 0})
}

// GetListMembers godoc
// @Summary      List the members of a list
// @Description  Retrieves the users belonging to the list. Private lists are visible to their creator only.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "List ID"
// @Success      200  {array}  PublicUserResponse
// @Failure      403  {object}  ErrorResponse "Private list"
// @Failure      404  {object}  ErrorResponse "List not found"
// @Router       /lists/{id}/members [get]
func GetListMembers(c *gin.Context) {
	viewerID := c.GetUint("userID")

	list, ok := loadVisibleList(c, viewerID)
	if !ok {
		return
	}

	memberIDs := listMemberIDs(list.ID)
	var members []models.User
	if len(memberIDs) > 0 {
		if err := database.DB.Find(&members, memberIDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
			return
		}
	}

	responses := []PublicUserResponse{}
	for _, member := range members {
		responses = append(responses, buildPublicUserResponse(member, viewerID))
	}
	c.JSON(http.StatusOK, responses)
}

// GetListFeed godoc
// @Summary      Get a list's feed
// @Description  Retrieves tweets authored by the list's current members, newest first. Private lists feed their creator only.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "List ID"
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[TweetResponse]
// @Failure      403  {object}  ErrorResponse "Private list"
// @Failure      404  {object}  ErrorResponse "List not found"
// @Router       /lists/{id}/feed [get]
func GetListFeed(c *gin.Context) {
	viewerID := c.GetUint("userID")

	list, ok := loadVisibleList(c, viewerID)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pageParams(page, limit)

	memberIDs := listMemberIDs(list.ID)
	if len(memberIDs) == 0 {
		c.JSON(http.StatusOK, NewPaginatedResponse([]TweetResponse{}, 0, page, limit))
		return
	}

	query := database.DB.Model(&models.Tweet{}).Where("author_id IN ?", memberIDs)

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

// region --- Helpers ---

// loadOwnList fetches the list from the id path param and enforces that the
// viewer created it. Writes the error response itself when it returns false.
func loadOwnList(c *gin.Context, viewerID uint) (models.List, bool) {
	var list models.List
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return list, false
	}
	if err := database.DB.First(&list, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return list, false
	}
	if list.CreatorID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the list creator can manage members"})
		return list, false
	}
	return list, true
}

// loadVisibleList fetches the list and enforces the privacy rule: a private
// list is only visible to its creator.
func loadVisibleList(c *gin.Context, viewerID uint) (models.List, bool) {
	var list models.List
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return list, false
	}
	if err := database.DB.First(&list, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return list, false
	}
	if list.Private && list.CreatorID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This list is private"})
		return list, false
	}
	return list, true
}

func listMemberIDs(listID uint) []uint {
	var ids []uint
	database.DB.Model(&models.ListMember{}).Where("list_id = ?", listID).Pluck("user_id", &ids)
	return ids
}

func buildListResponse(list models.List) ListResponse {
	var membersCount int64
	database.DB.Model(&models.ListMember{}).Where("list_id = ?", list.ID).Count(&membersCount)

	return ListResponse{
		ID:           list.ID,
		Name:         list.Name,
		Description:  list.Description,
		Private:      list.Private,
		CreatorID:    list.CreatorID,
		MembersCount: membersCount,
		CreatedAt:    list.CreatedAt,
	}
}

// endregion
