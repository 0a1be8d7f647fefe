package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/hub"
	"github.com/Negp05/twittor-listas/internal/models"

	"github.com/gin-gonic/gin"
)

// notificationCap bounds how many notifications a single listing returns.
const notificationCap = 50

// region --- DTOs ---

// NotificationResponse defines the structure for a notification.
type NotificationResponse struct {
	ID            uint      `json:"id"`
	ActorID       uint      `json:"actor_id"`
	ActorUsername string    `json:"actor_username,omitempty"`
	Verb          string    `json:"verb"`
	TweetID       *uint     `json:"tweet_id,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// UnreadCountResponse reports how many notifications are still unread.
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// endregion

// ListNotifications godoc
// @Summary      List notifications
// @Description  Retrieves the user's notifications newest first, capped at 50. Listing does not mark anything read; use the read endpoint for that.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max items (1-50)" default(50)
// @Success      200  {array}  NotificationResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications [get]
func ListNotifications(c *gin.Context) {
	viewerID := c.GetUint("userID")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(notificationCap)))
	if err != nil || limit < 1 || limit > notificationCap {
		limit = notificationCap
	}

	var notifications []models.Notification
	if err := database.DB.Preload("Actor").
		Where("recipient_id = ?", viewerID).
		Order("created_at DESC, id DESC"). // equal timestamps break ties on id
		Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	responses := []NotificationResponse{}
	for _, n := range notifications {
		responses = append(responses, NotificationResponse{
			ID:            n.ID,
			ActorID:       n.ActorID,
			ActorUsername: n.Actor.Username,
			Verb:          n.Verb,
			TweetID:       n.TweetID,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetUnreadCount godoc
// @Summary      Count unread notifications
// @Description  Reports how many of the user's notifications are unread, without touching them.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UnreadCountResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/unread_count [get]
func GetUnreadCount(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var unread int64
	if err := database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", viewerID, false).
		Count(&unread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, UnreadCountResponse{Unread: unread})
}

// MarkAllRead godoc
// @Summary      Mark all notifications read
// @Description  Flips every unread notification of the user to read in one update.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64 "{"marked": 3}"
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/read [post]
func MarkAllRead(c *gin.Context) {
	viewerID := c.GetUint("userID")

	result := database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", viewerID, false).
		Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": result.RowsAffected})
}

// StreamNotifications godoc
// @Summary      Stream notifications
// @Description  Server-sent event stream of the user's incoming notifications.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {string} string "SSE stream"
// @Failure      401 {object} ErrorResponse
// @Router       /notifications/stream [get]
func StreamNotifications(c *gin.Context) {
	viewerID := c.GetUint("userID")

	client := make(hub.Client, 8)
	hub.GlobalHub.Subscribe(viewerID, client)
	defer hub.GlobalHub.Unsubscribe(viewerID, client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("notification", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
