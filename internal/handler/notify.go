package handler

import (
	"github.com/Negp05/twittor-listas/internal/hub"
	"github.com/Negp05/twittor-listas/internal/models"

	"gorm.io/gorm"
)

// createNotification is the single entry point of the notification fanout.
// It appends an unread record to the recipient's log inside the caller's
// transaction, so the triggering mutation and its notification commit or roll
// back together. Self-actions (actor == recipient) produce no record at all.
// Returns the created row, or nil when the action was suppressed.
func createNotification(tx *gorm.DB, actorID, recipientID uint, verb string, tweetID *uint) (*models.Notification, error) {
	if actorID == recipientID {
		return nil, nil
	}
	n := models.Notification{
		ActorID:     actorID,
		RecipientID: recipientID,
		Verb:        verb,
		TweetID:     tweetID,
	}
	if err := tx.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// pushNotification forwards a committed notification to the recipient's live
// connections. Call it only after the owning transaction has committed.
func pushNotification(n *models.Notification) {
	if n == nil {
		return
	}
	hub.GlobalHub.Notify(n.RecipientID, hub.Event{
		Type: "notification",
		Payload: NotificationResponse{
			ID:        n.ID,
			ActorID:   n.ActorID,
			Verb:      n.Verb,
			TweetID:   n.TweetID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		},
	})
}
