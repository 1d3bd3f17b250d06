package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/PrayerWall/models"
)

type NotificationKind int

const (
	NotificationPrayedFor NotificationKind = iota
	NotificationCommented
)

type NotificationCreator interface {
	CreateNotification(ctx context.Context, notification models.Notification) error
}

type PushSender interface {
	SendNotificationToUser(ctx context.Context, userID int, payload NotificationPayload) error
}

// NotificationDispatcher writes in-app notifications addressed to a prayer
// request's owner and fans them out to the owner's devices.
type NotificationDispatcher struct {
	notifications NotificationCreator
	push          PushSender
}

// NewNotificationDispatcher builds a dispatcher. push may be nil.
func NewNotificationDispatcher(notifications NotificationCreator, push PushSender) *NotificationDispatcher {
	return &NotificationDispatcher{notifications: notifications, push: push}
}

// BuildNotificationMessage renders the notification text, truncated to fit the
// notification message column.
func BuildNotificationMessage(kind NotificationKind, actorName string, requestName string) string {
	var message string
	switch kind {
	case NotificationCommented:
		message = fmt.Sprintf("%s commented on your prayer request: %s", actorName, requestName)
	default:
		message = fmt.Sprintf("%s prayed for your request: %s", actorName, requestName)
	}
	return TruncateMessage(message)
}

// TruncateMessage cuts messages longer than NotificationMessageLimit characters down
// to the limit, ending in "...".
func TruncateMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= models.NotificationMessageLimit {
		return message
	}
	return string(runes[:models.NotificationMessageLimit-3]) + "..."
}

// NotifyRequestOwner creates one notification for the owner of request, sent by actor.
// It reports false without error when the request is missing, anonymous, or owned by
// the actor.
func (d *NotificationDispatcher) NotifyRequestOwner(
	ctx context.Context,
	request *models.PrayerRequest,
	actor models.UserProfile,
	kind NotificationKind,
) (bool, error) {
	if request == nil || request.Requester_ID == nil {
		return false, nil
	}
	recipientID := *request.Requester_ID
	if recipientID == actor.User_ID {
		return false, nil
	}

	message := BuildNotificationMessage(kind, actor.Display_Name, request.Name)

	notification := models.Notification{
		User_ID:   recipientID,
		Sender_ID: actor.User_ID,
		Message:   message,
	}
	if err := d.notifications.CreateNotification(ctx, notification); err != nil {
		return false, err
	}

	if d.push != nil {
		payload := NotificationPayload{
			Title: "Prayer Wall",
			Body:  message,
			Data: map[string]string{
				"type":            pushType(kind),
				"prayerRequestId": strconv.Itoa(request.Prayer_Request_ID),
			},
		}
		// Push delivery is best effort and runs off the request path.
		go func() {
			if err := d.push.SendNotificationToUser(context.Background(), recipientID, payload); err != nil {
				log.Printf("Failed to send push notification to user %d: %v", recipientID, err)
			}
		}()
	}

	return true, nil
}

func pushType(kind NotificationKind) string {
	if kind == NotificationCommented {
		return "request_commented"
	}
	return "request_prayed_for"
}
