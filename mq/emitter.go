package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"greenzest/models"
	"greenzest/notifications"
	"greenzest/rdx"
	"greenzest/utils"
)

const notificationChannel = "notification-events"

// Emit publishes a notification event to Redis. Delivery is best-effort:
// failures are logged and never surfaced to the request that triggered the
// notification.
func Emit(ctx context.Context, n models.Notification) {
	if n.NotifID == "" {
		n.NotifID = utils.GenerateRandomString(16)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("[Emit] Failed to marshal notification: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, notificationChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish notification to Redis: %v", err)
	}
}

// StartNotificationWorker consumes notification events, persists them and
// pushes them to any live websocket subscribers of the target user.
func StartNotificationWorker(hub *notifications.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, notificationChannel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] Listening for notification events...")

	for msg := range ch {
		var n models.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.Printf("[NotificationWorker] Failed to parse event: %v", err)
			continue
		}

		insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := notifications.Create(insertCtx, n)
		cancel()
		if err != nil {
			log.Printf("[NotificationWorker] Insert failed for user %s: %v", n.UserID, err)
			continue
		}

		hub.Push(n.UserID, []byte(msg.Payload))
	}
}
