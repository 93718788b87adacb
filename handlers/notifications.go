package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// NotificationResponse is the JSON shape of a notification record.
type NotificationResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Read    bool   `json:"read"`
	Created string `json:"created"`
}

// HandleNotificationList returns a handler that lists the acting user's
// notifications, newest first.
func HandleNotificationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		records, err := app.FindRecordsByFilter(
			"notifications",
			"user_id = {:user}",
			"-created", 0, 0,
			map[string]any{"user": actor.ID},
		)
		if err != nil {
			log.Printf("notifications: query failed for user %s: %v", actor.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		unread := 0
		notifications := make([]NotificationResponse, 0, len(records))
		for _, rec := range records {
			if !rec.GetBool("read") {
				unread++
			}
			notifications = append(notifications, NotificationResponse{
				ID:      rec.Id,
				Title:   rec.GetString("title"),
				Message: rec.GetString("message"),
				Type:    rec.GetString("type"),
				Read:    rec.GetBool("read"),
				Created: rec.GetDateTime("created").String(),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"notifications": notifications,
			"unread":        unread,
		})
	}
}

// HandleNotificationRead returns a handler that marks one notification read.
// Only the owning user may mark it.
func HandleNotificationRead(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		notifID := e.Request.PathValue("id")
		if notifID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing notification ID"})
		}

		rec, err := app.FindRecordById("notifications", notifID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Notification not found"})
		}
		if rec.GetString("user_id") != actor.ID {
			return e.JSON(http.StatusForbidden, map[string]string{"error": "Not your notification"})
		}

		rec.Set("read", true)
		if err := app.Save(rec); err != nil {
			log.Printf("notifications: failed to mark %s read: %v", notifID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "read"})
	}
}

// HandleNotificationReadAll returns a handler that marks all of the acting
// user's notifications read.
func HandleNotificationReadAll(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		records, err := app.FindRecordsByFilter(
			"notifications",
			"user_id = {:user} && read = false",
			"", 0, 0,
			map[string]any{"user": actor.ID},
		)
		if err != nil {
			log.Printf("notifications: query failed for user %s: %v", actor.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		for _, rec := range records {
			rec.Set("read", true)
			if err := app.Save(rec); err != nil {
				log.Printf("notifications: failed to mark %s read: %v", rec.Id, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"status": "read", "count": len(records)})
	}
}
