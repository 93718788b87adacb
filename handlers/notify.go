package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// createNotification stores a notification record for one user.
func createNotification(app *pocketbase.PocketBase, userID, title, message, notifType string) error {
	col, err := app.FindCollectionByNameOrId("notifications")
	if err != nil {
		return fmt.Errorf("notifications collection not found: %w", err)
	}

	r := core.NewRecord(col)
	r.Set("user_id", userID)
	r.Set("title", title)
	r.Set("message", message)
	r.Set("type", notifType)
	r.Set("read", false)
	return app.Save(r)
}

// notifyAdmins fans a notification out to every admin user. A failure for
// one admin does not stop delivery to the rest; the first error is returned.
func notifyAdmins(app *pocketbase.PocketBase, title, message, notifType string) error {
	admins, err := app.FindRecordsByFilter(
		"user_roles",
		"role = 'admin'",
		"", 0, 0,
	)
	if err != nil {
		return fmt.Errorf("query admins: %w", err)
	}

	var firstErr error
	for _, admin := range admins {
		if err := createNotification(app, admin.GetString("user_id"), title, message, notifType); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
