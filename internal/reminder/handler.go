package reminder

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// ReminderHandler exposes the reminder job to an external cron trigger.
type ReminderHandler struct {
	service *ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(service *ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// TriggerDailyReminders runs the reminder job. The endpoint is meant for an
// external cron caller and is guarded by a shared secret instead of a user
// token.
func (h *ReminderHandler) TriggerDailyReminders(c echo.Context) error {
	secret := os.Getenv("CRON_SECRET")
	if secret == "" {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "CRON_SECRET is not configured"})
	}
	if c.Request().Header.Get("Authorization") != "Bearer "+secret {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing authorization token"})
	}

	summary, err := h.service.RunDailyReminders(context.Background())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}
