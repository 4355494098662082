package medicine

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicineHandler handles HTTP requests for medicine records.
type MedicineHandler struct {
	service *MedicineService
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(service *MedicineService) *MedicineHandler {
	return &MedicineHandler{service: service}
}

// AddMedicineRequest represents the request to create a medicine.
type AddMedicineRequest struct {
	Name         string      `json:"name"`          // Medicine display name
	Dosage       string      `json:"dosage"`        // Dosage string, e.g. "500mg"
	Frequency    []Frequency `json:"frequency"`     // Daily dose times
	Notes        string      `json:"notes"`         // Optional free-form notes
	UserID       string      `json:"user_id"`       // Owner reference
	Email        string      `json:"email"`         // Notification address
	ReminderTime string      `json:"reminder_time"` // Preferred reminder time, defaults to 08:00
}

// UpdateEmailPreferences carries partial notification changes; Enabled is a
// pointer so "false" can be told apart from "not provided".
type UpdateEmailPreferences struct {
	Enabled      *bool  `json:"enabled"`
	Address      string `json:"address"`
	ReminderTime string `json:"reminder_time"`
}

type UpdateNotificationPreferences struct {
	Email UpdateEmailPreferences `json:"email"`
}

// UpdateMedicineRequest represents a partial update to a medicine.
type UpdateMedicineRequest struct {
	Name                    string                         `json:"name"`
	Dosage                  string                         `json:"dosage"`
	Frequency               []Frequency                    `json:"frequency"`
	Notes                   *string                        `json:"notes"`
	NotificationPreferences *UpdateNotificationPreferences `json:"notification_preferences"`
}

// ListMedicines returns all active medicines for a user.
func (h *MedicineHandler) ListMedicines(c echo.Context) error {
	medicines, err := h.service.ListMedicines(context.Background(), c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch medicines"})
	}
	if medicines == nil {
		medicines = []*Medicine{}
	}
	return c.JSON(http.StatusOK, medicines)
}

// AddMedicine creates a new medicine record.
func (h *MedicineHandler) AddMedicine(c echo.Context) error {
	var req AddMedicineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	m, err := h.service.AddMedicine(context.Background(), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMedicine applies a partial update to a medicine record.
func (h *MedicineHandler) UpdateMedicine(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid medicine ID format"})
	}

	var req UpdateMedicineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	m, err := h.service.UpdateMedicine(context.Background(), id, req)
	if err != nil {
		if err.Error() == "Medicine not found" {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMedicine soft-deletes a medicine record.
func (h *MedicineHandler) DeleteMedicine(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid medicine ID format"})
	}

	if err := h.service.DeleteMedicine(context.Background(), id); err != nil {
		if err.Error() == "Medicine not found" {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to deactivate medicine"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Medicine deactivated successfully"})
}

// Adherence returns the taken-dose summary for a user's active medicines.
func (h *MedicineHandler) Adherence(c echo.Context) error {
	summary, err := h.service.Adherence(context.Background(), c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute adherence"})
	}
	return c.JSON(http.StatusOK, summary)
}
