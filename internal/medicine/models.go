package medicine

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frequency is one daily dose slot for a medicine.
type Frequency struct {
	Time  string `bson:"time" json:"time"`   // Dose time in 24-hour HH:mm format
	Taken bool   `bson:"taken" json:"taken"` // Whether this dose was marked taken today
}

// EmailPreferences controls reminder delivery for one medicine.
type EmailPreferences struct {
	Enabled      bool   `bson:"enabled" json:"enabled"`             // Whether email reminders are on
	Address      string `bson:"address" json:"address"`             // Destination address for reminders
	ReminderTime string `bson:"reminder_time" json:"reminder_time"` // Preferred reminder time (HH:mm)
}

// NotificationPreferences groups the per-channel settings. Email is the only
// channel today.
type NotificationPreferences struct {
	Email EmailPreferences `bson:"email" json:"email"`
}

// Medicine represents one medicine record owned by a user. Active is the
// soft-delete flag; inactive records drop out of lists and reminders but stay
// in the collection.
type Medicine struct {
	ID                      primitive.ObjectID      `bson:"_id,omitempty" json:"_id"`
	Name                    string                  `bson:"name" json:"name"`
	Dosage                  string                  `bson:"dosage" json:"dosage"`
	Frequency               []Frequency             `bson:"frequency" json:"frequency"`
	Notes                   string                  `bson:"notes" json:"notes"`
	UserID                  string                  `bson:"user_id" json:"user_id"`
	NotificationPreferences NotificationPreferences `bson:"notification_preferences" json:"notification_preferences"`
	Active                  bool                    `bson:"active" json:"active"`
	CreatedAt               time.Time               `bson:"created_at" json:"created_at"`
	UpdatedAt               time.Time               `bson:"updated_at" json:"updated_at"`
}

// Eligible reports whether this record should receive reminder emails.
func (m *Medicine) Eligible() bool {
	return m.Active && m.NotificationPreferences.Email.Enabled && m.NotificationPreferences.Email.Address != ""
}
