package reminder

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/fx"
)

// ReminderScheduler fires the reminder job once a day when the wall clock
// matches the configured reminder time.
type ReminderScheduler struct {
	service *ReminderService
}

// NewReminderScheduler creates a new scheduler for daily reminders.
func NewReminderScheduler(service *ReminderService) *ReminderScheduler {
	return &ReminderScheduler{service: service}
}

func schedulerLocation() *time.Location {
	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("[WARN] Invalid TIMEZONE %q, falling back to local time: %v", tz, err)
		return time.Local
	}
	return loc
}

// StartScheduler starts the background goroutine that checks the clock every
// minute. The HH:mm comparison matches exactly one tick per day, so the job
// runs once daily without extra dedup state.
func (s *ReminderScheduler) StartScheduler(lc fx.Lifecycle) {
	reminderTime := os.Getenv("DEFAULT_REMINDER_TIME")
	if reminderTime == "" {
		reminderTime = "08:00"
	}
	loc := schedulerLocation()

	ticker := time.NewTicker(time.Minute)
	done := make(chan bool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Printf("Starting reminder scheduler (firing daily at %s)...", reminderTime)
			go func() {
				schedulerCtx := context.Background()
				for {
					select {
					case t := <-ticker.C:
						if t.In(loc).Format("15:04") != reminderTime {
							continue
						}
						if _, err := s.service.RunDailyReminders(schedulerCtx); err != nil {
							log.Printf("[ERROR] Scheduled reminder run failed: %v", err)
						}
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping reminder scheduler...")
			ticker.Stop()
			done <- true
			return nil
		},
	})
}
