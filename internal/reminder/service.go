package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrStoreUnavailable marks a run that failed before any send was attempted
// because the medicine store could not be queried.
var ErrStoreUnavailable = errors.New("medicine store unavailable")

// ReminderService is the entry point of the daily reminder pipeline.
type ReminderService struct {
	grouper    *RecipientGrouper
	dispatcher *Dispatcher
}

func NewReminderService(grouper *RecipientGrouper, dispatcher *Dispatcher) *ReminderService {
	return &ReminderService{grouper: grouper, dispatcher: dispatcher}
}

// RunDailyReminders processes all eligible medicine records once: group by
// address, then dispatch one email per group. Safe to invoke repeatedly, but
// two runs in the same day send duplicate emails; no dedup state is kept.
// A store failure surfaces as a single error with no sends attempted.
func (s *ReminderService) RunDailyReminders(ctx context.Context) (*Summary, error) {
	log.Println("Starting daily reminders process...")

	groups, err := s.grouper.GroupEligibleRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if len(groups) == 0 {
		log.Println("No eligible medicines found, nothing to send")
		return &Summary{Failed: []Failure{}}, nil
	}

	summary := s.dispatcher.Dispatch(ctx, groups)
	log.Printf("Daily reminders processed: %d sent, %d failed", summary.Sent, len(summary.Failed))
	return &summary, nil
}
