package reminder

import (
	"context"
	"sync"

	"MedicineReminder/internal/medicine"
)

// fakeStore returns a canned set of medicines or an error.
type fakeStore struct {
	medicines []*medicine.Medicine
	err       error
}

func (f *fakeStore) FindEligible(ctx context.Context) ([]*medicine.Medicine, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.medicines, nil
}

// fakeCompleter returns a canned completion or an error. Safe for concurrent
// use by the dispatcher.
type fakeCompleter struct {
	response string
	err      error

	mu    sync.Mutex
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

// fakeSender records sends and fails for configured addresses. Safe for the
// dispatcher's concurrent use.
type fakeSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	failFor map[string]error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return "", err
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Body: html})
	return "delivery-id", nil
}

func (f *fakeSender) sentTo() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentEmail, len(f.sent))
	copy(out, f.sent)
	return out
}

func eligibleMedicine(name, dosage, address string, times ...string) *medicine.Medicine {
	frequency := make([]medicine.Frequency, 0, len(times))
	for _, t := range times {
		frequency = append(frequency, medicine.Frequency{Time: t})
	}
	return &medicine.Medicine{
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
		UserID:    "user-1",
		NotificationPreferences: medicine.NotificationPreferences{
			Email: medicine.EmailPreferences{Enabled: true, Address: address, ReminderTime: "08:00"},
		},
		Active: true,
	}
}

func newTestService(store *fakeStore, completer *fakeCompleter, sender *fakeSender) *ReminderService {
	grouper := NewRecipientGrouper(store)
	dispatcher := NewDispatcher(NewContentGenerator(completer), sender)
	return NewReminderService(grouper, dispatcher)
}
