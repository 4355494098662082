package reminder

import (
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"MedicineReminder/internal/config"
	"MedicineReminder/internal/medicine"
)

// maxConcurrentSends caps parallel recipient processing to stay within the
// completion and email providers' rate limits.
const maxConcurrentSends = 5

// Failure records one recipient the dispatcher could not deliver to.
type Failure struct {
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

// Summary is the result of one dispatch run.
type Summary struct {
	Sent   int       `json:"sent"`
	Failed []Failure `json:"failed"`
}

// Dispatcher sends one reminder email per recipient group. A failure for one
// address never stops the others; it is recorded in the summary instead.
type Dispatcher struct {
	generator *ContentGenerator
	sender    config.EmailSender
}

func NewDispatcher(generator *ContentGenerator, sender config.EmailSender) *Dispatcher {
	return &Dispatcher{generator: generator, sender: sender}
}

// recipientLabel derives a display label from an email address.
func recipientLabel(address string) string {
	if i := strings.Index(address, "@"); i > 0 {
		return address[:i]
	}
	return address
}

// Dispatch processes every group independently: generate a positive message,
// compose the email, send it. Group order is not significant.
func (d *Dispatcher) Dispatch(ctx context.Context, groups map[string][]*medicine.Medicine) Summary {
	summary := Summary{Failed: []Failure{}}

	var mu sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(maxConcurrentSends)

	for address, medicines := range groups {
		address, medicines := address, medicines
		eg.Go(func() error {
			gc := GeneratorContext{RecipientLabel: recipientLabel(address)}
			if len(medicines) > 0 {
				gc.PrimaryMedicineName = medicines[0].Name
			}

			positiveMessage := d.generator.Generate(ctx, gc)
			subject, body := Compose(address, medicines, positiveMessage)

			if _, err := d.sender.Send(ctx, address, subject, body); err != nil {
				log.Printf("[ERROR] Failed to send reminder to %s: %v", address, err)
				mu.Lock()
				summary.Failed = append(summary.Failed, Failure{Address: address, Reason: err.Error()})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			summary.Sent++
			mu.Unlock()
			return nil
		})
	}

	// Goroutines record failures in the summary instead of returning them.
	_ = eg.Wait()
	return summary
}
