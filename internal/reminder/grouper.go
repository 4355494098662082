package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"MedicineReminder/internal/medicine"
)

const storeQueryTimeout = 30 * time.Second

// EligibleFinder is the slice of the medicine store the grouper needs.
type EligibleFinder interface {
	FindEligible(ctx context.Context) ([]*medicine.Medicine, error)
}

// RecipientGrouper partitions eligible medicine records by notification address.
type RecipientGrouper struct {
	store EligibleFinder
}

func NewRecipientGrouper(store EligibleFinder) *RecipientGrouper {
	return &RecipientGrouper{store: store}
}

// GroupEligibleRecipients queries the store for active records with email
// notifications enabled and groups them by address. An empty map is a normal
// result, not an error. Records that pass the store filter but carry no
// address are skipped with a warning.
func (g *RecipientGrouper) GroupEligibleRecipients(ctx context.Context) (map[string][]*medicine.Medicine, error) {
	ctx, cancel := context.WithTimeout(ctx, storeQueryTimeout)
	defer cancel()

	medicines, err := g.store.FindEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch eligible medicines: %w", err)
	}
	log.Printf("[DEBUG] Found %d active medicines with notifications enabled", len(medicines))

	groups := make(map[string][]*medicine.Medicine)
	for _, m := range medicines {
		if !m.Eligible() {
			if m.Active && m.NotificationPreferences.Email.Enabled {
				log.Printf("[WARN] Skipping medicine %q: notifications enabled but no address set", m.Name)
			}
			continue
		}
		address := m.NotificationPreferences.Email.Address
		groups[address] = append(groups[address], m)
	}

	log.Printf("[DEBUG] Grouped medicines for %d unique email addresses", len(groups))
	return groups, nil
}
