package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MedicineReminder/internal/medicine"
)

func TestGroupEligibleRecipients_FiltersIneligible(t *testing.T) {
	inactive := eligibleMedicine("Old Med", "10mg", "a@x.com", "09:00")
	inactive.Active = false

	disabled := eligibleMedicine("Quiet Med", "10mg", "b@y.com", "09:00")
	disabled.NotificationPreferences.Email.Enabled = false

	noAddress := eligibleMedicine("Lost Med", "10mg", "", "09:00")

	keep := eligibleMedicine("Aspirin", "100mg", "c@z.com", "09:00")

	store := &fakeStore{medicines: []*medicine.Medicine{inactive, disabled, noAddress, keep}}
	grouper := NewRecipientGrouper(store)

	groups, err := grouper.GroupEligibleRecipients(context.Background())
	require.NoError(t, err)

	require.Len(t, groups, 1)
	require.Len(t, groups["c@z.com"], 1)
	assert.Equal(t, "Aspirin", groups["c@z.com"][0].Name)
}

func TestGroupEligibleRecipients_PartitionsByAddress(t *testing.T) {
	store := &fakeStore{medicines: []*medicine.Medicine{
		eligibleMedicine("Aspirin", "100mg", "a@x.com", "09:00"),
		eligibleMedicine("Vitamin C", "500mg", "a@x.com", "09:00", "21:00"),
		eligibleMedicine("Ibuprofen", "200mg", "b@y.com", "12:00"),
	}}
	grouper := NewRecipientGrouper(store)

	groups, err := grouper.GroupEligibleRecipients(context.Background())
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Len(t, groups["a@x.com"], 2)
	assert.Len(t, groups["b@y.com"], 1)

	// Every eligible record lands in exactly one group.
	total := 0
	for _, medicines := range groups {
		total += len(medicines)
	}
	assert.Equal(t, 3, total)
}

func TestGroupEligibleRecipients_EmptyStore(t *testing.T) {
	grouper := NewRecipientGrouper(&fakeStore{})

	groups, err := grouper.GroupEligibleRecipients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupEligibleRecipients_StoreError(t *testing.T) {
	grouper := NewRecipientGrouper(&fakeStore{err: errors.New("connection refused")})

	groups, err := grouper.GroupEligibleRecipients(context.Background())
	assert.Error(t, err)
	assert.Nil(t, groups)
}
