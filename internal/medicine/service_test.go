package medicine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFrequency(t *testing.T) {
	assert.Error(t, validateFrequency(nil), "empty frequency must be rejected")
	assert.Error(t, validateFrequency([]Frequency{{Time: "25:00"}}))
	assert.Error(t, validateFrequency([]Frequency{{Time: "09:60"}}))
	assert.Error(t, validateFrequency([]Frequency{{Time: "morning"}}))

	assert.NoError(t, validateFrequency([]Frequency{{Time: "09:00"}, {Time: "21:30"}}))
	assert.NoError(t, validateFrequency([]Frequency{{Time: "9:05"}}))
}

func TestValidatePreferences(t *testing.T) {
	assert.Error(t, validatePreferences(NotificationPreferences{
		Email: EmailPreferences{Enabled: true, Address: ""},
	}), "enabled notifications need an address")

	assert.Error(t, validatePreferences(NotificationPreferences{
		Email: EmailPreferences{Enabled: true, Address: "a@x.com", ReminderTime: "8 am"},
	}))

	assert.NoError(t, validatePreferences(NotificationPreferences{
		Email: EmailPreferences{Enabled: false},
	}))
	assert.NoError(t, validatePreferences(NotificationPreferences{
		Email: EmailPreferences{Enabled: true, Address: "a@x.com", ReminderTime: "08:00"},
	}))
}

func medicineWithDoses(taken, total int) *Medicine {
	frequency := make([]Frequency, total)
	for i := range frequency {
		frequency[i] = Frequency{Time: "09:00", Taken: i < taken}
	}
	return &Medicine{Name: "Med", Dosage: "1mg", Frequency: frequency, Active: true}
}

func TestSummarizeAdherence(t *testing.T) {
	summary, err := summarizeAdherence([]*Medicine{
		medicineWithDoses(1, 2), // 50%
		medicineWithDoses(2, 2), // 100%
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Medicines)
	assert.InDelta(t, 75.0, summary.MeanPercent, 0.001)
	assert.InDelta(t, 50.0, summary.MinPercent, 0.001)
	assert.InDelta(t, 100.0, summary.MaxPercent, 0.001)
}

func TestSummarizeAdherence_Empty(t *testing.T) {
	summary, err := summarizeAdherence(nil)
	require.NoError(t, err)
	assert.Equal(t, &AdherenceSummary{}, summary)
}

func TestSummarizeAdherence_SkipsRecordsWithoutDoses(t *testing.T) {
	noDoses := &Medicine{Name: "Odd", Dosage: "1mg", Active: true}
	summary, err := summarizeAdherence([]*Medicine{noDoses})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Medicines)
	assert.Zero(t, summary.MeanPercent)
}
