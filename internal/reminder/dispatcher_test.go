package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MedicineReminder/internal/medicine"
)

func TestDispatch_FailureIsolation(t *testing.T) {
	groups := map[string][]*medicine.Medicine{
		"a@x.com": {eligibleMedicine("Aspirin", "100mg", "a@x.com", "09:00")},
		"b@y.com": {eligibleMedicine("Ibuprofen", "200mg", "b@y.com", "12:00")},
		"c@z.com": {eligibleMedicine("Vitamin C", "500mg", "c@z.com", "08:00")},
	}
	sender := &fakeSender{failFor: map[string]error{"b@y.com": errors.New("rate limit exceeded")}}
	dispatcher := NewDispatcher(NewContentGenerator(&fakeCompleter{response: "Nice work!"}), sender)

	summary := dispatcher.Dispatch(context.Background(), groups)

	assert.Equal(t, 2, summary.Sent)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "b@y.com", summary.Failed[0].Address)
	assert.Contains(t, summary.Failed[0].Reason, "rate limit exceeded")
	assert.Equal(t, len(groups), summary.Sent+len(summary.Failed))
}

func TestDispatch_ComposedBodyAndSingleSendPerGroup(t *testing.T) {
	groups := map[string][]*medicine.Medicine{
		"a@x.com": {
			eligibleMedicine("Aspirin", "100mg", "a@x.com", "09:00"),
			eligibleMedicine("Vitamin C", "500mg", "a@x.com", "09:00", "21:00"),
		},
	}
	sender := &fakeSender{}
	dispatcher := NewDispatcher(NewContentGenerator(&fakeCompleter{response: "Nice work!"}), sender)

	summary := dispatcher.Dispatch(context.Background(), groups)

	assert.Equal(t, 1, summary.Sent)
	sent := sender.sentTo()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@x.com", sent[0].To)
	assert.Equal(t, Subject, sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Aspirin")
	assert.Contains(t, sent[0].Body, "Vitamin C")
	assert.Contains(t, sent[0].Body, "Nice work!")
}

func TestDispatch_SendsFallbackWhenGenerationFails(t *testing.T) {
	groups := map[string][]*medicine.Medicine{
		"alice@x.com": {eligibleMedicine("Aspirin", "100mg", "alice@x.com", "09:00")},
	}
	sender := &fakeSender{}
	dispatcher := NewDispatcher(NewContentGenerator(&fakeCompleter{err: errors.New("timeout")}), sender)

	summary := dispatcher.Dispatch(context.Background(), groups)

	assert.Equal(t, 1, summary.Sent)
	sent := sender.sentTo()
	require.Len(t, sent, 1)
	// Label and first medicine are present, so the templated fallback is used.
	assert.Contains(t, sent[0].Body, "Keep up the great work with your Aspirin, alice!")
}

func TestRecipientLabel(t *testing.T) {
	assert.Equal(t, "alice", recipientLabel("alice@x.com"))
	assert.Equal(t, "no-at-sign", recipientLabel("no-at-sign"))
}
