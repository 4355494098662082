package reminder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MedicineReminder/internal/medicine"
)

func triggerRequest(t *testing.T, handler *ReminderHandler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/cron/daily-reminders", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.TriggerDailyReminders(c))
	return rec
}

func TestTriggerDailyReminders_RejectsBadSecret(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")
	handler := NewReminderHandler(newTestService(&fakeStore{}, &fakeCompleter{}, &fakeSender{}))

	rec := triggerRequest(t, handler, "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = triggerRequest(t, handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTriggerDailyReminders_ReturnsSummary(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")
	store := &fakeStore{medicines: []*medicine.Medicine{
		eligibleMedicine("Aspirin", "100mg", "a@x.com", "09:00"),
	}}
	handler := NewReminderHandler(newTestService(store, &fakeCompleter{response: "Go!"}, &fakeSender{}))

	rec := triggerRequest(t, handler, "Bearer s3cret")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Sent)
	assert.Empty(t, summary.Failed)
}

func TestTriggerDailyReminders_StoreErrorReportedOnce(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")
	handler := NewReminderHandler(newTestService(&fakeStore{err: assert.AnError}, &fakeCompleter{}, &fakeSender{}))

	rec := triggerRequest(t, handler, "Bearer s3cret")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "medicine store unavailable")
}
