package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Initial(t *testing.T) {
	page, _ := newTestPage(validForm)
	s := page.State()

	assert.Equal(t, validForm, s.Values)
	assert.True(t, s.SubmitEnabled)
	assert.Equal(t, SubmitLabel, s.SubmitLabel)
	assert.Empty(t, s.Errors)
	assert.True(t, page.HasRegion(NotificationSuccess))
	assert.False(t, page.HasRegion(NotificationError))
	assert.False(t, s.Regions[NotificationSuccess].Visible)
}

func TestPage_FieldErrors(t *testing.T) {
	page, _ := newTestPage(Form{})

	page.SetFieldError(FieldName, "Name is required")
	s := page.State()
	assert.Equal(t, "Name is required", s.Errors[FieldName])
	assert.True(t, s.Invalid[FieldName])

	page.SetFieldError(FieldName, "")
	s = page.State()
	assert.NotContains(t, s.Errors, FieldName)
	assert.NotContains(t, s.Invalid, FieldName)
}

func TestPage_SubmitBusy(t *testing.T) {
	page, _ := newTestPage(Form{})

	page.SetSubmitBusy(true)
	s := page.State()
	assert.False(t, s.SubmitEnabled)
	assert.Equal(t, SubmitBusyLabel, s.SubmitLabel)

	page.SetSubmitBusy(false)
	s = page.State()
	assert.True(t, s.SubmitEnabled)
	assert.Equal(t, SubmitLabel, s.SubmitLabel)
}

func TestPage_NotificationLifecycle(t *testing.T) {
	page, tm := newTestPage(Form{})

	page.ShowNotification(failureNotification())
	require.True(t, page.HasRegion(NotificationError))
	assert.True(t, page.State().Regions[NotificationError].Visible)

	page.DismissNotification(NotificationError)
	assert.False(t, page.State().Regions[NotificationError].Visible)

	// the region is reused, not created again
	page.ShowNotification(failureNotification())
	assert.True(t, page.State().Regions[NotificationError].Visible)
	assert.Len(t, page.State().Notifications, 2)

	assert.Equal(t, []time.Duration{FailureDisplay, FailureDisplay}, tm.durations)
	tm.fireAll()
	assert.False(t, page.State().Regions[NotificationError].Visible)
}

func TestPage_DismissMissingRegion(t *testing.T) {
	page, _ := newTestPage(Form{})
	assert.NotPanics(t, func() { page.DismissNotification(NotificationError) })
	assert.False(t, page.HasRegion(NotificationError))
}

func TestPage_StateIsACopy(t *testing.T) {
	page, _ := newTestPage(validForm)
	page.SetFieldError(FieldEmail, "Email is required")

	s := page.State()
	s.Errors[FieldEmail] = "changed"
	s.Values.Name = "changed"

	again := page.State()
	assert.Equal(t, "Email is required", again.Errors[FieldEmail])
	assert.Equal(t, validForm.Name, again.Values.Name)
}

func TestPage_ResetFields(t *testing.T) {
	page, _ := newTestPage(validForm)
	page.ResetFields()
	assert.Equal(t, Form{}, page.State().Values)
}

func TestNotification_DurationMs(t *testing.T) {
	assert.Equal(t, int64(5000), successNotification().DurationMs())
	assert.Equal(t, int64(8000), failureNotification().DurationMs())
}
