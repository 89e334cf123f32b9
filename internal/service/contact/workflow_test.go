package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validForm = Form{
	Name:    "Ada Lovelace",
	Email:   "ada@example.com",
	Subject: "Engine notes",
	Message: "I have some thoughts on the analytical engine.",
}

var owner = Recipient{Name: "Site Owner", Email: "owner@example.com"}

// fakeRelay records every call and answers with err.
type fakeRelay struct {
	mu    sync.Mutex
	calls []TemplateParams
	err   error
}

func (r *fakeRelay) Send(_ context.Context, p TemplateParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, p)
	return r.err
}

func (r *fakeRelay) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// timers captures scheduled dismissals so tests can fire them on demand.
type timers struct {
	mu        sync.Mutex
	durations []time.Duration
	funcs     []func()
}

func (tm *timers) afterFunc(d time.Duration, f func()) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.durations = append(tm.durations, d)
	tm.funcs = append(tm.funcs, f)
}

func (tm *timers) fireAll() {
	tm.mu.Lock()
	fs := append([]func(){}, tm.funcs...)
	tm.mu.Unlock()
	for _, f := range fs {
		f()
	}
}

func newTestPage(f Form) (*Page, *timers) {
	tm := &timers{}
	return NewPage(f, WithAfterFunc(tm.afterFunc)), tm
}

func TestSubmit_Success(t *testing.T) {
	page, tm := newTestPage(validForm)
	relay := &fakeRelay{}
	wf := NewWorkflow(page, relay, owner)

	before := page.State()
	assert.True(t, before.SubmitEnabled)
	assert.Equal(t, SubmitLabel, before.SubmitLabel)

	outcome, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())

	require.Equal(t, 1, relay.callCount())
	assert.Equal(t, TemplateParams{
		UserName:    validForm.Name,
		UserEmail:   validForm.Email,
		UserSubject: validForm.Subject,
		UserMessage: validForm.Message,
		ToName:      owner.Name,
		ToEmail:     owner.Email,
		ReplyTo:     validForm.Email,
	}, relay.calls[0])

	after := page.State()
	assert.Equal(t, Form{}, after.Values)
	assert.True(t, after.SubmitEnabled)
	assert.Equal(t, SubmitLabel, after.SubmitLabel)
	assert.Empty(t, after.Errors)
	assert.True(t, after.Regions[NotificationSuccess].Visible)
	assert.Equal(t, SuccessMessage, after.Regions[NotificationSuccess].Message)
	assert.Equal(t, StateIdle, wf.State())

	require.Equal(t, []time.Duration{5 * time.Second}, tm.durations)
	tm.fireAll()
	assert.False(t, page.State().Regions[NotificationSuccess].Visible)
}

func TestSubmit_Failure(t *testing.T) {
	page, tm := newTestPage(validForm)
	relay := &fakeRelay{err: errors.New("quota exceeded")}
	wf := NewWorkflow(page, relay, owner)

	assert.False(t, page.HasRegion(NotificationError))

	outcome, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)
	assert.False(t, outcome.Succeeded())
	assert.EqualError(t, outcome.Err, "quota exceeded")

	state := page.State()
	assert.Equal(t, validForm, state.Values)
	assert.True(t, state.SubmitEnabled)
	assert.Equal(t, SubmitLabel, state.SubmitLabel)

	assert.True(t, page.HasRegion(NotificationError))
	region := state.Regions[NotificationError]
	assert.True(t, region.Visible)
	assert.Equal(t, FailureMessage, region.Message)
	assert.NotContains(t, region.Message, "quota")
	assert.False(t, state.Regions[NotificationSuccess].Visible)

	require.Equal(t, []time.Duration{8 * time.Second}, tm.durations)
	tm.fireAll()
	assert.False(t, page.State().Regions[NotificationError].Visible)
}

func TestSubmit_FailureAllowsResubmitOfSameData(t *testing.T) {
	page, _ := newTestPage(validForm)
	relay := &fakeRelay{err: errors.New("network down")}
	wf := NewWorkflow(page, relay, owner)

	_, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)

	relay.err = nil
	outcome, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, 2, relay.callCount())
	assert.Equal(t, relay.calls[0], relay.calls[1])
}

func TestSubmit_InvalidNeverCallsRelay(t *testing.T) {
	page, tm := newTestPage(Form{
		Name:    "Ada",
		Email:   "ada@example",
		Subject: "Hi",
		Message: "A message long enough",
	})
	relay := &fakeRelay{}
	wf := NewWorkflow(page, relay, owner)

	outcome, err := wf.HandleSubmit(context.Background())

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, FieldErrors{
		FieldEmail:   "Please enter a valid email address",
		FieldSubject: "Subject must be at least 3 characters",
	}, fieldErrs)
	assert.True(t, outcome.Succeeded(), "no relay outcome for an invalid form")

	assert.Equal(t, 0, relay.callCount())
	state := page.State()
	assert.Equal(t, map[Field]string(fieldErrs), state.Errors)
	assert.Equal(t, map[Field]bool{FieldEmail: true, FieldSubject: true}, state.Invalid)
	assert.True(t, state.SubmitEnabled)
	assert.Empty(t, state.Notifications)
	assert.Empty(t, tm.durations)
	assert.Equal(t, StateIdle, wf.State())
}

func TestSubmit_ClearsStaleErrorsFirst(t *testing.T) {
	page, _ := newTestPage(validForm)
	page.SetFieldError(FieldName, "Name is required")
	page.SetFieldError(FieldMessage, "Message is required")
	wf := NewWorkflow(page, &fakeRelay{}, owner)

	_, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page.State().Errors)
}

func TestSubmit_TrimsValues(t *testing.T) {
	page, _ := newTestPage(Form{
		Name:    "  Ada  ",
		Email:   " ada@example.com ",
		Subject: "\tEngine notes\n",
		Message: "  I have some thoughts.  ",
	})
	relay := &fakeRelay{}
	wf := NewWorkflow(page, relay, owner)

	_, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, relay.callCount())
	assert.Equal(t, "Ada", relay.calls[0].UserName)
	assert.Equal(t, "ada@example.com", relay.calls[0].ReplyTo)
	assert.Equal(t, "Engine notes", relay.calls[0].UserSubject)
	assert.Equal(t, "I have some thoughts.", relay.calls[0].UserMessage)
}

// blockingRelay holds Send until release is closed and reports what the UI
// looked like while the call was in flight.
type blockingRelay struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRelay) Send(ctx context.Context, _ TemplateParams) error {
	close(r.entered)
	select {
	case <-r.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestSubmit_OneInFlight(t *testing.T) {
	page, _ := newTestPage(validForm)
	relay := &blockingRelay{entered: make(chan struct{}), release: make(chan struct{})}
	wf := NewWorkflow(page, relay, owner)

	done := make(chan error, 1)
	go func() {
		_, err := wf.HandleSubmit(context.Background())
		done <- err
	}()

	<-relay.entered
	assert.Equal(t, StateSubmitting, wf.State())
	busy := page.State()
	assert.False(t, busy.SubmitEnabled)
	assert.Equal(t, SubmitBusyLabel, busy.SubmitLabel)

	_, err := wf.HandleSubmit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(relay.release)
	require.NoError(t, <-done)

	assert.True(t, page.State().SubmitEnabled)
	assert.Equal(t, StateIdle, wf.State())
}

func TestSubmit_RelayTimeoutIsFailure(t *testing.T) {
	page, _ := newTestPage(validForm)
	relay := &blockingRelay{entered: make(chan struct{}), release: make(chan struct{})}
	wf := NewWorkflow(page, relay, owner, WithRelayTimeout(20*time.Millisecond))

	outcome, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)

	state := page.State()
	assert.True(t, state.SubmitEnabled)
	assert.True(t, state.Regions[NotificationError].Visible)
	assert.Equal(t, validForm, state.Values)
}

func TestSubmit_RelayPanicReleasesControl(t *testing.T) {
	page, _ := newTestPage(validForm)
	relay := RelayFunc(func(context.Context, TemplateParams) error {
		panic("template exploded")
	})
	wf := NewWorkflow(page, relay, owner)

	outcome, err := wf.HandleSubmit(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, outcome.Err, ErrRelayPanic)

	state := page.State()
	assert.True(t, state.SubmitEnabled)
	assert.Equal(t, SubmitLabel, state.SubmitLabel)

	// the busy marker is released too
	_, err = wf.HandleSubmit(context.Background())
	assert.NotErrorIs(t, err, ErrSubmitInProgress)
}

func TestValidateField(t *testing.T) {
	page, _ := newTestPage(Form{Name: "A", Email: "ada@example.com"})
	wf := NewWorkflow(page, &fakeRelay{}, owner)

	fe := wf.ValidateField(FieldName)
	require.NotNil(t, fe)
	assert.Equal(t, "Name must be at least 2 characters", page.State().Errors[FieldName])

	assert.Nil(t, wf.ValidateField(FieldEmail))
	assert.NotContains(t, page.State().Errors, FieldEmail)

	// a now-valid value does not clear on blur; editing does
	page.SetFieldValue(FieldName, "Ada")
	assert.Nil(t, wf.ValidateField(FieldName))
	assert.Contains(t, page.State().Errors, FieldName)
}

func TestClearFieldError_OnlyThatField(t *testing.T) {
	page, _ := newTestPage(Form{})
	wf := NewWorkflow(page, &fakeRelay{}, owner)

	_, err := wf.HandleSubmit(context.Background())
	require.Error(t, err)
	require.Len(t, page.State().Errors, 4)

	wf.ClearFieldError(FieldEmail)

	state := page.State()
	assert.NotContains(t, state.Errors, FieldEmail)
	assert.NotContains(t, state.Invalid, FieldEmail)
	assert.Len(t, state.Errors, 3)
	assert.Equal(t, "Name is required", state.Errors[FieldName])
	assert.Equal(t, "Subject is required", state.Errors[FieldSubject])
	assert.Equal(t, "Message is required", state.Errors[FieldMessage])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "validating", StateValidating.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "state(9)", State(9).String())
}
