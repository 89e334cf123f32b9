package contact

import (
	"fmt"
	"io"
	"sync"

	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
)

// terminalUI renders workflow feedback as lines of text.
type terminalUI struct {
	mu  sync.Mutex
	out io.Writer

	values map[contact.Field]string
	errors map[contact.Field]string
}

func newTerminalUI(out io.Writer, f contact.Form) *terminalUI {
	ui := &terminalUI{
		out:    out,
		values: make(map[contact.Field]string, len(contact.Fields)),
		errors: make(map[contact.Field]string),
	}
	for _, field := range contact.Fields {
		ui.values[field] = f.Value(field)
	}
	return ui
}

func (t *terminalUI) FieldValue(f contact.Field) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values[f]
}

func (t *terminalUI) SetFieldError(f contact.Field, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if msg == "" {
		delete(t.errors, f)
		return
	}
	t.errors[f] = msg
	fmt.Fprintf(t.out, "  ✗ %s: %s\n", f, msg)
}

func (t *terminalUI) SetSubmitBusy(busy bool) {
	if busy {
		fmt.Fprintln(t.out, contact.SubmitBusyLabel)
	}
}

// ShowNotification prints n once; a terminal has nothing to dismiss.
func (t *terminalUI) ShowNotification(n contact.Notification) {
	prefix := "✓"
	if n.Kind == contact.NotificationError {
		prefix = "✗"
	}
	fmt.Fprintf(t.out, "%s %s\n", prefix, n.Message)
}

func (t *terminalUI) ResetFields() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range contact.Fields {
		t.values[f] = ""
	}
}

func (t *terminalUI) fieldErrors() map[contact.Field]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[contact.Field]string, len(t.errors))
	for f, msg := range t.errors {
		out[f] = msg
	}
	return out
}
