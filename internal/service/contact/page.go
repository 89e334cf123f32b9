package contact

import (
	"sync"
	"time"
)

// Region is one notification area of the page.
type Region struct {
	Message string
	Visible bool
}

// PageState is a point-in-time copy of a Page.
type PageState struct {
	Values        Form                        `json:"values"`
	Errors        map[Field]string            `json:"errors,omitempty"`
	Invalid       map[Field]bool              `json:"-"`
	SubmitEnabled bool                        `json:"submit_enabled"`
	SubmitLabel   string                      `json:"submit_label"`
	Notifications []Notification              `json:"notifications,omitempty"`
	Regions       map[NotificationKind]Region `json:"-"`
}

// Page is an in-memory UI: it holds the form inputs, per-field error text,
// the submit control and the two notification regions. It renders nothing,
// which makes it the UI of choice for request handlers and tests.
type Page struct {
	mu sync.Mutex

	values  map[Field]string
	errors  map[Field]string
	invalid map[Field]bool

	submitEnabled bool
	submitLabel   string

	// The error region is created on first use.
	regions map[NotificationKind]*Region
	shown   []Notification

	afterFunc func(d time.Duration, f func())
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithAfterFunc replaces time.AfterFunc for scheduling notification dismissal.
func WithAfterFunc(fn func(d time.Duration, f func())) PageOption {
	return func(p *Page) { p.afterFunc = fn }
}

// NewPage returns a page whose inputs hold the values of f.
func NewPage(f Form, opts ...PageOption) *Page {
	p := &Page{
		values:        make(map[Field]string, len(Fields)),
		errors:        make(map[Field]string),
		invalid:       make(map[Field]bool),
		submitEnabled: true,
		submitLabel:   SubmitLabel,
		regions: map[NotificationKind]*Region{
			NotificationSuccess: {},
		},
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, field := range Fields {
		p.values[field] = f.Value(field)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetFieldValue replaces the input for f, as typing would.
func (p *Page) SetFieldValue(f Field, v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[f] = v
}

func (p *Page) FieldValue(f Field) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[f]
}

func (p *Page) SetFieldError(f Field, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if msg == "" {
		delete(p.errors, f)
		delete(p.invalid, f)
		return
	}
	p.errors[f] = msg
	p.invalid[f] = true
}

func (p *Page) SetSubmitBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitEnabled = !busy
	if busy {
		p.submitLabel = SubmitBusyLabel
	} else {
		p.submitLabel = SubmitLabel
	}
}

func (p *Page) ShowNotification(n Notification) {
	p.mu.Lock()
	r, ok := p.regions[n.Kind]
	if !ok {
		r = &Region{}
		p.regions[n.Kind] = r
	}
	r.Message = n.Message
	r.Visible = true
	p.shown = append(p.shown, n)
	after := p.afterFunc
	p.mu.Unlock()

	after(n.Duration, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		r.Visible = false
	})
}

// DismissNotification hides the region for kind, as the close button does.
func (p *Page) DismissNotification(kind NotificationKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.regions[kind]; ok {
		r.Visible = false
	}
}

func (p *Page) ResetFields() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range Fields {
		p.values[f] = ""
	}
}

// HasRegion reports whether the notification region for kind exists yet.
func (p *Page) HasRegion(kind NotificationKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.regions[kind]
	return ok
}

// State returns a copy of the page. Notifications lists every notification
// shown so far, in order.
func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := PageState{
		Values: Form{
			Name:    p.values[FieldName],
			Email:   p.values[FieldEmail],
			Subject: p.values[FieldSubject],
			Message: p.values[FieldMessage],
		},
		Errors:        make(map[Field]string, len(p.errors)),
		Invalid:       make(map[Field]bool, len(p.invalid)),
		SubmitEnabled: p.submitEnabled,
		SubmitLabel:   p.submitLabel,
		Notifications: append([]Notification(nil), p.shown...),
		Regions:       make(map[NotificationKind]Region, len(p.regions)),
	}
	for f, msg := range p.errors {
		s.Errors[f] = msg
	}
	for f, v := range p.invalid {
		s.Invalid[f] = v
	}
	for k, r := range p.regions {
		s.Regions[k] = *r
	}
	return s
}
