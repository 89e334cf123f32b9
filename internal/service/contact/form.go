package contact

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Field names one input of the contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists every form field in validation order.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ParseField maps a raw input name to a Field.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Form is one submission attempt.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Value returns the value held for field.
func (f Form) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// Normalize returns a copy with every value trimmed.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// FieldError is a single failed field rule.
type FieldError struct {
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// FieldErrors maps each invalid field to its message.
type FieldErrors map[Field]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for f := range e {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[Field(k)])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type rule struct {
	required string
	minLen   int
	pattern  *regexp.Regexp
	invalid  string
}

// RE2's \s is ASCII only; the class also excludes \v, U+0085, U+FEFF and
// every Unicode separator so no unicode.IsSpace rune slips through.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{85}\x{FEFF}@]+@[^\s\v\p{Z}\x{85}\x{FEFF}@]+\.[^\s\v\p{Z}\x{85}\x{FEFF}@]+$`)

var rules = map[Field]rule{
	FieldName: {
		required: "Name is required",
		minLen:   2,
		invalid:  "Name must be at least 2 characters",
	},
	FieldEmail: {
		required: "Email is required",
		pattern:  emailPattern,
		invalid:  "Please enter a valid email address",
	},
	FieldSubject: {
		required: "Subject is required",
		minLen:   3,
		invalid:  "Subject must be at least 3 characters",
	},
	FieldMessage: {
		required: "Message is required",
		minLen:   10,
		invalid:  "Message must be at least 10 characters",
	},
}

// Validate checks one field value after trimming it. It returns nil when the
// value passes or the field is unknown. Minimum lengths count runes, not
// UTF-16 units, so an emoji is one character.
func Validate(field Field, value string) *FieldError {
	r, ok := rules[field]
	if !ok {
		return nil
	}

	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return &FieldError{Field: field, Message: r.required}
	case r.minLen > 0 && utf8.RuneCountInString(value) < r.minLen:
		return &FieldError{Field: field, Message: r.invalid}
	case r.pattern != nil && !r.pattern.MatchString(value):
		return &FieldError{Field: field, Message: r.invalid}
	}
	return nil
}

// ValidateForm checks every field without stopping at the first failure.
// It returns nil when the form is valid.
func ValidateForm(f Form) FieldErrors {
	var errs FieldErrors
	for _, field := range Fields {
		if fe := Validate(field, f.Value(field)); fe != nil {
			if errs == nil {
				errs = make(FieldErrors, len(Fields))
			}
			errs[field] = fe.Message
		}
	}
	return errs
}
