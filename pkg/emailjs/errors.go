package emailjs

import (
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("emailjs: service id, template id and public key are required")

// ErrStatus is returned when EmailJS answers with anything other than 200.
type ErrStatus struct {
	Code int
	Body string
}

func (e ErrStatus) Error() string {
	return fmt.Sprintf("emailjs: unexpected status %d: %s", e.Code, e.Body)
}
