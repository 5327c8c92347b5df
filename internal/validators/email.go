package validators

import (
	"net/mail"
	"strings"
)

// IsEmailFormatValid accepts a bare address ("a@b.c"), not a display-name form.
func IsEmailFormatValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
