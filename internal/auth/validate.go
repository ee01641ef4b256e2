package auth

import (
	"errors"
	"strings"
)

const minPasswordLen = 6

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// ValidateEmail checks the address for a plausible user@domain shape.
// Full RFC validation is deliberately out of scope.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.ContainsAny(email, " \t") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateRegistration checks a registration request's credentials.
func ValidateRegistration(email, password, confirm string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
