// Package auth performs the auditor credential check. It compares plaintext
// values against a fixed allow-list and is not an access-control boundary.
package auth

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vbonduro/aclaudit/internal/catalog"
)

// DefaultPassword is the shared auditor password.
const DefaultPassword = "ACL101"

// ErrInvalidCredentials is returned for any unknown name or wrong password.
var ErrInvalidCredentials = errors.New("invalid auditor name or password")

// InvalidCredentialsMessage is the inline error shown on the login form.
const InvalidCredentialsMessage = "Invalid auditor name or password."

type Checker struct {
	password string
}

func NewChecker(password string) *Checker {
	if password == "" {
		password = DefaultPassword
	}
	return &Checker{password: password}
}

// Authenticate returns the lowercased auditor name when name is allow-listed
// (case-insensitively) and password matches exactly.
func (c *Checker) Authenticate(name, password string) (string, error) {
	lower := strings.ToLower(name)
	if !Allowed(lower) || password != c.password {
		return "", ErrInvalidCredentials
	}
	return lower, nil
}

// Allowed reports whether name is one of the catalog's auditors.
func Allowed(name string) bool {
	_, found := slices.BinarySearch(catalog.Auditors(), strings.ToLower(name))
	return found
}

// DisplayName title-cases a stored auditor name, e.g. "callistus kyire" to
// "Callistus Kyire".
func DisplayName(name string) string {
	return cases.Title(language.English).String(name)
}
