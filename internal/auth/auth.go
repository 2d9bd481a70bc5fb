// Package auth implements the login check over the credentials collection.
package auth

import (
	"errors"
	"fmt"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/codec"
)

// Role classifies a logged-in user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// adminUsername is the reserved login that is always admin-privileged.
const adminUsername = "admin"

var (
	ErrUnknownUser        = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialSource supplies stored encoded passwords by username.
type CredentialSource interface {
	Credential(username string) (string, bool)
}

// Authenticate checks username/password against the stored credentials and
// returns the user's role. It reads but never mutates.
func Authenticate(creds CredentialSource, username, password string) (Role, error) {
	enc, ok := creds.Credential(username)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}

	stored, err := codec.Decode(enc)
	if err != nil || stored != password {
		return "", ErrInvalidCredentials
	}

	if username == adminUsername {
		return RoleAdmin, nil
	}
	return RoleStaff, nil
}
