// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. Username and Email are globally unique.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Display handle, unique across accounts.
	Email        string    // Login identifier for the password flow and the OAuth match key.
	PasswordHash string    // bcrypt digest, or FederatedPasswordMarker for OAuth-created accounts.
	CreatedAt    time.Time // Timestamp of when this user account was created.
}

// IsFederated reports whether the account was created through an external provider
// and therefore cannot sign in with a local password.
func (u *User) IsFederated() bool {
	return u.PasswordHash == FederatedPasswordMarker
}
