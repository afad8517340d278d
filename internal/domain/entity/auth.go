package entity

// FederatedPasswordMarker is stored in place of a password hash for accounts
// created by an OAuth provider. It is not a valid bcrypt digest, so the local
// password check can never succeed against it.
const FederatedPasswordMarker = "google-oauth-user"
