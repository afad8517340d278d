package service

import "context"

// OAuthUser is the provider's view of the signed-in user.
type OAuthUser struct {
	Email         string
	Name          string
	EmailVerified bool // set only when the provider vouches for Email
}

// OAuthService runs the server-side authorization-code flow against a provider.
type OAuthService interface {
	// AuthCodeURL builds the consent-page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for the provider's view of the user.
	Exchange(ctx context.Context, code string) (*OAuthUser, error)
}
