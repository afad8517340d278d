// Package google implements the server-side Google sign-in flow.
package google

import (
	"context"
	"strings"

	"notekeeper/config"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	googleendpoint "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// OAuthService handles Google OAuth infrastructure operations
type OAuthService struct {
	oauthConfig *oauth2.Config

	// userInfoEndpoint overrides the Google API base URL; empty means production.
	userInfoEndpoint string
}

// Option customises the service, mainly for tests.
type Option func(*OAuthService)

// WithEndpoints points the token exchange and the userinfo call at another host.
func WithEndpoints(endpoint oauth2.Endpoint, userInfoBaseURL string) Option {
	return func(s *OAuthService) {
		s.oauthConfig.Endpoint = endpoint
		s.userInfoEndpoint = userInfoBaseURL
	}
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config, opts ...Option) service.OAuthService {
	googleCfg := cfg.GoogleOAuth
	if googleCfg == nil {
		googleCfg = &config.GoogleOAuthConfig{}
	}

	s := &OAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURI,
			Scopes: []string{
				oauth2api.UserinfoProfileScope,
				oauth2api.UserinfoEmailScope,
			},
			Endpoint: googleendpoint.Endpoint,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AuthCodeURL builds the consent-page URL for the given state.
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// Exchange trades the authorization code for an access token and loads the
// signed-in user's profile with it.
func (s *OAuthService) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("missing authorization code")
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrOAuthFailed.WithDetails(err.Error()), "failed to exchange code for token")
	}

	opts := []option.ClientOption{option.WithHTTPClient(s.oauthConfig.Client(ctx, token))}
	if s.userInfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.userInfoEndpoint))
	}

	api, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create userinfo client")
	}

	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrOAuthFailed.WithDetails(err.Error()), "failed to get user info")
	}

	if info.Email == "" {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("profile has no email")
	}

	return &service.OAuthUser{
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.VerifiedEmail != nil && *info.VerifiedEmail,
	}, nil
}
