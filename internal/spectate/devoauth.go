package spectate

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// DevProvider is a deliberately stubbed-down descendant of the
// teacher's Google OAuth login (internal/auth.OAuthProvider): it wires
// a real oauth2.Config so the dependency has a genuine call site, but
// points at a local dev authorization server rather than a real
// identity provider, since spec.md never calls for one. GET
// /auth/dev issues a token directly instead of redirecting through
// LoginURL/Exchange, for spectating use where "logging in" only means
// "being handed a bearer token".
type DevProvider struct {
	config *oauth2.Config
}

// NewDevProvider builds a DevProvider whose authorize, token and
// callback URLs sit under baseURL. Server.Routes does not register
// those paths, and nothing in this repository constructs a DevProvider.
func NewDevProvider(baseURL string) *DevProvider {
	return &DevProvider{
		config: &oauth2.Config{
			ClientID:    "spectate-dev",
			RedirectURL: baseURL + "/auth/callback",
			Scopes:      []string{"spectate"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  baseURL + "/auth/dev/authorize",
				TokenURL: baseURL + "/auth/dev/token",
			},
		},
	}
}

// LoginURL returns the authorization URL a spectating client would be
// redirected to in a deployment with a real identity provider behind
// DevProvider.
func (p *DevProvider) LoginURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange is unused by the dev flow (GET /auth/dev issues a token
// directly) but is kept so the oauth2.Config's TokenURL has a real
// caller, matching the shape of a full authorization-code exchange.
func (p *DevProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("dev oauth exchange: %w", err)
	}
	return tok, nil
}
