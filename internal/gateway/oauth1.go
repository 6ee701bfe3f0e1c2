package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dghubble/oauth1"
	"github.com/dghubble/oauth1/twitter"
)

const defaultProfileURL = "https://api.twitter.com/1.1/account/verify_credentials.json?include_email=true"

// ProviderConfig holds the OAuth 1.0a consumer credentials.
type ProviderConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
}

// ProviderOption customizes a ProviderStrategy.
type ProviderOption func(*ProviderStrategy)

// WithEndpoint overrides the OAuth endpoint, used to point the handshake at
// a test server.
func WithEndpoint(endpoint oauth1.Endpoint) ProviderOption {
	return func(s *ProviderStrategy) {
		s.config.Endpoint = endpoint
	}
}

// WithProfileURL overrides the identity profile URL.
func WithProfileURL(url string) ProviderOption {
	return func(s *ProviderStrategy) {
		s.profileURL = url
	}
}

// ProviderStrategy runs the OAuth 1.0a federation handshake and forwards the
// asserted identity to the upstream API. The provider-reported id acts as
// the password surrogate.
type ProviderStrategy struct {
	client     *Client
	config     *oauth1.Config
	profileURL string
}

// NewProviderStrategy creates a ProviderStrategy with the twitter endpoint.
func NewProviderStrategy(client *Client, cfg ProviderConfig, opts ...ProviderOption) *ProviderStrategy {
	s := &ProviderStrategy{
		client: client,
		config: &oauth1.Config{
			ConsumerKey:    cfg.ConsumerKey,
			ConsumerSecret: cfg.ConsumerSecret,
			CallbackURL:    cfg.CallbackURL,
			Endpoint:       twitter.AuthorizeEndpoint,
		},
		profileURL: defaultProfileURL,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AuthorizationURL starts the handshake: it obtains a request token and
// returns the URL the user must be redirected to, plus the token pair the
// caller must hold onto for the callback.
func (s *ProviderStrategy) AuthorizationURL() (authURL, requestToken, requestSecret string, err error) {
	requestToken, requestSecret, err = s.config.RequestToken()
	if err != nil {
		return "", "", "", fmt.Errorf("obtaining request token: %w", err)
	}

	u, err := s.config.AuthorizationURL(requestToken)
	if err != nil {
		return "", "", "", fmt.Errorf("building authorization url: %w", err)
	}

	return u.String(), requestToken, requestSecret, nil
}

type providerProfile struct {
	ID         string `json:"id_str"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
	Email      string `json:"email"`
}

// Callback completes the handshake: it trades the verifier for an access
// token, fetches the provider profile, and forwards the asserted identity
// upstream. Profiles without an email get the screen-name fallback.
func (s *ProviderStrategy) Callback(ctx context.Context, requestToken, requestSecret, verifier string) (*Session, error) {
	accessToken, accessSecret, err := s.config.AccessToken(requestToken, requestSecret, verifier)
	if err != nil {
		return nil, fmt.Errorf("obtaining access token: %w", err)
	}

	profile, err := s.fetchProfile(ctx, accessToken, accessSecret)
	if err != nil {
		return nil, err
	}

	email := profile.Email
	if email == "" {
		email = profile.ScreenName + "@twitter.com"
	}

	return s.client.SignProvider(ctx, profile.Name, email, profile.ID)
}

func (s *ProviderStrategy) fetchProfile(ctx context.Context, accessToken, accessSecret string) (*providerProfile, error) {
	httpClient := s.config.Client(ctx, oauth1.NewToken(accessToken, accessSecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building profile request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching provider profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUpstreamUnauthorized
	}

	var profile providerProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decoding provider profile: %w", err)
	}

	return &profile, nil
}
