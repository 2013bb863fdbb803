package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/config"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Identity is the profile returned by a provider after code exchange.
type Identity struct {
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
	Provider   string
}

// Exchanger performs the authorization-code flow against Google and GitHub.
type Exchanger struct {
	http         *resty.Client
	redirectBase string
	google       credentials
	github       credentials
	log          zerolog.Logger
}

type credentials struct {
	clientID     string
	clientSecret string
}

func (c credentials) configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// NewExchanger wires the OAuth exchanger from config.
func NewExchanger(cfg *config.Config, log zerolog.Logger) *Exchanger {
	return &Exchanger{
		http:         resty.New().SetTimeout(15 * time.Second),
		redirectBase: strings.TrimRight(cfg.OAuthRedirectBase, "/"),
		google:       credentials{cfg.GoogleClientID, cfg.GoogleClientSecret},
		github:       credentials{cfg.GitHubClientID, cfg.GitHubClientSecret},
		log:          log.With().Str("component", "oauth").Logger(),
	}
}

// GenerateState returns a random state parameter for CSRF protection.
func GenerateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Enabled reports whether the named provider has credentials configured.
func (e *Exchanger) Enabled(provider string) bool {
	switch provider {
	case ProviderGoogle:
		return e.google.configured()
	case ProviderGitHub:
		return e.github.configured()
	}
	return false
}

func (e *Exchanger) redirectURI(provider string) string {
	return fmt.Sprintf("%s/api/auth/%s/callback", e.redirectBase, provider)
}

// AuthURL builds the provider consent URL for the given state.
func (e *Exchanger) AuthURL(provider, state string) (string, error) {
	switch provider {
	case ProviderGoogle:
		params := url.Values{
			"client_id":     {e.google.clientID},
			"redirect_uri":  {e.redirectURI(provider)},
			"response_type": {"code"},
			"scope":         {"openid email profile"},
			"state":         {state},
		}
		return "https://accounts.google.com/o/oauth2/v2/auth?" + params.Encode(), nil
	case ProviderGitHub:
		params := url.Values{
			"client_id":    {e.github.clientID},
			"redirect_uri": {e.redirectURI(provider)},
			"scope":        {"read:user user:email"},
			"state":        {state},
		}
		return "https://github.com/login/oauth/authorize?" + params.Encode(), nil
	}
	return "", fmt.Errorf("unknown oauth provider %q", provider)
}

// Exchange trades the authorization code for the provider identity.
func (e *Exchanger) Exchange(ctx context.Context, provider, code string) (*Identity, error) {
	switch provider {
	case ProviderGoogle:
		return e.exchangeGoogle(ctx, code)
	case ProviderGitHub:
		return e.exchangeGitHub(ctx, code)
	}
	return nil, fmt.Errorf("unknown oauth provider %q", provider)
}

func (e *Exchanger) exchangeGoogle(ctx context.Context, code string) (*Identity, error) {
	var token struct {
		AccessToken string `json:"access_token"`
	}
	resp, err := e.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     e.google.clientID,
			"client_secret": e.google.clientSecret,
			"code":          code,
			"grant_type":    "authorization_code",
			"redirect_uri":  e.redirectURI(ProviderGoogle),
		}).
		SetResult(&token).
		Post("https://oauth2.googleapis.com/token")
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}
	if resp.IsError() || token.AccessToken == "" {
		return nil, fmt.Errorf("google token exchange failed: %s", resp.String())
	}

	var profile struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	resp, err = e.http.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google userinfo failed: %s", resp.String())
	}

	return &Identity{
		Email:      profile.Email,
		FirstName:  profile.GivenName,
		LastName:   profile.FamilyName,
		PictureURL: profile.Picture,
		Provider:   ProviderGoogle,
	}, nil
}

func (e *Exchanger) exchangeGitHub(ctx context.Context, code string) (*Identity, error) {
	var token struct {
		AccessToken string `json:"access_token"`
	}
	resp, err := e.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"client_id":     e.github.clientID,
			"client_secret": e.github.clientSecret,
			"code":          code,
			"redirect_uri":  e.redirectURI(ProviderGitHub),
		}).
		SetResult(&token).
		Post("https://github.com/login/oauth/access_token")
	if err != nil {
		return nil, fmt.Errorf("github token exchange: %w", err)
	}
	if resp.IsError() || token.AccessToken == "" {
		return nil, fmt.Errorf("github token exchange failed: %s", resp.String())
	}

	var profile struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	resp, err = e.http.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get("https://api.github.com/user")
	if err != nil {
		return nil, fmt.Errorf("github user: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("github user failed: %s", resp.String())
	}

	email := profile.Email
	if email == "" {
		email, err = e.primaryGitHubEmail(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	firstName, lastName := splitName(profile.Name)
	return &Identity{
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		PictureURL: profile.AvatarURL,
		Provider:   ProviderGitHub,
	}, nil
}

func (e *Exchanger) primaryGitHubEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	resp, err := e.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&emails).
		Get("https://api.github.com/user/emails")
	if err != nil {
		return "", fmt.Errorf("github emails: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("github emails failed: %s", resp.String())
	}
	for _, entry := range emails {
		if entry.Primary && entry.Verified {
			return entry.Email, nil
		}
	}
	return "", fmt.Errorf("github account has no verified primary email")
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
