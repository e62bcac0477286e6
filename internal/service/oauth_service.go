package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"notez-be/internal/config"
	"notez-be/internal/entity"
	"notez-be/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGitHub  = "github"
	ProviderDiscord = "discord"
	ProviderGoogle  = "google"

	stateTTL = 10 * time.Minute
)

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

type IOAuthService interface {
	Providers() []string
	// GetLoginURL returns the provider consent URL and the state the
	// caller has to remember for the callback.
	GetLoginURL(provider string) (string, string, error)
	HandleCallback(ctx context.Context, provider, code, state, expectedState string) (*entity.SessionUser, error)
}

// OAuthProvider describes one login provider: where to send the user and how
// to turn the profile endpoint response into a session user.
type OAuthProvider struct {
	Name       string
	Config     *oauth2.Config
	ProfileURL string
	Profile    func(body []byte) (*entity.SessionUser, error)
}

type oauthService struct {
	providers map[string]*OAuthProvider
	secret    []byte
	logger    logger.ILogger
}

func NewOAuthService(providers []*OAuthProvider, stateSecret string, log logger.ILogger) IOAuthService {
	byName := make(map[string]*OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name] = p
	}
	if stateSecret == "" {
		// state tokens only need to survive this process
		stateSecret = uuid.NewString()
	}
	return &oauthService{
		providers: byName,
		secret:    []byte(stateSecret),
		logger:    log,
	}
}

// DefaultProviders builds the providers that have credentials configured.
func DefaultProviders(cfg config.OAuthConfig, baseURL string) []*OAuthProvider {
	callback := func(name string) string {
		return strings.TrimRight(baseURL, "/") + "/auth/" + name + "/callback"
	}

	var providers []*OAuthProvider
	if cfg.GitHub.Enabled() {
		providers = append(providers, &OAuthProvider{
			Name: ProviderGitHub,
			Config: &oauth2.Config{
				ClientID:     cfg.GitHub.ClientID,
				ClientSecret: cfg.GitHub.ClientSecret,
				RedirectURL:  callback(ProviderGitHub),
				Scopes:       []string{"read:user"},
				Endpoint:     github.Endpoint,
			},
			ProfileURL: "https://api.github.com/user",
			Profile:    ParseGitHubProfile,
		})
	}
	if cfg.Discord.Enabled() {
		providers = append(providers, &OAuthProvider{
			Name: ProviderDiscord,
			Config: &oauth2.Config{
				ClientID:     cfg.Discord.ClientID,
				ClientSecret: cfg.Discord.ClientSecret,
				RedirectURL:  callback(ProviderDiscord),
				Scopes:       []string{"identify"},
				Endpoint:     discordEndpoint,
			},
			ProfileURL: "https://discord.com/api/users/@me",
			Profile:    ParseDiscordProfile,
		})
	}
	if cfg.Google.Enabled() {
		providers = append(providers, &OAuthProvider{
			Name: ProviderGoogle,
			Config: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				RedirectURL:  callback(ProviderGoogle),
				Scopes: []string{
					"https://www.googleapis.com/auth/userinfo.profile",
				},
				Endpoint: google.Endpoint,
			},
			ProfileURL: "https://www.googleapis.com/oauth2/v2/userinfo",
			Profile:    ParseGoogleProfile,
		})
	}
	return providers
}

func (s *oauthService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, name := range []string{ProviderGitHub, ProviderDiscord, ProviderGoogle} {
		if _, ok := s.providers[name]; ok {
			names = append(names, name)
		}
	}
	for name := range s.providers {
		if name != ProviderGitHub && name != ProviderDiscord && name != ProviderGoogle {
			names = append(names, name)
		}
	}
	return names
}

func (s *oauthService) provider(name string) (*OAuthProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

type stateClaims struct {
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

func (s *oauthService) signState(provider string) (string, error) {
	now := time.Now()
	claims := stateClaims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *oauthService) verifyState(state, provider string) error {
	claims := &stateClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if claims.Provider != provider {
		return fmt.Errorf("%w: issued for %q", ErrInvalidState, claims.Provider)
	}
	return nil
}

func (s *oauthService) GetLoginURL(provider string) (string, string, error) {
	p, err := s.provider(provider)
	if err != nil {
		return "", "", err
	}

	state, err := s.signState(provider)
	if err != nil {
		return "", "", fmt.Errorf("sign oauth state: %w", err)
	}

	return p.Config.AuthCodeURL(state), state, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider, code, state, expectedState string) (*entity.SessionUser, error) {
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}

	if state == "" || state != expectedState {
		return nil, fmt.Errorf("%w: state mismatch", ErrInvalidState)
	}
	if err := s.verifyState(state, provider); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing code", ErrValidation)
	}

	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAuthService", "code exchange failed", map[string]interface{}{
			"provider": provider,
			"error":    err,
		})
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	body, err := fetchProfile(ctx, p.Config.Client(ctx, token), p.ProfileURL)
	if err != nil {
		s.logger.Warn("OAuthService", "failed getting user info", map[string]interface{}{
			"provider": provider,
			"error":    err,
		})
		return nil, err
	}

	user, err := p.Profile(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	if user.Id == "" {
		return nil, errors.New("provider returned a profile without id")
	}
	user.Provider = provider

	s.logger.Info("OAuthService", "user logged in", map[string]interface{}{
		"provider": provider,
		"user_id":  user.Id,
	})
	return user, nil
}

func fetchProfile(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info returned status %d", resp.StatusCode)
	}
	return body, nil
}

func ParseGitHubProfile(body []byte) (*entity.SessionUser, error) {
	var u struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, err
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}
	id := ""
	if u.ID != 0 {
		id = strconv.FormatInt(u.ID, 10)
	}
	return &entity.SessionUser{Id: id, Name: name, AvatarURL: u.AvatarURL}, nil
}

func ParseDiscordProfile(body []byte) (*entity.SessionUser, error) {
	var u struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Avatar     string `json:"avatar"`
	}
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, err
	}

	name := u.GlobalName
	if name == "" {
		name = u.Username
	}
	avatar := ""
	if u.Avatar != "" {
		avatar = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.ID, u.Avatar)
	}
	return &entity.SessionUser{Id: u.ID, Name: name, AvatarURL: avatar}, nil
}

func ParseGoogleProfile(body []byte) (*entity.SessionUser, error) {
	var u struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, err
	}
	return &entity.SessionUser{Id: u.ID, Name: u.Name, AvatarURL: u.Picture}, nil
}
