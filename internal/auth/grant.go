package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/lilpaoo/jimbo/internal/shared"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

// Scopes required to manage the user's data spreadsheet.
var Scopes = []string{
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/spreadsheets",
}

// GrantMode selects how an access credential is requested.
type GrantMode int

const (
	// GrantSilent reuses the credential obtained earlier in the session.
	GrantSilent GrantMode = iota
	// GrantConsent runs the full authorization flow with an explicit
	// consent prompt. Required for a first grant and after any failure.
	GrantConsent
)

// Granter acquires and holds the access credential used for cloud
// persistence. The session layer decides when a silent reuse is allowed
// versus when explicit consent must be requested again.
type Granter interface {
	// Grant ensures a usable credential is held. A failed grant yields
	// a [shared.AuthGrantError].
	Grant(ctx context.Context, mode GrantMode) error

	// Client returns an HTTP client that attaches the held credential
	// to every request. Only valid after a successful Grant.
	Client(ctx context.Context) *http.Client
}

// WebGranter implements Granter with the OAuth2 authorization code flow:
// it opens the system browser to the consent page and collects the code
// on a short-lived local callback listener.
type WebGranter struct {
	config  *oauth2.Config
	token   *oauth2.Token
	logger  *log.Logger
	openURL func(string) error
}

// NewWebGranter creates a WebGranter for the given OAuth client.
// redirectURI must be a loopback address this process can listen on.
func NewWebGranter(clientID, clientSecret, redirectURI string, logger *log.Logger) (*WebGranter, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: google client_id is not set", shared.ErrInvalidConfig)
	}
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &WebGranter{
		config:  config,
		logger:  logger,
		openURL: shared.OpenBrowser,
	}, nil
}

// Grant acquires the credential. In silent mode the credential held from
// an earlier grant in this session is reused; if none is usable the
// grant fails and the caller must re-request with explicit consent.
func (g *WebGranter) Grant(ctx context.Context, mode GrantMode) error {
	if mode == GrantSilent {
		if g.token != nil && g.token.Valid() {
			return nil
		}
		if g.token != nil && g.token.RefreshToken != "" {
			token, err := g.config.TokenSource(ctx, g.token).Token()
			if err != nil {
				g.token = nil
				return &shared.AuthGrantError{Err: err}
			}
			g.token = token
			return nil
		}
		return &shared.AuthGrantError{Err: fmt.Errorf("no credential held for silent reuse")}
	}

	token, err := g.authorize(ctx)
	if err != nil {
		g.token = nil
		return &shared.AuthGrantError{Err: err}
	}
	g.token = token
	return nil
}

// Client returns an HTTP client carrying the held credential.
func (g *WebGranter) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(g.token, g.config.TokenSource(ctx, g.token)))
}

// authorize runs the browser consent flow and waits for the callback.
func (g *WebGranter) authorize(ctx context.Context) (*oauth2.Token, error) {
	redirect, err := url.Parse(g.config.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}

	state := shared.GenerateID()
	handler := NewCallbackHandler(g.config, state)

	mux := http.NewServeMux()
	mux.Handle(redirect.Path, handler)
	srv := &http.Server{Addr: redirect.Host, Handler: mux}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := g.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	g.logger.Info("requesting user consent", "url", authURL)
	if err := g.openURL(authURL); err != nil {
		g.logger.Warn("could not open browser, visit the URL manually", "err", err)
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, result.Error()
		}
		return result.Token, nil
	case err := <-errChan:
		return nil, fmt.Errorf("callback listener failed: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
