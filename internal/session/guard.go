package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"backoffice/internal/domain"
)

// AuthClient is the slice of the auth resource client the guard needs.
type AuthClient interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error)
}

// AvatarFetcher loads the signed-in user's main image, best effort.
type AvatarFetcher interface {
	MainImage(ctx context.Context, entityType domain.EntityType, entityID int) (*domain.Image, error)
}

// Guard tracks whether a usable credential exists. The boolean is derived
// from the store on every check, never cached; the store is the one source
// of truth shared with the gateway's token source.
//
// States are exactly Anonymous and Authenticated. Anonymous moves to
// Authenticated on a successful Login; Authenticated moves back on Logout or
// when the gateway observes a rejected credential.
type Guard struct {
	store  Store
	auth   AuthClient
	avatar AvatarFetcher
	log    *slog.Logger

	mu        sync.Mutex
	avatarURL string
	onReset   []func()

	profileWG sync.WaitGroup
}

func NewGuard(store Store, auth AuthClient, avatar AvatarFetcher, log *slog.Logger) *Guard {
	return &Guard{store: store, auth: auth, avatar: avatar, log: log}
}

// OnReset registers a hook run at every teardown (logout or credential
// rejection). The synchronization stores register their Reset here so a
// later login starts clean.
func (g *Guard) OnReset(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onReset = append(g.onReset, fn)
}

// Login exchanges credentials for a token and persists the session record.
// The follow-up avatar fetch is asynchronous and best effort; its failure is
// logged and never blocks login completion.
func (g *Guard) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	result, err := g.auth.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("login: %w", err)
	}

	creds := Credentials{
		Token:          result.Token,
		UserIdentifier: result.UserIdentifier,
		Name:           result.Name,
		Role:           result.Role,
		Email:          email,
	}
	if err := g.store.Save(ctx, creds); err != nil {
		return domain.Identity{}, fmt.Errorf("persist session: %w", err)
	}

	// A login without an intervening logout still starts a fresh session; the
	// dependent stores must never carry the previous identity's snapshots.
	g.resetDependents()

	g.profileWG.Add(1)
	go func() {
		defer g.profileWG.Done()
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		g.loadProfile(loadCtx, result.UserIdentifier)
	}()

	return g.identityFrom(creds), nil
}

// Logout clears every persisted session field and resets the dependent
// stores. Calling it while already anonymous is a no-op, not an error.
func (g *Guard) Logout(ctx context.Context) error {
	return g.teardown(ctx)
}

// HandleInvalidation is the session-invalidated subscriber body, wired once
// against the gateway. It runs synchronously with the 401 propagation, so
// IsAuthenticated is already false by the time the caller sees the error.
func (g *Guard) HandleInvalidation(ctx context.Context) {
	if err := g.teardown(ctx); err != nil {
		g.log.ErrorContext(ctx, "session teardown after credential rejection failed", "error", err)
	}
}

func (g *Guard) teardown(ctx context.Context) error {
	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	g.resetDependents()
	return nil
}

// resetDependents clears the cached avatar and runs the registered reset
// hooks.
func (g *Guard) resetDependents() {
	g.mu.Lock()
	g.avatarURL = ""
	hooks := make([]func(), len(g.onReset))
	copy(hooks, g.onReset)
	g.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// IsAuthenticated re-derives the boolean from durable storage. It does not
// validate the token remotely; an expired token is discovered on the first
// gateway call that fails with 401.
func (g *Guard) IsAuthenticated(ctx context.Context) bool {
	creds, err := g.store.Load(ctx)
	if err != nil {
		g.log.WarnContext(ctx, "session load failed, treating as anonymous", "error", err)
		return false
	}
	return creds.Token != ""
}

// CheckAuth is the navigation-guard entry point: it returns the current
// identity when a credential exists.
func (g *Guard) CheckAuth(ctx context.Context) (domain.Identity, bool) {
	creds, err := g.store.Load(ctx)
	if err != nil || creds.Token == "" {
		return domain.Identity{}, false
	}
	return g.identityFrom(creds), true
}

func (g *Guard) identityFrom(creds Credentials) domain.Identity {
	g.mu.Lock()
	avatar := g.avatarURL
	g.mu.Unlock()
	return domain.Identity{
		UserIdentifier: creds.UserIdentifier,
		Name:           creds.Name,
		Role:           creds.Role,
		Email:          creds.Email,
		AvatarURL:      avatar,
	}
}

// loadProfile fetches the user's avatar. Failures are logged only.
func (g *Guard) loadProfile(ctx context.Context, userIdentifier string) {
	if g.avatar == nil {
		return
	}
	userID, err := strconv.Atoi(userIdentifier)
	if err != nil {
		g.log.DebugContext(ctx, "user identifier is not numeric, skipping avatar", "identifier", userIdentifier)
		return
	}
	image, err := g.avatar.MainImage(ctx, domain.EntityUser, userID)
	if err != nil {
		g.log.WarnContext(ctx, "avatar load failed", "error", err)
		return
	}
	if image == nil {
		return
	}
	g.mu.Lock()
	g.avatarURL = image.DisplayURL("thumbnail")
	g.mu.Unlock()
}

// TokenInfo is an unverified peek into the access token for display and
// diagnostics. Verification belongs to the backend; the client never trusts
// these claims for authorization.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenInfo decodes the stored token's claims without verifying the
// signature.
func (g *Guard) TokenInfo(ctx context.Context) (TokenInfo, error) {
	creds, err := g.store.Load(ctx)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("load session: %w", err)
	}
	if creds.Token == "" {
		return TokenInfo{}, fmt.Errorf("no session")
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(creds.Token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("parse token: %w", err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
