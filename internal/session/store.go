package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nookcoder/library-console/internal/authapi"
	"github.com/nookcoder/library-console/internal/logger"
	"go.uber.org/zap"
)

// ErrSessionSuperseded is returned when a logout happened while a login,
// registration or refresh call was in flight. The credential it obtained is
// discarded.
var ErrSessionSuperseded = errors.New("session: superseded by logout")

// Transport obtains credentials from the library API.
type Transport interface {
	Login(ctx context.Context, req authapi.LoginRequest) (*authapi.Credential, error)
	Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.Credential, error)
	Refresh(ctx context.Context, token string) (*authapi.Credential, error)
}

// Navigator receives the redirects a session transition triggers.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type Option func(*Store)

func WithNavigator(nav Navigator) Option {
	return func(s *Store) { s.nav = nav }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithRoutes sets where the store navigates after logout and after a
// credential is obtained.
func WithRoutes(login, landing string) Option {
	return func(s *Store) {
		if login != "" {
			s.loginRoute = login
		}
		if landing != "" {
			s.landingRoute = landing
		}
	}
}

type subscriber struct {
	id int
	fn func(bool)
}

// Store is the process-wide session. All state changes go through Login,
// Register, Refresh and Logout.
type Store struct {
	tokens TokenStore
	api    Transport
	nav    Navigator
	logger *zap.Logger

	loginRoute   string
	landingRoute string

	// emit serializes deliveries so every subscriber sees changes in order.
	emit sync.Mutex

	mu            sync.Mutex
	authenticated bool
	generation    uint64
	subscribers   []subscriber
	nextID        int
}

// New builds the store and resumes a persisted session if there is one.
func New(tokens TokenStore, api Transport, opts ...Option) *Store {
	s := &Store{
		tokens:       tokens,
		api:          api,
		nav:          NavigatorFunc(func(string) {}),
		logger:       zap.NewNop(),
		loginRoute:   "/login",
		landingRoute: "/dashboard",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("session")

	token, err := tokens.Load()
	switch {
	case err == nil:
		s.authenticated = true
		s.logger.Debug("session resumed", zap.String("token", logger.TokenPreview(token)))
	case !errors.Is(err, ErrNoToken):
		s.logger.Warn("could not read persisted token", zap.Error(err))
	}
	return s
}

// IsAuthenticated reports the current session state.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Token returns the persisted bearer token. It reports false whenever the
// session is signed out, even if the medium still holds a token that could
// not be removed.
func (s *Store) Token() (string, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	token, err := s.tokens.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			s.logger.Warn("could not read persisted token", zap.Error(err))
		}
		return "", false
	}
	return token, true
}

// Subscribe calls fn with the current state right away and then with every
// change until the returned function is called. fn runs synchronously on the
// goroutine that changed the state and must not call Login, Register,
// Refresh, Logout or Subscribe.
func (s *Store) Subscribe(fn func(authenticated bool)) (unsubscribe func()) {
	s.emit.Lock()
	defer s.emit.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	current := s.authenticated
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Login signs in with email and password. On success the token is
// persisted, subscribers see true and the store navigates to the landing
// route.
func (s *Store) Login(ctx context.Context, email, password string) (*authapi.Credential, error) {
	return s.acquire("login", func() (*authapi.Credential, error) {
		return s.api.Login(ctx, authapi.LoginRequest{Email: email, Password: password})
	})
}

// Register creates an account and signs in with the credential it returns.
func (s *Store) Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.Credential, error) {
	return s.acquire("register", func() (*authapi.Credential, error) {
		return s.api.Register(ctx, req)
	})
}

// Refresh exchanges token, usually the current one, for a new credential.
func (s *Store) Refresh(ctx context.Context, token string) (*authapi.Credential, error) {
	return s.acquire("refresh", func() (*authapi.Credential, error) {
		return s.api.Refresh(ctx, token)
	})
}

// Logout forgets the token and navigates to the login route. Calling it
// without a session only navigates. The session ends even when the medium
// refuses to drop the token; Token, Claims and Roles then report nothing.
func (s *Store) Logout() {
	s.emit.Lock()

	s.mu.Lock()
	s.generation++
	if err := s.tokens.Delete(); err != nil {
		s.logger.Warn("could not delete persisted token", zap.Error(err))
		// a blank token loads as ErrNoToken, so the next start stays signed out
		if err := s.tokens.Save(""); err != nil {
			s.logger.Error("persisted token left in place", zap.Error(err))
		}
	}
	changed := s.authenticated
	s.authenticated = false
	subs := s.snapshot()
	s.mu.Unlock()

	if changed {
		s.logger.Info("logged out")
		deliver(subs, false)
	}
	s.emit.Unlock()

	s.nav.Navigate(s.loginRoute)
}

func (s *Store) acquire(op string, call func() (*authapi.Credential, error)) (*authapi.Credential, error) {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	cred, err := call()
	if err != nil {
		s.logger.Info("credential request failed", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	s.emit.Lock()
	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		s.emit.Unlock()
		s.logger.Info("discarding credential obtained before logout", zap.String("op", op))
		return nil, ErrSessionSuperseded
	}
	if err := s.tokens.Save(cred.Token); err != nil {
		s.mu.Unlock()
		s.emit.Unlock()
		return nil, fmt.Errorf("persist credential: %w", err)
	}
	changed := !s.authenticated
	s.authenticated = true
	subs := s.snapshot()
	s.mu.Unlock()

	s.logger.Info("credential stored",
		zap.String("op", op),
		zap.String("token", logger.TokenPreview(cred.Token)),
		zap.Time("expires_at", cred.ExpiresAt),
	)
	if changed {
		deliver(subs, true)
	}
	s.emit.Unlock()

	s.nav.Navigate(s.landingRoute)
	return cred, nil
}

// snapshot must be called with mu held.
func (s *Store) snapshot() []subscriber {
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func deliver(subs []subscriber, authenticated bool) {
	for _, sub := range subs {
		sub.fn(authenticated)
	}
}
