package session_test

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/nookcoder/library-console/internal/authapi"
	"github.com/nookcoder/library-console/internal/session"
)

var errBadCredentials = &authapi.APIError{Status: 401, Message: "Bad credentials"}

func tokenWithRoles(roles string) string {
	payload := `{"sub":"ada@library.local","roles":` + roles + `}`
	return "eyJhbGciOiJIUzUxMiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

// fakeTransport answers every call with the configured credential or error.
// When gate is set, calls block until it is closed.
type fakeTransport struct {
	mu    sync.Mutex
	cred  *authapi.Credential
	err   error
	gate  chan struct{}
	calls []string
}

func (f *fakeTransport) respond(op string) (*authapi.Credential, error) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.cred, nil
}

func (f *fakeTransport) Login(_ context.Context, req authapi.LoginRequest) (*authapi.Credential, error) {
	if req.Password == "" {
		return nil, errors.New("password required")
	}
	return f.respond("login")
}

func (f *fakeTransport) Register(_ context.Context, _ authapi.RegisterRequest) (*authapi.Credential, error) {
	return f.respond("register")
}

func (f *fakeTransport) Refresh(_ context.Context, _ string) (*authapi.Credential, error) {
	return f.respond("refresh")
}

func credential(token string) *authapi.Credential {
	return &authapi.Credential{Token: token, TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}
}

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func (n *navRecorder) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

var errBackendDown = errors.New("backend down")

// stuckStore wraps a MemoryStore whose Delete, and optionally Save, fail.
type stuckStore struct {
	*session.MemoryStore
	failSave bool
}

func (s *stuckStore) Delete() error { return errBackendDown }

func (s *stuckStore) Save(token string) error {
	if s.failSave {
		return errBackendDown
	}
	return s.MemoryStore.Save(token)
}
