package session

import (
	"sync"

	"github.com/jrsteele09/go-auth-session/claims"
	apperrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/jrsteele09/go-auth-session/store"
	"github.com/rs/zerolog"
)

// Manager owns the session and keeps it mirrored in a store.Repo.
// Login and Logout are the only transitions, everything else is a read.
type Manager struct {
	repo    store.Repo
	decode  func(string) *claims.Claims
	logger  zerolog.Logger
	lock    sync.RWMutex
	current Session
}

type Option func(*Manager)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDecoder replaces claims.Decode, mostly useful in tests
func WithDecoder(decode func(string) *claims.Claims) Option {
	return func(m *Manager) {
		m.decode = decode
	}
}

// New restores the session persisted in repo.
func New(repo store.Repo, opts ...Option) (*Manager, error) {
	m := &Manager{
		repo:   repo,
		decode: claims.Decode,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.initialize(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) initialize() error {
	token, ok, err := m.repo.Get(TokenKey)
	if err != nil {
		return apperrors.StorageErr(err, "reading %s", TokenKey)
	}
	if !ok || token == "" {
		m.logger.Debug().Msg("no persisted session")
		return nil
	}

	c := m.decode(token)
	if c == nil {
		// Keep the token so requests still carry it, the server decides.
		m.current = Session{Token: token}
		m.logger.Warn().Msg("persisted token could not be decoded")
		return nil
	}

	tenant, _, err := m.repo.Get(TenantKey)
	if err != nil {
		return apperrors.StorageErr(err, "reading %s", TenantKey)
	}

	m.current = fromToken(token, tenant, c)
	m.logger.Debug().
		Str("tenant", m.current.TenantID).
		Str("role", m.current.Role).
		Msg("session restored")
	return nil
}

// Login replaces the session with one built from token. explicitTenant, when
// set, takes precedence over the tenant claim. Calling Login again with the
// same arguments leaves the state and the store unchanged.
func (m *Manager) Login(token, explicitTenant string) error {
	if token == "" {
		return ErrEmptyToken
	}

	c := m.decode(token)
	next := fromToken(token, explicitTenant, c)

	m.lock.Lock()
	defer m.lock.Unlock()

	prevToken, hadToken, err := m.repo.Get(TokenKey)
	if err != nil {
		return apperrors.StorageErr(err, "reading %s", TokenKey)
	}

	if err := m.repo.Set(TokenKey, token); err != nil {
		return apperrors.StorageErr(err, "writing %s", TokenKey)
	}
	if next.TenantID != "" {
		if err := m.repo.Set(TenantKey, next.TenantID); err != nil {
			m.restore(TokenKey, prevToken, hadToken)
			return apperrors.StorageErr(err, "writing %s", TenantKey)
		}
	}

	m.current = next
	m.logger.Info().
		Bool("claims", c != nil).
		Str("tenant", next.TenantID).
		Str("role", next.Role).
		Msg("logged in")
	return nil
}

// Logout clears the session and both persisted keys, whatever the prior state.
func (m *Manager) Logout() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	// Tenant first: a failure at either step leaves a token that restores
	// the same identity.
	prevTenant, hadTenant, err := m.repo.Get(TenantKey)
	if err != nil {
		return apperrors.StorageErr(err, "reading %s", TenantKey)
	}
	if err := m.repo.Delete(TenantKey); err != nil {
		return apperrors.StorageErr(err, "deleting %s", TenantKey)
	}
	if err := m.repo.Delete(TokenKey); err != nil {
		m.restore(TenantKey, prevTenant, hadTenant)
		return apperrors.StorageErr(err, "deleting %s", TokenKey)
	}

	m.current = Session{}
	m.logger.Info().Msg("logged out")
	return nil
}

// restore puts key back to what it held before a failed transition.
func (m *Manager) restore(key, value string, existed bool) {
	var err error
	if existed {
		err = m.repo.Set(key, value)
	} else {
		err = m.repo.Delete(key)
	}
	if err != nil {
		m.logger.Error().Err(err).Str("key", key).Msg("could not roll back session storage")
	}
}

// Snapshot returns a copy of the current session
func (m *Manager) Snapshot() Session {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.current
}

func (m *Manager) Token() string {
	return m.Snapshot().Token
}

func (m *Manager) TenantID() string {
	return m.Snapshot().TenantID
}

func (m *Manager) Role() string {
	return m.Snapshot().Role
}

func (m *Manager) UserID() string {
	return m.Snapshot().UserID
}

func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

// HasRole compares role with the session role, case sensitive.
func (m *Manager) HasRole(role string) bool {
	current := m.Role()
	return current != "" && current == role
}

// Claims decodes the current token again, nil when logged out or malformed.
func (m *Manager) Claims() *claims.Claims {
	token := m.Token()
	if token == "" {
		return nil
	}
	return m.decode(token)
}
