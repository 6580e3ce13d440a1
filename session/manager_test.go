package session_test

import (
	"errors"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/jrsteele09/go-auth-session/session"
	fakestorerepo "github.com/jrsteele09/go-auth-session/store/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = "u1"
	testTenantID = "eng"
	malformed    = "dummy.jwt.token"
)

func mintToken(t *testing.T, c jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("1234"))
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T) string {
	return mintToken(t, jwtlib.MapClaims{"role": session.RoleAdmin, "sub": testUserID, "tenant": testTenantID})
}

func newManager(t *testing.T, repo *fakestorerepo.FakeStoreRepo) *session.Manager {
	t.Helper()
	m, err := session.New(repo)
	require.NoError(t, err)
	return m
}

func storedValue(t *testing.T, repo *fakestorerepo.FakeStoreRepo, key string) (string, bool) {
	t.Helper()
	value, ok, err := repo.Get(key)
	require.NoError(t, err)
	return value, ok
}

func TestManager_Initialize(t *testing.T) {
	t.Run("empty store is anonymous", func(t *testing.T) {
		m := newManager(t, fakestorerepo.NewFakeStoreRepo())
		require.False(t, m.IsAuthenticated())
		require.Equal(t, session.Session{}, m.Snapshot())
	})

	t.Run("persisted tenant wins over claim", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		token := adminToken(t)
		require.NoError(t, repo.Set(session.TokenKey, token))
		require.NoError(t, repo.Set(session.TenantKey, "medicine"))

		m := newManager(t, repo)
		require.Equal(t, session.Session{
			Token:    token,
			TenantID: "medicine",
			Role:     session.RoleAdmin,
			UserID:   testUserID,
		}, m.Snapshot())
	})

	t.Run("claim tenant when none persisted", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		require.NoError(t, repo.Set(session.TokenKey, adminToken(t)))

		m := newManager(t, repo)
		require.Equal(t, testTenantID, m.TenantID())
	})

	t.Run("no tenant anywhere", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		require.NoError(t, repo.Set(session.TokenKey, mintToken(t, jwtlib.MapClaims{"role": session.RoleStudent, "sub": "s1"})))

		m := newManager(t, repo)
		require.True(t, m.IsAuthenticated())
		require.Empty(t, m.TenantID())
		require.Equal(t, session.RoleStudent, m.Role())
	})

	t.Run("malformed token is kept without identity", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		require.NoError(t, repo.Set(session.TokenKey, malformed))
		require.NoError(t, repo.Set(session.TenantKey, "medicine"))

		m := newManager(t, repo)
		require.Equal(t, session.Session{Token: malformed}, m.Snapshot())
		require.True(t, m.IsAuthenticated())
		require.Nil(t, m.Claims())
	})

	t.Run("tenant without token is anonymous", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		require.NoError(t, repo.Set(session.TenantKey, "medicine"))

		m := newManager(t, repo)
		require.Equal(t, session.Session{}, m.Snapshot())
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		repo.Err = errors.New("security error")

		_, err := session.New(repo)
		require.Error(t, err)
		require.Contains(t, err.Error(), "reading sup_token")
	})
}

func TestManager_Login(t *testing.T) {
	t.Run("claim tenant", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		token := adminToken(t)

		require.NoError(t, m.Login(token, ""))
		require.Equal(t, session.Session{
			Token:    token,
			TenantID: testTenantID,
			Role:     session.RoleAdmin,
			UserID:   testUserID,
		}, m.Snapshot())

		value, ok := storedValue(t, repo, session.TokenKey)
		require.True(t, ok)
		require.Equal(t, token, value)
		value, ok = storedValue(t, repo, session.TenantKey)
		require.True(t, ok)
		require.Equal(t, testTenantID, value)
	})

	t.Run("explicit tenant wins", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)

		require.NoError(t, m.Login(adminToken(t), "engineering"))
		require.Equal(t, "engineering", m.TenantID())

		value, _ := storedValue(t, repo, session.TenantKey)
		require.Equal(t, "engineering", value)
	})

	t.Run("no tenant leaves tenant key untouched", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		require.NoError(t, repo.Set(session.TenantKey, "previous"))
		m := newManager(t, repo)

		require.NoError(t, m.Login(mintToken(t, jwtlib.MapClaims{"role": session.RoleTeacher, "sub": "t1"}), ""))
		require.Empty(t, m.TenantID())
		require.Equal(t, session.RoleTeacher, m.Role())

		value, ok := storedValue(t, repo, session.TenantKey)
		require.True(t, ok)
		require.Equal(t, "previous", value)
	})

	t.Run("malformed token keeps explicit tenant", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)

		require.NoError(t, m.Login(malformed, "engineering"))
		require.Equal(t, session.Session{Token: malformed, TenantID: "engineering"}, m.Snapshot())
	})

	t.Run("malformed token without tenant", func(t *testing.T) {
		m := newManager(t, fakestorerepo.NewFakeStoreRepo())

		require.NoError(t, m.Login(malformed, ""))
		require.Equal(t, session.Session{Token: malformed}, m.Snapshot())
	})

	t.Run("idempotent", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		token := adminToken(t)

		require.NoError(t, m.Login(token, "engineering"))
		first := m.Snapshot()
		require.NoError(t, m.Login(token, "engineering"))
		require.Equal(t, first, m.Snapshot())
		require.Equal(t, 2, repo.Len())

		value, _ := storedValue(t, repo, session.TenantKey)
		require.Equal(t, "engineering", value)
	})

	t.Run("replaces previous identity", func(t *testing.T) {
		m := newManager(t, fakestorerepo.NewFakeStoreRepo())
		require.NoError(t, m.Login(adminToken(t), ""))
		require.NoError(t, m.Login(malformed, ""))

		require.Equal(t, session.Session{Token: malformed}, m.Snapshot())
	})

	t.Run("empty token", func(t *testing.T) {
		m := newManager(t, fakestorerepo.NewFakeStoreRepo())
		require.ErrorIs(t, m.Login("", "engineering"), session.ErrEmptyToken)
		require.False(t, m.IsAuthenticated())
	})

	t.Run("storage failure leaves state unchanged", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		require.NoError(t, m.Login(adminToken(t), ""))
		before := m.Snapshot()

		repo.Err = errors.New("quota exceeded")
		err := m.Login(mintToken(t, jwtlib.MapClaims{"sub": "other"}), "x")
		require.ErrorIs(t, err, apperrors.ErrStorage)
		require.Equal(t, before, m.Snapshot())
	})

	t.Run("tenant write failure keeps the previous login on disk", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		first := adminToken(t)
		require.NoError(t, m.Login(first, ""))
		before := m.Snapshot()

		boom := errors.New("quota exceeded")
		repo.FailWrites(session.TenantKey, boom)
		second := mintToken(t, jwtlib.MapClaims{"role": session.RoleStudent, "sub": "u2", "tenant": "med"})
		err := m.Login(second, "")
		require.ErrorIs(t, err, boom)
		require.ErrorIs(t, err, apperrors.ErrStorage)
		require.Equal(t, before, m.Snapshot())

		restored := newManager(t, repo)
		require.Equal(t, before, restored.Snapshot())
	})

	t.Run("tenant write failure on first login leaves no token", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		repo.FailWrites(session.TenantKey, errors.New("quota exceeded"))
		m := newManager(t, repo)

		require.Error(t, m.Login(adminToken(t), ""))
		require.False(t, m.IsAuthenticated())
		require.Zero(t, repo.Len())
	})

	t.Run("restored by a new manager", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		token := adminToken(t)
		require.NoError(t, newManager(t, repo).Login(token, "engineering"))

		restored := newManager(t, repo)
		require.Equal(t, session.Session{
			Token:    token,
			TenantID: "engineering",
			Role:     session.RoleAdmin,
			UserID:   testUserID,
		}, restored.Snapshot())
	})
}

func TestManager_Logout(t *testing.T) {
	t.Run("from authenticated", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		require.NoError(t, m.Login(adminToken(t), "engineering"))

		require.NoError(t, m.Logout())
		require.Equal(t, session.Session{}, m.Snapshot())
		require.Zero(t, repo.Len())
	})

	t.Run("from anonymous clears stray keys", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		require.NoError(t, repo.Set(session.TenantKey, "stale"))
		m := newManager(t, repo)

		require.NoError(t, m.Logout())
		require.NoError(t, m.Logout())
		require.Equal(t, session.Session{}, m.Snapshot())
		require.Zero(t, repo.Len())
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		require.NoError(t, m.Login(adminToken(t), ""))

		repo.Err = errors.New("security error")
		require.ErrorIs(t, m.Logout(), apperrors.ErrStorage)
		require.True(t, m.IsAuthenticated())
	})

	t.Run("tenant delete failure keeps storage and memory logged in", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		require.NoError(t, m.Login(adminToken(t), "engineering"))
		before := m.Snapshot()

		repo.FailWrites(session.TenantKey, errors.New("security error"))
		require.Error(t, m.Logout())
		require.Equal(t, before, m.Snapshot())
		require.Equal(t, before, newManager(t, repo).Snapshot())
	})

	t.Run("token delete failure puts the tenant back", func(t *testing.T) {
		repo := fakestorerepo.NewFakeStoreRepo()
		m := newManager(t, repo)
		require.NoError(t, m.Login(adminToken(t), "engineering"))
		before := m.Snapshot()

		repo.FailWrites(session.TokenKey, errors.New("security error"))
		require.Error(t, m.Logout())
		require.Equal(t, before, m.Snapshot())
		require.Equal(t, before, newManager(t, repo).Snapshot())
	})
}

func TestManager_Reads(t *testing.T) {
	m := newManager(t, fakestorerepo.NewFakeStoreRepo())
	require.False(t, m.HasRole(session.RoleAdmin))
	require.Nil(t, m.Claims())

	require.NoError(t, m.Login(adminToken(t), ""))
	require.True(t, m.HasRole(session.RoleAdmin))
	require.False(t, m.HasRole("admin"))
	require.False(t, m.HasRole(""))

	c := m.Claims()
	require.NotNil(t, c)
	require.Equal(t, testUserID, c.Subject)

	// Reads never change the state
	before := m.Snapshot()
	_ = m.Token()
	_ = m.Role()
	_ = m.UserID()
	_ = m.TenantID()
	require.Equal(t, before, m.Snapshot())
}
