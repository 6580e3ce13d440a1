// Package storetest holds behaviour every store.Repo backend must share.
package storetest

import (
	"testing"

	"github.com/jrsteele09/go-auth-session/store"
	"github.com/stretchr/testify/require"
)

// RunRepoTests exercises a backend created fresh for every subtest.
func RunRepoTests(t *testing.T, newRepo func(t *testing.T) store.Repo) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		r := newRepo(t)
		value, ok, err := r.Get("sup_token")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set("sup_token", "a.b.c"))
		require.NoError(t, r.Set("sup_tenant", "engineering"))

		value, ok, err := r.Get("sup_token")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "a.b.c", value)

		value, ok, err = r.Get("sup_tenant")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "engineering", value)
	})

	t.Run("set replaces", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set("sup_tenant", "engineering"))
		require.NoError(t, r.Set("sup_tenant", "medicine"))

		value, ok, err := r.Get("sup_tenant")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "medicine", value)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set("sup_tenant", ""))

		_, ok, err := r.Get("sup_tenant")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set("sup_token", "a.b.c"))
		require.NoError(t, r.Set("sup_tenant", "engineering"))
		require.NoError(t, r.Delete("sup_token"))

		_, ok, err := r.Get("sup_token")
		require.NoError(t, err)
		require.False(t, ok)

		_, ok, err = r.Get("sup_tenant")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("delete missing key", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Delete("sup_token"))
		require.NoError(t, r.Delete("sup_token"))
	})
}
