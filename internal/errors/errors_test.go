package errors_test

import (
	"errors"
	"testing"

	apperrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		require.NoError(t, apperrors.Wrapf(nil, "writing %s", "sup_token"))
	})

	t.Run("wrapped error keeps chain", func(t *testing.T) {
		err := apperrors.Wrapf(apperrors.ErrStorage, "writing %s", "sup_token")
		require.Error(t, err)
		require.True(t, apperrors.Is(err, apperrors.ErrStorage))
		require.Equal(t, "writing sup_token: session storage failure", err.Error())
	})
}

func TestStorageErr(t *testing.T) {
	require.NoError(t, apperrors.StorageErr(nil, "writing %s", "sup_token"))

	cause := errors.New("quota exceeded")
	err := apperrors.StorageErr(cause, "writing %s", "sup_token")
	require.True(t, apperrors.Is(err, apperrors.ErrStorage))
	require.True(t, apperrors.Is(err, cause))
	require.Equal(t, "writing sup_token: session storage failure: quota exceeded", err.Error())
}
