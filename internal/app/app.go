package app

import (
	"fmt"
	"io"

	"github.com/jrsteele09/go-auth-session/client"
	"github.com/jrsteele09/go-auth-session/internal/config"
	apperrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/jrsteele09/go-auth-session/session"
	"github.com/jrsteele09/go-auth-session/store"
	"github.com/jrsteele09/go-auth-session/store/filestore"
	fakestorerepo "github.com/jrsteele09/go-auth-session/store/repofake"
	"github.com/jrsteele09/go-auth-session/store/sqlitestore"
	"github.com/rs/zerolog"
)

// App wires the session, its store and the authenticated API client.
type App struct {
	Session *session.Manager
	Client  *client.Client
	closer  io.Closer
}

func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	repo, closer, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	sm, err := session.New(repo, session.WithLogger(logger.With().Str("component", "session").Logger()))
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("[App New] failed to restore session: %w", err)
	}

	api := client.New(cfg.GetAPIBaseURL(), sm,
		client.WithTimeout(cfg.GetRequestTimeout()),
		client.WithLogger(logger.With().Str("component", "client").Logger()),
	)

	return &App{Session: sm, Client: api, closer: closer}, nil
}

// Close releases the store, if it holds any resources
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// OpenStore returns the backend selected by SESSION_STORE. The closer is nil
// for backends without resources.
func OpenStore(cfg config.StoreConfig) (store.Repo, io.Closer, error) {
	switch backend := cfg.GetSessionStore(); backend {
	case config.StoreMemory:
		return fakestorerepo.NewFakeStoreRepo(), nil, nil
	case config.StoreFile:
		return filestore.New(cfg.GetSessionPath()), nil, nil
	case config.StoreSQLite:
		s, err := sqlitestore.New(cfg.GetSessionPath())
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, apperrors.Wrapf(apperrors.ErrUnknownStore, "%q", backend)
	}
}
