package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	sessionStoreVar = "SESSION_STORE"
	sessionPathVar  = "SESSION_PATH"
)

// Supported session store backends
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type StoreConfig interface {
	GetSessionStore() string
	GetSessionPath() string
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetSessionStore() string {
	return strings.ToLower(GetEnv(sessionStoreVar, StoreFile))
}

// GetSessionPath returns where the file and sqlite backends keep the session.
// Defaults to a file under the user config directory.
func (s Store) GetSessionPath() string {
	if p := os.Getenv(sessionPathVar); p != "" {
		return p
	}
	name := "session.yaml"
	if s.GetSessionStore() == StoreSQLite {
		name = "session.db"
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "sessionctl", name)
}
