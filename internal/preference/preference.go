// Package preference persists per-client display settings. The only setting
// today is the display language, stored under a single key.
package preference

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("preference not found")

type Store interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open picks a store implementation by driver name.
func Open(driver, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		store, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverPostgres:
		store, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown preference driver %q", driver)
	}
}

func validate(clientID, key string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("client id is required")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}
	return nil
}
