package credentials

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrKeyNotFound      = errors.New("api key not found")
	ErrInvalidKey       = errors.New("api key must not be empty")
	ErrStoreUnavailable = errors.New("store does not support this operation")
)

// KeyStore is a place the provider API key can live
type KeyStore interface {
	// Name identifies the store in status output
	Name() string

	// Get returns the stored key or ErrKeyNotFound
	Get() (string, error)

	// Set saves key, or returns ErrStoreUnavailable for read-only stores
	Set(key string) error

	// Delete removes the key, or returns ErrStoreUnavailable for read-only stores
	Delete() error
}

// StoreStatus reports what one store holds
type StoreStatus struct {
	Store  string
	Found  bool
	Masked string
	Err    error
}

// Manager looks the key up across stores in order
type Manager struct {
	stores []KeyStore
}

// NewManager creates a manager backed by the system keychain, then the environment
func NewManager() *Manager {
	return NewManagerWithStores(NewKeyringStore(), NewEnvironmentStore())
}

// NewManagerWithStores creates a manager over the given stores
func NewManagerWithStores(stores ...KeyStore) *Manager {
	return &Manager{stores: stores}
}

// APIKey returns the key from the first store that has one
func (m *Manager) APIKey() (string, error) {
	var lastErr error
	for _, store := range m.stores {
		key, err := store.Get()
		if err == nil && key != "" {
			return key, nil
		}
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyNotFound, lastErr)
	}
	return "", ErrKeyNotFound
}

// Store saves key in the first writable store and returns its name
func (m *Manager) Store(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}

	var lastErr error
	for _, store := range m.stores {
		err := store.Set(key)
		if err == nil {
			return store.Name(), nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to store api key: %w", lastErr)
	}
	return "", errors.New("no available key stores")
}

// Delete removes the key from every writable store
func (m *Manager) Delete() error {
	var deleted bool
	var lastErr error

	for _, store := range m.stores {
		err := store.Delete()
		switch {
		case err == nil:
			deleted = true
		case errors.Is(err, ErrStoreUnavailable):
		default:
			lastErr = err
		}
	}

	if !deleted && lastErr != nil {
		return fmt.Errorf("failed to delete api key: %w", lastErr)
	}
	if !deleted {
		return ErrKeyNotFound
	}
	return nil
}

// Status reports every store without revealing the key
func (m *Manager) Status() []StoreStatus {
	statuses := make([]StoreStatus, 0, len(m.stores))
	for _, store := range m.stores {
		status := StoreStatus{Store: store.Name()}
		key, err := store.Get()
		switch {
		case err == nil && key != "":
			status.Found = true
			status.Masked = Mask(key)
		case err != nil && !errors.Is(err, ErrKeyNotFound):
			status.Err = err
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// Mask hides all but the first 4 and last 4 characters
func Mask(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
