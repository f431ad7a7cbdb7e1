package credentials

import "os"

// EnvVar holds the provider key for deployments without a keychain
const EnvVar = "RAPIDAPI_KEY"

// EnvironmentStore reads the key from the environment. It is read-only.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an environment-backed store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

func (e *EnvironmentStore) Name() string {
	return "environment (" + EnvVar + ")"
}

func (e *EnvironmentStore) Get() (string, error) {
	key := os.Getenv(EnvVar)
	if key == "" {
		return "", ErrKeyNotFound
	}
	return key, nil
}

func (e *EnvironmentStore) Set(key string) error {
	return ErrStoreUnavailable
}

func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}
