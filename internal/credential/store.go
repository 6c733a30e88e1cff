// internal/credential/store.go
package credential

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"

	"idea-generator/internal/common/config"
	apperrors "idea-generator/internal/common/errors"
	"idea-generator/internal/common/metrics"
)

const (
	OperationGet    = "get"
	OperationSet    = "set"
	OperationDelete = "delete"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

type Config struct {
	Service string
	Account string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Service: cfg.Keyring.Service,
		Account: cfg.Keyring.Account,
	}
}

// Store keeps one secret in the OS keyring under a fixed service/account
// pair. Calls go straight to the keyring; concurrent writers race and the
// last one wins.
type Store struct {
	config *Config
	logger Logger
}

func NewStore(config *Config, log Logger) *Store {
	return &Store{config: config, logger: log}
}

// Get returns the stored key. A missing entry is reported as ok == false,
// never as an error.
func (s *Store) Get() (value string, ok bool, err error) {
	value, err = keyring.Get(s.config.Service, s.config.Account)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		s.record(OperationGet, metrics.OutcomeAbsent)
		return "", false, nil
	case err != nil:
		return "", false, s.fail(OperationGet, err)
	}
	s.record(OperationGet, metrics.OutcomeSuccess)
	return value, true, nil
}

// Set stores value with surrounding whitespace removed. A blank value
// deletes the entry instead of storing an empty string.
func (s *Store) Set(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return s.Delete()
	}
	if err := keyring.Set(s.config.Service, s.config.Account, trimmed); err != nil {
		return s.fail(OperationSet, err)
	}
	s.record(OperationSet, metrics.OutcomeSuccess)
	s.logger.Debug("api key stored", map[string]interface{}{
		"service": s.config.Service,
		"account": s.config.Account,
	})
	return nil
}

// Delete removes the entry. Deleting an absent entry succeeds.
func (s *Store) Delete() error {
	err := keyring.Delete(s.config.Service, s.config.Account)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		s.record(OperationDelete, metrics.OutcomeAbsent)
		return nil
	case err != nil:
		return s.fail(OperationDelete, err)
	}
	s.record(OperationDelete, metrics.OutcomeSuccess)
	return nil
}

func (s *Store) fail(operation string, err error) error {
	s.record(operation, metrics.OutcomeFailure)
	s.logger.Warn("credential store operation failed", map[string]interface{}{
		"operation": operation,
		"service":   s.config.Service,
		"error":     err.Error(),
	})
	return apperrors.NewStoreError(operation, err)
}

func (s *Store) record(operation, outcome string) {
	metrics.CredentialOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
