// cmd/idea-generator/app.go
package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"idea-generator/internal/commands"
	"idea-generator/internal/common/config"
	apperrors "idea-generator/internal/common/errors"
	"idea-generator/internal/common/logger"
	"idea-generator/internal/common/observability"
	"idea-generator/internal/credential"
	"idea-generator/internal/idea"
	"idea-generator/internal/llm"
)

// app holds the wired components for one process.
type app struct {
	cfg     *config.Config
	zapLog  *zap.Logger
	log     logger.Logger
	obs     *observability.Observability
	store   *credential.Store
	handler *commands.Handler
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, apperrors.NewInvalidConfigError(err.Error())
	}
	return cfg, nil
}

func newApp(cfg *config.Config) (*app, error) {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service": cfg.App.Name,
	})

	opts := observability.Options{}
	if cfg.Metrics.Enabled {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	obs := observability.New(cfg.App.Name, opts, log)
	obs.SetGlobal()

	decoder, err := idea.NewDecoder(cfg.Idea.StrictValidation)
	if err != nil {
		obs.Shutdown()
		return nil, fmt.Errorf("build idea decoder: %w", err)
	}

	store := credential.NewStore(credential.LoadConfig(cfg), log)
	client := llm.NewClient(llm.LoadConfig(cfg), log)

	return &app{
		cfg:     cfg,
		zapLog:  zapLog,
		log:     log,
		obs:     obs,
		store:   store,
		handler: commands.NewHandler(commands.LoadConfig(cfg), client, store, decoder, obs, log),
	}, nil
}

// migrateConfiguredLegacyKey runs the plaintext key migration when a legacy
// settings file is configured. Failures are logged and never block startup.
func (a *app) migrateConfiguredLegacyKey() {
	path := a.cfg.Keyring.LegacySettingsPath
	if path == "" {
		return
	}
	migrated, err := credential.MigrateLegacy(a.store, path, a.cfg.Keyring.LegacyKeyEntry)
	if err != nil {
		a.log.Warn("legacy api key migration failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}
	if migrated {
		a.log.Info("migrated legacy api key into the credential store", map[string]interface{}{"path": path})
	}
}

func (a *app) close() {
	a.obs.Shutdown()
	_ = a.zapLog.Sync()
}
