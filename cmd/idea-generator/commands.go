// cmd/idea-generator/commands.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"idea-generator/internal/common/config"
	apperrors "idea-generator/internal/common/errors"
	"idea-generator/internal/credential"
	"idea-generator/internal/idea"
	"idea-generator/internal/models"
	"idea-generator/internal/prompt"
	"idea-generator/internal/server"
)

type execFunc func(ctx context.Context, a *app, stdout io.Writer) error

type cliCommand struct {
	summary string
	setup   func(fs *flag.FlagSet) execFunc
	// standalone commands need no config or credential store
	standalone      bool
	migratesOnStart bool
}

var commandOrder = []string{
	"generate", "test-key", "get-key", "set-key", "delete-key",
	"migrate-key", "categories", "serve",
}

var cliCommands = map[string]cliCommand{
	"generate": {
		summary:         "Generate an idea for a category",
		setup:           setupGenerate,
		migratesOnStart: true,
	},
	"test-key": {
		summary:         "Check whether an API key is accepted",
		setup:           setupTestKey,
		migratesOnStart: true,
	},
	"get-key": {
		summary:         "Print the stored API key (null when absent)",
		setup:           setupGetKey,
		migratesOnStart: true,
	},
	"set-key": {
		summary: "Store an API key (blank deletes it)",
		setup:   setupSetKey,
	},
	"delete-key": {
		summary: "Delete the stored API key",
		setup:   setupDeleteKey,
	},
	"migrate-key": {
		summary: "Move a plaintext key from a legacy settings file into the credential store",
		setup:   setupMigrateKey,
	},
	"categories": {
		summary:    "List the idea categories",
		setup:      setupCategories,
		standalone: true,
	},
	"serve": {
		summary:         "Serve the local HTTP bridge",
		setup:           setupServe,
		migratesOnStart: true,
	},
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupGenerate(fs *flag.FlagSet) execFunc {
	category := fs.String("category", prompt.AllCategories, "Idea category")
	apiKey := fs.String("api-key", "", "API key (default: the stored key)")
	format := fs.String("format", server.FormatJSON, "Output format: json, markdown or html")

	return func(ctx context.Context, a *app, stdout io.Writer) error {
		switch *format {
		case server.FormatJSON, server.FormatMarkdown, server.FormatHTML:
		default:
			return apperrors.NewInvalidRequestError("unsupported format " + *format)
		}

		key, err := a.handler.ResolveAPIKey(ctx, *apiKey)
		if err != nil {
			return err
		}
		generated, err := a.handler.GenerateIdea(ctx, *category, key)
		if err != nil {
			return err
		}
		record := models.NewIdeaRecord(*category, *generated)

		switch *format {
		case server.FormatMarkdown:
			_, err = io.WriteString(stdout, idea.FormatMarkdown(record))
		case server.FormatHTML:
			var html string
			if html, err = idea.RenderHTML(record); err == nil {
				_, err = io.WriteString(stdout, html)
			}
		default:
			err = writeJSON(stdout, record)
		}
		return err
	}
}

func setupTestKey(fs *flag.FlagSet) execFunc {
	apiKey := fs.String("api-key", "", "API key to test (default: the stored key)")

	return func(ctx context.Context, a *app, stdout io.Writer) error {
		key, err := a.handler.ResolveAPIKey(ctx, *apiKey)
		if err != nil {
			return err
		}
		valid, err := a.handler.TestAPIKey(ctx, key)
		if err != nil {
			return err
		}
		return writeJSON(stdout, valid)
	}
}

func setupGetKey(*flag.FlagSet) execFunc {
	return func(ctx context.Context, a *app, stdout io.Writer) error {
		value, ok, err := a.handler.GetAPIKey(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return writeJSON(stdout, nil)
		}
		return writeJSON(stdout, value)
	}
}

func setupSetKey(fs *flag.FlagSet) execFunc {
	apiKey := fs.String("api-key", "", "API key to store; blank deletes the stored key")

	return func(ctx context.Context, a *app, _ io.Writer) error {
		return a.handler.SetAPIKey(ctx, *apiKey)
	}
}

func setupDeleteKey(*flag.FlagSet) execFunc {
	return func(ctx context.Context, a *app, _ io.Writer) error {
		return a.handler.DeleteAPIKey(ctx)
	}
}

func setupMigrateKey(fs *flag.FlagSet) execFunc {
	settings := fs.String("settings", "", "Path to the legacy settings JSON file (default: keyring.legacy_settings_path)")

	return func(_ context.Context, a *app, stdout io.Writer) error {
		path := *settings
		if path == "" {
			path = a.cfg.Keyring.LegacySettingsPath
		}
		if path == "" {
			return apperrors.NewInvalidRequestError("-settings is required when keyring.legacy_settings_path is not configured")
		}
		migrated, err := credential.MigrateLegacy(a.store, path, a.cfg.Keyring.LegacyKeyEntry)
		if err != nil {
			return err
		}
		return writeJSON(stdout, map[string]bool{"migrated": migrated})
	}
}

func setupCategories(*flag.FlagSet) execFunc {
	return func(_ context.Context, _ *app, stdout io.Writer) error {
		for _, c := range prompt.Categories {
			if _, err := fmt.Fprintln(stdout, c); err != nil {
				return err
			}
		}
		return nil
	}
}

func setupServe(fs *flag.FlagSet) execFunc {
	addr := fs.String("addr", "", "Listen address (default: server.address)")

	return func(ctx context.Context, a *app, _ io.Writer) error {
		cfg := &server.Config{
			ServiceName:     a.cfg.App.Name,
			Address:         a.cfg.Server.Address,
			ShutdownTimeout: config.GetDuration(a.cfg.Server.ShutdownTimeout),
			MetricsEnabled:  a.cfg.Metrics.Enabled,
			AllowedOrigins:  a.cfg.Server.AllowedOrigins,
		}
		if *addr != "" {
			cfg.Address = *addr
		}
		if a.cfg.Logging.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		return server.New(cfg, a.handler, nil, a.log).Run(ctx)
	}
}
