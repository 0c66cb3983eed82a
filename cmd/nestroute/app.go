package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/nestroute/internal/config"
	"github.com/vango-dev/nestroute/internal/errors"
	"github.com/vango-dev/nestroute/pkg/manifest"
	"github.com/vango-dev/nestroute/pkg/router"
	"github.com/vango-dev/nestroute/pkg/routing"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath   string
	manifestPath string
	logLevel     string
	noColor      bool

	cfg    *config.Config
	logger *slog.Logger
}

// load reads the configuration and sets up logging. A missing nestroute.json
// is fine when --manifest names the manifest directly.
func (a *app) load() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.Code(err) == "E141" && a.manifestPath != "" {
			cfg, err = config.Default()
		}
	}
	if err != nil {
		return err
	}

	if a.manifestPath != "" {
		cfg.Manifest = a.manifestPath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	return nil
}

// manifestFile returns the manifest to load. A --manifest flag is taken
// relative to the working directory, not the config file.
func (a *app) manifestFile() string {
	if a.manifestPath != "" {
		return a.manifestPath
	}
	return a.cfg.ManifestPath()
}

// tree loads, validates and builds the route manifest.
func (a *app) tree() (*manifest.Manifest, routing.Routes[*manifest.Entry, string], error) {
	m, err := manifest.Load(a.manifestFile())
	if err != nil {
		return nil, nil, err
	}
	routes, err := m.Build()
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("manifest loaded", "file", m.File(), "routes", len(routing.Patterns[*manifest.Entry, string](routes)))
	return m, routes, nil
}

// newRouter builds a router over routes with the app's logging. Metrics
// go to reg when metrics are enabled and reg is non-nil.
func (a *app) newRouter(routes routing.Routes[*manifest.Entry, string], reg prometheus.Registerer) *router.Router[*manifest.Entry, string] {
	opts := []router.Option{
		router.WithLogger(a.logger),
		router.WithNamespace(a.cfg.Metrics.Namespace),
		router.WithRegisterer(nil),
	}
	if a.cfg.Metrics.Enabled && reg != nil {
		opts = append(opts, router.WithRegisterer(reg))
	}
	return router.New[*manifest.Entry, string](routes, opts...)
}
