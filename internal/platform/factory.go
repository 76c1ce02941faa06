package platform

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/atcdesk/pkg/adapters/bolt"
	"github.com/aretw0/atcdesk/pkg/adapters/fs"
	"github.com/aretw0/atcdesk/pkg/adapters/memory"
	"github.com/aretw0/atcdesk/pkg/adapters/remote"
	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/desk"
)

// Open returns the store for the data directory at uri.
func Open(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return open(uri, o)
}

func open(uri string, o *options) (core.Store, error) {
	if o.store != nil {
		return o.store, nil
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if o.adapter == "memory" {
		return memory.New(), nil
	}

	path := resolveDataPath(uri, o, logger)
	switch o.adapter {
	case "fs":
		s := fs.NewStore(fs.Config{
			Path:         path,
			MustExist:    o.mustExist,
			ReadOnly:     o.readOnly,
			Logger:       logger,
			ErrorHandler: o.errorHandler,
		})
		if err := s.Initialize(context.Background()); err != nil {
			return nil, err
		}
		return s, nil
	case "bolt":
		s, err := bolt.Open(bolt.Config{
			Path:     filepath.Join(path, bolt.DefaultFile),
			ReadOnly: o.readOnly,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
}

// resolveDataPath applies the dev sandbox.
func resolveDataPath(uri string, o *options, logger *slog.Logger) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	resolved := ResolveDataPath(uri, useTemp)

	if IsDevRun() {
		switch {
		case o.readOnly:
			logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypass:
			logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	if useTemp {
		logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", uri, "resolved_path", resolved)
	}
	return resolved
}

// New opens the store at uri and builds a desk bound to bindings.
func New(uri string, bindings core.Bindings, opts ...Option) (*desk.Desk, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	store, err := open(uri, o)
	if err != nil {
		return nil, err
	}
	return desk.New(store, bindings, deskOptions(o)...)
}

func deskOptions(o *options) []desk.Option {
	opts := []desk.Option{desk.WithLogger(o.logger)}
	if o.clock != nil {
		opts = append(opts, desk.WithClock(o.clock))
	}
	if o.presets != nil {
		opts = append(opts, desk.WithPresets(*o.presets))
	}
	if o.news != nil {
		opts = append(opts, desk.WithNews(*o.news))
	}
	if o.remoteURL != "" {
		opts = append(opts, desk.WithFetcher(remote.NewPlanClient(o.remoteURL,
			remote.WithHTTPClient(o.httpClient),
			remote.WithLogger(o.logger),
			remote.WithCacheTTL(o.cacheTTL),
		)))
	}
	if o.publisher != nil {
		opts = append(opts, desk.WithPublisher(o.publisher))
	}
	if o.authURL != "" {
		opts = append(opts, desk.WithSession(remote.NewTokenClient(o.authURL, o.httpClient), o.loginURL))
	}
	return opts
}
