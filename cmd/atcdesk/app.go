package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/atcdesk"
	"github.com/aretw0/atcdesk/internal/config"
	"github.com/aretw0/atcdesk/internal/logging"
	"github.com/aretw0/atcdesk/pkg/adapters/clipboard"
	"github.com/aretw0/atcdesk/pkg/adapters/desktop"
	"github.com/aretw0/atcdesk/pkg/adapters/mqtt"
	"github.com/aretw0/atcdesk/pkg/core"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfgPath   string
	dataPath  string
	adapter   string
	readOnly  bool
	devSafety bool
	verbose   bool
	guiAlerts bool

	cfg     *config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.Data.Path = a.dataPath
	}
	if a.adapter != "" {
		cfg.Data.Adapter = a.adapter
	}
	if a.readOnly {
		cfg.Data.ReadOnly = true
	}
	if cmd.Flags().Changed("dev-safety") {
		enabled := a.devSafety
		cfg.Data.DevSafety = &enabled
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log, cmd.ErrOrStderr(), a.verbose)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg = cfg
	a.logger = logger
	a.closers = append(a.closers, closer)
	logger.Debug("config loaded", "source", cfg.Source, "data", cfg.Data.Path, "adapter", cfg.Data.Adapter)
	return nil
}

// teardown closes in reverse order of opening, so the log file goes last.
func (a *app) teardown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

// loadConfig reads --config, or the config file of the desk root above the
// working directory, or falls back to defaults. A relative data path is
// taken relative to the config file.
func (a *app) loadConfig() (*config.Config, error) {
	path := a.cfgPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root, err := atcdesk.FindRoot(wd)
		if err != nil {
			return config.Default(), nil
		}
		path = config.Find(root)
		if path == "" {
			cfg := config.Default()
			cfg.Data.Path = root
			return cfg, nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.Data.Path) {
		cfg.Data.Path = filepath.Join(filepath.Dir(path), cfg.Data.Path)
	}
	return cfg, nil
}

func (a *app) options(publisher core.PlanPublisher) []atcdesk.Option {
	cfg := a.cfg
	opts := []atcdesk.Option{
		atcdesk.WithLogger(a.logger),
		atcdesk.WithAdapter(cfg.Data.Adapter),
		atcdesk.WithReadOnly(cfg.Data.ReadOnly),
		atcdesk.WithPresets(cfg.Presets),
		atcdesk.WithNews(cfg.NewsItem()),
	}
	if cfg.Data.DevSafety != nil {
		opts = append(opts, atcdesk.WithDevSafety(*cfg.Data.DevSafety))
	}
	if cfg.Remote.PlansURL != "" {
		opts = append(opts,
			atcdesk.WithRemoteURL(cfg.Remote.PlansURL),
			atcdesk.WithRemoteCacheTTL(time.Duration(cfg.Remote.CacheTTL)),
		)
	}
	if cfg.Remote.AuthURL != "" {
		opts = append(opts, atcdesk.WithAuth(cfg.Remote.AuthURL, cfg.Remote.LoginURL))
	}
	if publisher != nil {
		opts = append(opts, atcdesk.WithPublisher(publisher))
	}
	return opts
}

// bindings returns the terminal host: alerts on out (or a dialog), the
// system clipboard and the system browser.
func (a *app) bindings(out io.Writer) core.Bindings {
	var notifier core.Notifier = desktop.NewPrinter(out)
	if a.guiAlerts {
		notifier = &desktop.Dialog{
			Title:    "atcdesk " + a.cfg.Desk,
			Fallback: desktop.NewPrinter(out),
			Logger:   a.logger,
		}
	}
	return core.Bindings{
		Clipboard: clipboard.New(),
		Notifier:  notifier,
		Navigator: desktop.NewBrowser(),
	}
}

// openDesk builds a desk over the configured store. The store is closed in
// teardown.
func (a *app) openDesk(b core.Bindings, publisher core.PlanPublisher) (*atcdesk.Desk, error) {
	d, err := atcdesk.New(a.cfg.Data.Path, b, a.options(publisher)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open desk: %w", err)
	}
	if c, ok := d.Store().(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	return d, nil
}

// publisher connects to the configured broker, or returns nil when none is
// configured.
func (a *app) publisher() (core.PlanPublisher, error) {
	p, err := mqtt.Connect(a.cfg.MQTT, a.cfg.Desk, a.logger)
	if errors.Is(err, core.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, p)
	return p, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
