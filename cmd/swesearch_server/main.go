package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/swegeo/swesearch/internal/config"
	"github.com/swegeo/swesearch/internal/search"
	"github.com/swegeo/swesearch/internal/transform"
	"github.com/swegeo/swesearch/pkg/sweref"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

// mapState is the config-backed host map view. The config watcher swaps
// its values at runtime.
type mapState struct {
	mx     sync.RWMutex
	lon    float64
	hasLon bool
	srid   int
	pref   sweref.Preference
}

func (m *mapState) CenterLongitude() (float64, bool) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return m.lon, m.hasLon
}

func (m *mapState) SRID() int {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return m.srid
}

func (m *mapState) Preference() sweref.Preference {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return m.pref
}

func (m *mapState) apply(cfg *config.AppConfig) {
	m.mx.Lock()
	defer m.mx.Unlock()

	m.lon, m.hasLon = cfg.MapCenterLon()
	m.srid = cfg.MapSRID()
	m.pref = cfg.Preference()
}

type App struct {
	logger      *slog.Logger
	config      *config.AppConfig
	configFile  string
	state       *mapState
	transformer *transform.Transformer
	watcher     *fsnotify.Watcher
}

func NewApp(cfg *config.AppConfig) *App {
	app := &App{
		logger:      slog.Default().With("logger", "app"),
		config:      cfg,
		state:       &mapState{},
		transformer: transform.New(transform.NewSwerefModule(), cfg.LoadTimeout()),
	}

	app.state.apply(cfg)

	return app
}

// NewSearcher creates a sequencer for one search box. Every box owns its
// own sequence counter; the transformer and its module load memo are
// shared process-wide.
func (app *App) NewSearcher() *search.Searcher {
	s := search.New(app.state, app.transformer)
	s.SetPreference(app.state.Preference())

	return s
}

func (app *App) watchConfig() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(app.configFile); err != nil {
		watcher.Close()

		return err
	}

	app.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					app.reloadConfig()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				app.logger.Error("config watch error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (app *App) reloadConfig() {
	cfg := config.NewAppConfig()

	if !cfg.Load(app.configFile) {
		app.logger.Warn("config reload failed, keeping current settings")

		return
	}

	app.config = cfg
	app.state.apply(cfg)
	app.logger.Info("config reloaded",
		slog.String("preference", string(app.state.Preference())),
		slog.Int("srid", app.state.SRID()))
}

func main() {
	conf := flag.String("config", "swesearch.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	cfg := config.NewAppConfig()
	loaded := cfg.Load(*conf)

	if err := cfg.LoadEnv("SWESEARCH_"); err != nil {
		slog.Error("error loading env config", slog.Any("error", err))
	}

	level := slog.LevelInfo
	if *debug || cfg.Debug() {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	app := NewApp(cfg)
	app.configFile = *conf

	slog.Info("starting swesearch server",
		slog.String("revision", gitRevision),
		slog.String("branch", gitBranch))

	if loaded {
		if err := app.watchConfig(); err != nil {
			app.logger.Warn("config watch disabled", slog.Any("error", err))
		}
	}

	srv := NewHttp(app)

	go func() {
		if err := srv.Listen(cfg.HTTPAddr()); err != nil {
			app.logger.Error("http server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")

	if app.watcher != nil {
		_ = app.watcher.Close()
	}
}
