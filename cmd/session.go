package cmd

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/host/chromium"
	"github.com/grovetools/deck/host/system"
	"github.com/grovetools/deck/host/workarea"
	"github.com/grovetools/deck/launcher"
	"github.com/grovetools/deck/ticker"
	"github.com/grovetools/deck/util/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// session is everything a command needs to compose and launch a workspace.
type session struct {
	cfg      *config.Config
	store    *catalog.Store
	area     *workarea.Provider
	host     launcher.Host
	launcher *launcher.Launcher
	ctrl     *engine.Controller
	board    *ticker.Board
	logger   *logrus.Entry

	closers []func() error
}

type sessionOptions struct {
	assumeYes bool
	wrapHost  func(launcher.Host) launcher.Host
}

func loadCatalog(cfg *config.Config) (*catalog.Store, error) {
	var (
		store *catalog.Store
		err   error
	)
	if cfg.Catalog.File != "" {
		path, perr := pathutil.Expand(cfg.Catalog.File)
		if perr != nil {
			return nil, perr
		}
		store, err = catalog.Load(path)
	} else {
		store, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}
	if len(cfg.Catalog.Hidden) > 0 {
		return store.Without(cfg.Catalog.Hidden)
	}
	return store, nil
}

func newSession(cmd *cobra.Command, component string, opts sessionOptions) (*session, error) {
	logger := cli.GetLogger(cmd, component)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	store, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		store:  store,
		area:   workarea.New(cfg),
		logger: logger,
	}

	confirm := system.New(opts.assumeYes || cfg.Launch.AssumeYes, logger.WithField("host", "system"))
	switch cfg.Launch.PopupBackend {
	case config.BackendSystem:
		s.host = confirm
	default:
		ch := chromium.New(confirm, logger.WithField("host", "chromium"))
		s.host = ch
		s.closers = append(s.closers, ch.Close)
	}
	host := s.host
	if opts.wrapHost != nil {
		host = opts.wrapHost(host)
	}

	s.launcher = launcher.New(host,
		launcher.WithWorkArea(s.area),
		launcher.WithStagger(cfg.Stagger()),
		launcher.WithLogger(logger.WithField("component", "launcher")),
	)
	s.ctrl = engine.NewController(store, cfg.Catalog.PageSize, s.launcher, logger.WithField("component", "engine"))

	if cfg.TickerEnabled() {
		s.board = &ticker.Board{}
	}

	logger.WithFields(logrus.Fields{
		"items":   store.Len(),
		"backend": cfg.Launch.PopupBackend,
	}).Debug("Session ready")
	return s, nil
}

// feed returns the quote poller for the session, or nil when the ticker is
// disabled.
func (s *session) feed(onUpdate func([]ticker.Quote)) *ticker.Feed {
	if s.board == nil {
		return nil
	}
	symbols := s.cfg.Ticker.Symbols
	if len(symbols) == 0 {
		symbols = ticker.DefaultSymbols
	}
	return &ticker.Feed{
		Source:   &ticker.MockSource{Symbols: symbols, Rand: rand.New(rand.NewSource(time.Now().UnixNano()))},
		Board:    s.board,
		Interval: s.cfg.TickerInterval(),
		Logger:   s.logger.WithField("component", "ticker"),
		OnUpdate: onUpdate,
	}
}

// watchScreen reloads the work area whenever a config file changes.
func (s *session) watchScreen(ctx context.Context, cmd *cobra.Command) {
	files := s.configFiles(cmd)
	reload := func() (*config.Config, error) { return cli.LoadConfig(cmd) }
	w, err := workarea.NewWatcher(s.area, files, reload, s.cfg.WatchDebounce(), s.logger.WithField("component", "workarea"))
	if err != nil {
		s.logger.WithError(err).Debug("Config watch disabled")
		return
	}
	go w.Run(ctx)
}

func (s *session) configFiles(cmd *cobra.Command) []string {
	if path := cli.GetOptions(cmd).ConfigFile; path != "" {
		return []string{path}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	layered, err := config.LoadLayered(cwd)
	if err != nil {
		return []string{filepath.Join(cwd, "deck.yml")}
	}
	files := layered.Paths()
	if _, ok := layered.FilePaths[config.SourceProject]; !ok {
		files = append(files, filepath.Join(cwd, "deck.yml"))
	}
	return files
}

func (s *session) Close() {
	s.ctrl.Close()
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.WithError(err).Debug("Close failed")
		}
	}
}
