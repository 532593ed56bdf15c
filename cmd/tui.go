package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/matheuskafuri/dexterm/internal/catalog"
	"github.com/matheuskafuri/dexterm/internal/config"
	"github.com/matheuskafuri/dexterm/internal/labels"
	"github.com/matheuskafuri/dexterm/internal/logging"
	"github.com/matheuskafuri/dexterm/internal/opener"
	"github.com/matheuskafuri/dexterm/internal/pokeapi"
	"github.com/matheuskafuri/dexterm/internal/tui"
	"go.uber.org/zap"
)

// deps is everything a command needs, wired from one config.
type deps struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *pokeapi.Client
	browser *catalog.Browser
	labels  *labels.Translator
}

func newDeps(cfg *config.Config, log *zap.Logger, landing bool) (*deps, error) {
	tr, err := labels.New(cfg.GetLanguage(), cfg.Translations)
	if err != nil {
		return nil, fmt.Errorf("loading labels: %w", err)
	}

	client := pokeapi.NewClient(cfg.APIURL,
		pokeapi.WithListingLimit(cfg.GetListingLimit()),
		pokeapi.WithTimeout(cfg.Timeout()),
		pokeapi.WithLogger(log.Named("pokeapi")),
	)
	types := catalog.NewTypeCache(client.TypeMembers,
		catalog.WithFailurePolicy(cfg.FailurePolicy()),
		catalog.WithCacheLogger(log.Named("types")),
	)
	browser := catalog.NewBrowser(
		catalog.NewFilter(types, cfg.GetConcurrency()),
		catalog.NewResolver(client.Detail, cfg.GetConcurrency(), log.Named("details")),
		catalog.Options{Landing: landing, PageSize: cfg.GetPageSize()},
	)

	return &deps{cfg: cfg, log: log, client: client, browser: browser, labels: tr}, nil
}

// setup loads config and logging from the persistent flags.
func setup(landing bool) (*deps, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logPath := flagLogFile
	if logPath == "" {
		logPath = config.LogPath()
	}
	log, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		return nil, nil, err
	}

	d, err := newDeps(cfg, log, landing)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return d, func() { _ = log.Sync() }, nil
}

// preloadQuery applies --search and --type to the browser.
func preloadQuery(d *deps, search string, types []string) error {
	for _, t := range types {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		if !d.cfg.HasType(key) {
			return fmt.Errorf("unknown type %q (see \"dexterm types\")", t)
		}
		d.browser.SetCategory(key, true)
	}
	d.browser.SetSearch(search)
	return nil
}

func runApp(ctx context.Context, landing bool) error {
	d, done, err := setup(landing)
	if err != nil {
		return err
	}
	defer done()

	if err := preloadQuery(d, flagSearch, flagTypes); err != nil {
		return err
	}

	d.log.Info("starting", zap.Bool("landing", landing), zap.String("api_url", d.cfg.APIURL))
	return tui.Run(ctx, tui.RunOpts{
		Cfg:     d.cfg,
		Browser: d.browser,
		Lister:  d.client,
		Labels:  d.labels,
		Opener:  opener.New(),
		Logger:  d.log,
	})
}
