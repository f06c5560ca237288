package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lojacapivara/catalog/internal/catalog"
	"github.com/lojacapivara/catalog/internal/config"
	"github.com/lojacapivara/catalog/internal/logging"
	"github.com/lojacapivara/catalog/internal/session"
	"github.com/lojacapivara/catalog/internal/store"
)

// env is what a command needs to run: configuration, logger, the opened
// record store and, on demand, the session file.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	store   *store.Store
	catalog *catalog.Service
	session *session.Store
	restore func()
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database.Path = opts.Database
	}
	return cfg, nil
}

// openEnv loads the configuration, installs the logger and opens the record
// store, seeding it when empty if the config asks for it. Any failure here is
// a startup failure and maps to ExitCommandError.
func openEnv(ctx context.Context, opts *RootOptions) (*env, error) {
	return openEnvWith(ctx, opts, true)
}

// openEnvWith is openEnv with control over the logger: when terminal is
// false nothing is logged to stderr.
func openEnvWith(ctx context.Context, opts *RootOptions, terminal bool) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if terminal {
		e.log, e.restore, err = logging.Install(cfg.Logger, opts.Verbose)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to build logger", err)
		}
	} else {
		e.log = logging.NewFileOnly(cfg.Logger, opts.Verbose)
		e.restore = zap.ReplaceGlobals(e.log)
	}

	e.store, err = store.Open(cfg.Database.Path)
	if err != nil {
		e.restore()
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	e.catalog = catalog.New(e.store, e.log)

	if cfg.Database.Seed {
		if err := e.seed(ctx); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

func (e *env) seed(ctx context.Context) error {
	seeds, err := catalog.DefaultProducts()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load default products", err)
	}
	n, err := e.store.Initialize(ctx, seeds)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize database", err)
	}
	if n > 0 {
		e.log.Info("seeded empty catalog", zap.Int("products", n), zap.String("path", e.cfg.Database.Path))
	}
	return nil
}

// sessions opens the session file on first use.
func (e *env) sessions() (*session.Store, error) {
	if e.session != nil {
		return e.session, nil
	}
	s, err := session.Open(e.cfg.Session.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open session", err)
	}
	e.session = s
	return s, nil
}

func (e *env) credentials() session.Credentials {
	return session.Credentials{
		Name:     e.cfg.Session.WelcomeName,
		Password: e.cfg.Session.WelcomePassword,
	}
}

// Close releases the session file and the database and flushes the logger.
func (e *env) Close() {
	if e.session != nil {
		if err := e.session.Close(); err != nil {
			e.log.Error("error closing session", zap.Error(err))
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Error("error closing database", zap.Error(err))
		}
	}
	if e.restore != nil {
		e.restore()
	}
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
