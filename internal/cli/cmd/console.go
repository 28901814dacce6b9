package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/nookcoder/library-console/config"
	"github.com/nookcoder/library-console/internal/authapi"
	"github.com/nookcoder/library-console/internal/catalog"
	"github.com/nookcoder/library-console/internal/logger"
	"github.com/nookcoder/library-console/internal/router"
	"github.com/nookcoder/library-console/internal/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errNotLoggedIn = errors.New("not logged in, run 'libctl login'")

// console holds everything one libctl process needs.
type console struct {
	cfg     *config.Config
	out     io.Writer
	logger  *zap.Logger
	session *session.Store
	router  *router.Router
	catalog *catalog.Client

	closers []func() error
}

func newConsole(cfg *config.Config, out io.Writer) (*console, error) {
	log, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		Output:   cfg.Log.Output,
	})
	if err != nil {
		return nil, err
	}

	c := &console{cfg: cfg, out: out, logger: log}
	c.closers = append(c.closers, func() error {
		_ = log.Sync()
		return nil
	})

	tokens, err := c.openTokenStore()
	if err != nil {
		c.Close()
		return nil, err
	}

	api := authapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)
	c.session = session.New(tokens, api,
		session.WithLogger(log),
		session.WithRoutes(cfg.Routes.Login, cfg.Routes.Landing),
		session.WithNavigator(session.NavigatorFunc(c.navigate)),
	)
	routes := router.ConsoleRoutes(c.session, cfg.Routes.Login, cfg.Routes.Landing)
	if err := router.CheckTargets(routes, cfg.Routes.Login, cfg.Routes.Landing); err != nil {
		c.Close()
		return nil, fmt.Errorf("routes config: %w", err)
	}
	c.router = router.New(routes, log)
	c.catalog = catalog.NewClient(cfg.API.BaseURL, cfg.API.Timeout, c.session, log)
	return c, nil
}

func (c *console) openTokenStore() (session.TokenStore, error) {
	switch c.cfg.Session.Backend {
	case "", "file":
		return session.NewFileStore(c.cfg.Session.Dir, c.cfg.Session.Key)
	case "memory":
		return session.NewMemoryStore(""), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.Addr,
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
		c.closers = append(c.closers, client.Close)
		return session.NewRedisStore(client, c.cfg.Redis.Prefix, c.cfg.Session.Key), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", c.cfg.Session.Backend)
	}
}

// navigate is the session's navigation side-channel.
func (c *console) navigate(path string) {
	if _, err := c.router.Navigate(path); err != nil {
		c.logger.Warn("navigation failed", zap.String("path", path), zap.Error(err))
	}
}

func (c *console) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
	c.closers = nil
}
