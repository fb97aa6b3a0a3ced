// Package masterweb serves the web front end of a game master server.
// It owns the site branding, the navigation route table and the nav model
// built from them, and hosts a small echo renderer that draws each route.
//
// Views are supplied by the caller through ViewFuncs, keyed by ViewID, so
// presentation stays outside the package.
package masterweb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-logr/logr"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the renderer calls. Every ViewID used
// by the route table must have a non-nil entry.
type ViewFuncs struct {
	Layout      func(p Page, body templ.Component) templ.Component
	Home        func(p Page) templ.Component
	Admin       func(p Page) templ.Component
	NotFound    func(p Page) templ.Component
	ServerError func(p Page) templ.Component
}

// Lookup returns the component factory for id, or nil.
func (v ViewFuncs) Lookup(id ViewID) func(Page) templ.Component {
	switch id {
	case ViewHome:
		return v.Home
	case ViewAdmin:
		return v.Admin
	}
	return nil
}

func (v ViewFuncs) validate(routes *RouteTable) error {
	if v.Layout == nil {
		return errors.New("layout view is required")
	}
	if v.NotFound == nil || v.ServerError == nil {
		return errors.New("error views are required")
	}
	for _, e := range routes.All() {
		if v.Lookup(e.View) == nil {
			return fmt.Errorf("route %q: no %s view: %w", e.Path, e.View, ErrMissingView)
		}
	}
	return nil
}

// App wires the site config, route table, views and the echo server.
type App struct {
	Config ServerConfig
	Echo   *echo.Echo
	Views  ViewFuncs

	site       SiteConfig
	routes     *RouteTable
	log        logr.Logger
	apiLimiter *RequestLimiter
	staticFS   fs.FS
	start      time.Time
}

// New validates its inputs and builds a ready-to-serve App. A route pointing
// at a view without a component is a configuration error.
func New(cfg ServerConfig, site SiteConfig, routes *RouteTable, views ViewFuncs, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if routes == nil {
		return nil, errors.New("masterweb: route table is required")
	}
	if err := views.validate(routes); err != nil {
		return nil, fmt.Errorf("masterweb: %w", err)
	}
	for _, e := range routes.All() {
		if isReservedPath(e.Path) {
			return nil, fmt.Errorf("masterweb: route %q is served by the renderer: %w", e.Path, ErrInvalidPath)
		}
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		site:   site,
		routes: routes,
		log:    logr.Discard(),
		start:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.staticFS == nil && cfg.StaticDir != "" {
		a.staticFS = os.DirFS(cfg.StaticDir)
	}
	if a.staticFS == nil {
		sub, err := fs.Sub(StaticAssets, "static")
		if err != nil {
			return nil, fmt.Errorf("masterweb: embedded assets: %w", err)
		}
		a.staticFS = sub
	}

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.apiLimiter = NewRequestLimiter(cfg.MaxAPIPerMinute, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// Site returns a copy of the site configuration.
func (a *App) Site() SiteConfig {
	return a.site
}

// Routes returns the route table.
func (a *App) Routes() *RouteTable {
	return a.routes
}

// Nav returns the nav model for the current site and routes.
func (a *App) Nav() NavModel {
	return BuildNavModel(a.site, a.routes)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(a.staticFS)))))
	e.GET("/sitemap.xml", a.handleSitemap)

	api := e.Group("/api/v1", a.throttle)
	api.GET("/site", a.handleSite)
	api.GET("/master/info", a.handleMasterInfo)

	methods := []string{http.MethodGet, http.MethodHead}
	for _, entry := range a.routes.All() {
		e.Match(methods, entry.Path, a.handleRoute(entry))
	}
}

// isReservedPath reports whether path belongs to a renderer-owned endpoint.
func isReservedPath(path string) bool {
	return path == "/sitemap.xml" ||
		path == "/static" || strings.HasPrefix(path, "/static/") ||
		isAPIPath(path)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", a.Config.Addr, "routes", a.routes.Len())
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("masterweb: shutdown: %w", err)
	}
	return <-errCh
}

// Close releases background resources.
func (a *App) Close() error {
	a.apiLimiter.Stop()
	return nil
}
