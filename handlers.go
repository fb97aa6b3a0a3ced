package masterweb

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleRoute(entry RouteEntry) echo.HandlerFunc {
	view := a.Views.Lookup(entry.View)
	return func(c echo.Context) error {
		p := a.page(c.Request().URL.Path, entry)
		return a.renderPage(c, http.StatusOK, p, view(p))
	}
}

func (a *App) handleSite(c echo.Context) error {
	return c.JSON(http.StatusOK, sitePayload{
		Title:           a.site.Title,
		Nav:             a.Nav(),
		CommunityWidget: a.site.CommunityWidget,
	})
}

func (a *App) handleMasterInfo(c echo.Context) error {
	hostname := strings.ReplaceAll(a.Config.Hostname, "\\n", "")
	if strings.TrimSpace(hostname) == "" {
		hostname = "(no-name)"
	}
	return c.JSON(http.StatusOK, masterInfo{
		Hostname: hostname,
		MOTD:     a.Config.MOTD,
		ID:       a.Config.MasterID,
		Uptime:   a.start,
	})
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

// canonicalRoute redirects non-canonical spellings of a known route, such as
// "/admin/" or "//admin", to the table path. Unknown paths pass through.
func (a *App) canonicalRoute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			return next(c)
		}
		path := req.URL.Path
		if IsCanonical(path) {
			return next(c)
		}
		entry, err := a.routes.Resolve(path)
		if err != nil {
			return next(c)
		}
		target := entry.Path
		if req.URL.RawQuery != "" {
			target += "?" + req.URL.RawQuery
		}
		return c.Redirect(http.StatusMovedPermanently, target)
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound && !isAPIPath(c.Request().URL.Path) {
		p := a.page(c.Request().URL.Path, RouteEntry{})
		if rerr := a.renderPage(c, http.StatusNotFound, p, a.Views.NotFound(p)); rerr != nil {
			a.log.Error(rerr, "render not found page")
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error(err, "server error", "method", c.Request().Method, "uri", c.Request().RequestURI)
		p := a.page(c.Request().URL.Path, RouteEntry{})
		if rerr := a.renderPage(c, code, p, a.Views.ServerError(p)); rerr != nil {
			a.log.Error(rerr, "render server error page")
			if werr := c.NoContent(code); werr != nil {
				a.log.Error(werr, "write error status")
			}
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
