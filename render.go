package masterweb

import (
	"bytes"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// page assembles the view input for the request path.
func (a *App) page(path string, route RouteEntry) Page {
	return Page{
		Site:    a.site,
		Nav:     a.Nav().WithActive(path),
		Route:   route,
		Version: a.Config.Version,
	}
}

// renderPage draws body inside the layout and writes it with code. Output is
// buffered so a failing component leaves the response uncommitted for the
// error handler.
func (a *App) renderPage(c echo.Context, code int, p Page, body templ.Component) error {
	var buf bytes.Buffer
	if err := a.Views.Layout(p, body).Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}
