package views

import (
	"io"

	"github.com/a-h/templ"

	"github.com/starsiegeplayers/masterweb"
)

// htmlWriter keeps the first write error so components can write a run of
// fragments and check once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// url writes a sanitized, escaped URL attribute value.
func (h *htmlWriter) url(s string) {
	h.raw(templ.EscapeString(string(templ.URL(s))))
}

// navItemClass returns CSS classes for a nav entry.
func navItemClass(it masterweb.NavItem) string {
	class := "nav-item"
	if it.ExtraPadding {
		class += " extra-padding"
	}
	if it.Active {
		class += " active"
	}
	return class
}

// pageTitle prefixes the site title with the route label on inner pages.
func pageTitle(p masterweb.Page) string {
	if p.Route.Label == "" || p.Route.Path == "/" {
		return p.Site.Title
	}
	return p.Route.Label + " | " + p.Site.Title
}
