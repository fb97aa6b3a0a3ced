// Package views holds the default templ components for masterweb pages.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/starsiegeplayers/masterweb"
)

// Funcs returns the default component set.
func Funcs() masterweb.ViewFuncs {
	return masterweb.ViewFuncs{
		Layout:      Layout,
		Home:        Home,
		Admin:       Admin,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

// Layout draws the page chrome (logo, nav) around body.
func Layout(p masterweb.Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(pageTitle(p))
		hw.raw(`</title><link rel="stylesheet" href="/static/css/site.css"></head>`)
		hw.raw(`<body class="theme-`)
		hw.text(string(p.Site.CommunityWidget.Theme))
		hw.raw(`"><header class="chrome"><a class="logo" href="`)
		hw.url(p.Nav.Logo.LinkPath)
		hw.raw(`"><img src="`)
		hw.url(p.Nav.Logo.ImagePath)
		hw.raw(`" alt="`)
		hw.text(p.Nav.Logo.Text)
		hw.raw(`"></a><nav><ul>`)
		for _, it := range p.Nav.Items {
			hw.raw(`<li class="`)
			hw.text(navItemClass(it))
			hw.raw(`"><a href="`)
			hw.url(it.Path)
			hw.raw(`"`)
			if it.Active {
				hw.raw(` aria-current="page"`)
			}
			hw.raw(`>`)
			hw.text(it.Label)
			hw.raw(`</a></li>`)
		}
		hw.raw(`</ul></nav></header><main data-view="`)
		hw.text(p.Route.View.String())
		hw.raw(`">`)
		if hw.err != nil {
			return hw.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		hw.raw(`</main><script src="/static/js/app.js" defer></script></body></html>`)
		return hw.err
	})
}

// Home shows the site title and the community widget banner.
func Home(p masterweb.Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		cw := p.Site.CommunityWidget
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="home"><h1>`)
		hw.text(p.Site.Title)
		hw.raw(`</h1>`)
		if cw.InviteURL != "" {
			hw.raw(`<aside class="community-widget" data-guild-id="`)
			hw.text(cw.GuildID)
			hw.raw(`"><a href="`)
			hw.url(cw.InviteURL)
			hw.raw(`" rel="noopener" target="_blank"><picture><source media="(max-width: 600px)" srcset="`)
			hw.url(cw.SmallImageURL)
			hw.raw(`"><img src="`)
			hw.url(cw.ImageURL)
			hw.raw(`" alt="`)
			hw.text(cw.Text)
			hw.raw(`"></picture></a><p>`)
			hw.text(cw.Text)
			hw.raw(`</p></aside>`)
		}
		hw.raw(`<div id="server-list"></div></section>`)
		return hw.err
	})
}

// Admin is the mount point for the client-side admin login.
func Admin(p masterweb.Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="admin`)
		if p.Route.ExtraPadding {
			hw.raw(` extra-padding`)
		}
		hw.raw(`"><h1>`)
		hw.text(p.Route.Label)
		hw.raw(`</h1><div id="admin-login"></div></section>`)
		return hw.err
	})
}

// NotFound is rendered for paths outside the route table.
func NotFound(p masterweb.Page) templ.Component {
	return errorSection("not-found", "Page not found", "Nothing lives at this address.", p)
}

// ServerError is rendered when a handler fails.
func ServerError(p masterweb.Page) templ.Component {
	return errorSection("server-error", "Something went wrong", "Please try again shortly.", p)
}

func errorSection(class, heading, message string, p masterweb.Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="`)
		hw.text(class)
		hw.raw(`"><h1>`)
		hw.text(heading)
		hw.raw(`</h1><p>`)
		hw.text(message)
		hw.raw(`</p><a href="`)
		hw.url(p.Nav.Logo.LinkPath)
		hw.raw(`">Back to `)
		hw.text(p.Site.Title)
		hw.raw(`</a></section>`)
		return hw.err
	})
}
