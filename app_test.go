package masterweb_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/require"

	"github.com/starsiegeplayers/masterweb"
	"github.com/starsiegeplayers/masterweb/views"
)

func newTestApp(t *testing.T, cfg masterweb.ServerConfig, vf masterweb.ViewFuncs) *masterweb.App {
	t.Helper()

	site, err := masterweb.DefaultSiteConfig()
	require.NoError(t, err)
	routes, err := masterweb.NewRouteTable(masterweb.DefaultRoutes()...)
	require.NoError(t, err)

	app, err := masterweb.New(cfg, site, routes, vf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func serve(app *masterweb.App, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func parseHTML(t *testing.T, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestHomeRendersChromeWithNav(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Starsiege Players - Master Server", doc.Find("title").Text())
	require.Equal(t, "/static/img/leftlogo.png", doc.Find("header a.logo img").AttrOr("src", ""))

	items := doc.Find("header nav li")
	require.Equal(t, 2, items.Length())
	require.Equal(t, "Home", items.Eq(0).Text())
	require.True(t, items.Eq(0).HasClass("active"))
	require.Equal(t, "Admin Login", items.Eq(1).Text())
	require.True(t, items.Eq(1).HasClass("extra-padding"))

	require.Equal(t, "https://discord.gg/KA4N6J8", doc.Find(".community-widget a").AttrOr("href", ""))
}

func TestAdminRouteRendersAdminView(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	doc := parseHTML(t, rec.Body.Bytes())
	require.Equal(t, "admin", doc.Find("main").AttrOr("data-view", ""))
	require.True(t, doc.Find("section.admin").HasClass("extra-padding"))
	require.Equal(t, "page", doc.Find("header nav li.active a").AttrOr("aria-current", ""))
	require.Equal(t, "/admin", doc.Find("header nav li.active a").AttrOr("href", ""))
}

func TestNonCanonicalRouteRedirects(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/admin/")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = serve(app, http.MethodGet, "/admin/?tab=login")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/admin?tab=login", rec.Header().Get("Location"))
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)

	doc := parseHTML(t, rec.Body.Bytes())
	require.Equal(t, 1, doc.Find("section.not-found").Length())
	require.Equal(t, 0, doc.Find("header nav li.active").Length())
}

func TestUnknownAPIPathIsNotHTML(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/api/v1/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestSiteAPI(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/api/v1/site")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Title           string                     `json:"title"`
		Nav             masterweb.NavModel         `json:"nav"`
		CommunityWidget masterweb.CommunityWidget `json:"communityWidget"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, app.Site().Title, payload.Title)
	require.Equal(t, app.Nav(), payload.Nav)
	require.Equal(t, masterweb.ThemeDark, payload.CommunityWidget.Theme)
}

func TestAPIThrottle(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{MaxAPIPerMinute: 2}, views.Funcs())

	require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/v1/site").Code)
	require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/v1/site").Code)

	rec := serve(app, http.MethodGet, "/api/v1/site")
	require.Equal(t, masterweb.StatusEnhanceYourCalm, rec.Code)
	require.Contains(t, rec.Body.String(), "enhance your calm")

	require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/").Code, "pages are not throttled")
}

func TestSitemapListsRoutes(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{URL: "https://master.example.com/"}, views.Funcs())

	rec := serve(app, http.MethodGet, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "<loc>https://master.example.com/</loc>")
	require.Contains(t, body, "<loc>https://master.example.com/admin</loc>")
}

func TestStaticAssetsServed(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/static/css/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")
}

func TestFailingViewRendersServerError(t *testing.T) {
	vf := views.Funcs()
	vf.Home = func(masterweb.Page) templ.Component {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return errors.New("boom")
		})
	}
	app := newTestApp(t, masterweb.ServerConfig{}, vf)

	rec := serve(app, http.MethodGet, "/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, parseHTML(t, rec.Body.Bytes()).Find("section.server-error").Length())
	require.False(t, strings.Contains(rec.Body.String(), "boom"))
}

func TestNewRejectsRouteWithoutComponent(t *testing.T) {
	site, err := masterweb.DefaultSiteConfig()
	require.NoError(t, err)
	routes, err := masterweb.NewRouteTable(masterweb.DefaultRoutes()...)
	require.NoError(t, err)

	vf := views.Funcs()
	vf.Admin = nil

	app, err := masterweb.New(masterweb.ServerConfig{}, site, routes, vf)
	require.Nil(t, app)
	require.ErrorIs(t, err, masterweb.ErrMissingView)
}

func TestSiteAccessorReturnsCopy(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	site := app.Site()
	site.Title = "changed"
	site.Logo.ImagePath = "/elsewhere.png"

	require.Equal(t, "Starsiege Players - Master Server", app.Site().Title)
	require.Equal(t, "/static/img/leftlogo.png", app.Site().Logo.ImagePath)
}

func TestHeadRequestServesPage(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	require.Equal(t, http.StatusOK, serve(app, http.MethodHead, "/").Code)
	require.Equal(t, http.StatusOK, serve(app, http.MethodHead, "/admin").Code)

	rec := serve(app, http.MethodHead, "/admin/")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestNewRejectsRoutesOnRendererPaths(t *testing.T) {
	site, err := masterweb.DefaultSiteConfig()
	require.NoError(t, err)

	for _, path := range []string{"/sitemap.xml", "/static", "/static/css", "/api", "/api/v1/site"} {
		routes, err := masterweb.NewRouteTable(
			masterweb.RouteEntry{Path: "/", Label: "Home", View: masterweb.ViewHome},
			masterweb.RouteEntry{Path: path, Label: "Clash", View: masterweb.ViewAdmin},
		)
		require.NoError(t, err, path)

		app, err := masterweb.New(masterweb.ServerConfig{}, site, routes, views.Funcs())
		require.Nil(t, app, path)
		require.ErrorIs(t, err, masterweb.ErrInvalidPath, path)
	}
}

func TestMasterInfoAPI(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	app := newTestApp(t, masterweb.ServerConfig{Hostname: `Master\nOne`, MOTD: "hello", MasterID: 7}, views.Funcs())

	rec := serve(app, http.MethodGet, "/api/v1/master/info")
	require.Equal(t, http.StatusOK, rec.Code)

	var info struct {
		Hostname string
		MOTD     string
		ID       uint16
		Uptime   time.Time
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, "MasterOne", info.Hostname)
	require.Equal(t, "hello", info.MOTD)
	require.Equal(t, uint16(7), info.ID)
	require.True(t, info.Uptime.After(before), "uptime is the start time")
}

func TestMasterInfoDefaultsHostname(t *testing.T) {
	app := newTestApp(t, masterweb.ServerConfig{}, views.Funcs())

	rec := serve(app, http.MethodGet, "/api/v1/master/info")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Hostname":"(no-name)"`)
	require.Contains(t, rec.Body.String(), `"ID":99`)
}

func TestFailingServerErrorViewLogsAndWritesStatus(t *testing.T) {
	failing := func(masterweb.Page) templ.Component {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return errors.New("boom")
		})
	}
	vf := views.Funcs()
	vf.Home = failing
	vf.ServerError = failing

	var logged []string
	log := funcr.New(func(prefix, args string) {
		logged = append(logged, args)
	}, funcr.Options{})

	site, err := masterweb.DefaultSiteConfig()
	require.NoError(t, err)
	routes, err := masterweb.NewRouteTable(masterweb.DefaultRoutes()...)
	require.NoError(t, err)
	app, err := masterweb.New(masterweb.ServerConfig{}, site, routes, vf, masterweb.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	rec := serve(app, http.MethodGet, "/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Contains(t, strings.Join(logged, "\n"), "render server error page")
}
