package masterweb

import (
	"errors"
	"fmt"
	"strings"
)

// ViewID identifies one of the views the renderer knows how to draw.
type ViewID int

const (
	ViewNone ViewID = iota
	ViewHome
	ViewAdmin
)

var viewNames = map[ViewID]string{
	ViewHome:  "home",
	ViewAdmin: "admin",
}

func (v ViewID) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "none"
}

// Valid reports whether v names a known view.
func (v ViewID) Valid() bool {
	_, ok := viewNames[v]
	return ok
}

var (
	ErrEmptyPath     = errors.New("route path is empty")
	ErrInvalidPath   = errors.New("route path must be a canonical literal path starting with /")
	ErrMissingView   = errors.New("route has no view")
	ErrDuplicatePath = errors.New("duplicate route path")
	ErrRouteNotFound = errors.New("route not found")
)

// RouteEntry maps a URL path to a view.
type RouteEntry struct {
	Path         string
	Label        string
	View         ViewID
	ExtraPadding bool // presentational hint, passed through to the renderer
}

// RouteTable is an ordered, validated set of routes. It is immutable once built.
type RouteTable struct {
	entries []RouteEntry
	index   map[string]int
}

// DefaultRoutes returns the navigation table shipped with the site.
func DefaultRoutes() []RouteEntry {
	return []RouteEntry{
		{Path: "/", Label: "Home", View: ViewHome},
		{Path: "/admin", Label: "Admin Login", View: ViewAdmin, ExtraPadding: true},
	}
}

// NewRouteTable validates entries and builds a table. Paths must already be in
// normalized form and may not contain router pattern characters (":" or "*").
// Any invalid entry rejects the whole table.
func NewRouteTable(entries ...RouteEntry) (*RouteTable, error) {
	t := &RouteTable{
		entries: make([]RouteEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		switch {
		case e.Path == "":
			return nil, fmt.Errorf("route %d: %w", i, ErrEmptyPath)
		case !strings.HasPrefix(e.Path, "/"):
			return nil, fmt.Errorf("route %d %q: %w", i, e.Path, ErrInvalidPath)
		case strings.ContainsAny(e.Path, ":*"), !IsCanonical(e.Path):
			return nil, fmt.Errorf("route %d %q: %w", i, e.Path, ErrInvalidPath)
		case !e.View.Valid():
			return nil, fmt.Errorf("route %d %q: %w", i, e.Path, ErrMissingView)
		}
		if prev, ok := t.index[e.Path]; ok {
			return nil, fmt.Errorf("route %d %q collides with route %d: %w",
				i, e.Path, prev, ErrDuplicatePath)
		}
		t.index[e.Path] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// All returns the routes in navigation order.
func (t *RouteTable) All() []RouteEntry {
	out := make([]RouteEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of routes.
func (t *RouteTable) Len() int {
	return len(t.entries)
}

// Resolve returns the entry whose path equals the normalized form of path.
// A miss returns ErrRouteNotFound; callers choose the fallback.
func (t *RouteTable) Resolve(path string) (RouteEntry, error) {
	i, ok := t.index[NormalizePath(path)]
	if !ok {
		return RouteEntry{}, ErrRouteNotFound
	}
	return t.entries[i], nil
}

// IsCanonical reports whether path is already in normalized form.
func IsCanonical(path string) bool {
	return NormalizePath(path) == path
}

// NormalizePath drops any query string or fragment, ensures a leading slash,
// collapses repeated slashes and strips a trailing slash except on root.
// Matching stays case-sensitive.
func NormalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
