package masterweb

import (
	"io/fs"

	"github.com/go-logr/logr"
)

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger used for request and lifecycle logging.
func WithLogger(log logr.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithStaticFS serves /static/ from fsys instead of the embedded assets.
func WithStaticFS(fsys fs.FS) Option {
	return func(a *App) {
		a.staticFS = fsys
	}
}
