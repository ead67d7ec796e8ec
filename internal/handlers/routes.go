package handlers

import (
	"io/fs"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/llmarch/core/internal/content"
	"github.com/llmarch/core/internal/registry"
	"github.com/llmarch/core/internal/router"
)

type Options struct {
	Registry    *registry.Registry
	Router      *router.Router
	Assets      fs.FS
	RendererURL string
	Logger      *logrus.Logger
}

// NewMux wires every endpoint of the service. Paths not claimed by the API,
// health or asset routes are page navigations.
func NewMux(opts Options) (*http.ServeMux, error) {
	selector := router.NewSelector(opts.Router)
	pages, err := NewPages(selector, opts.RendererURL, opts.Logger)
	if err != nil {
		return nil, err
	}
	api := NewAPI(opts.Registry, opts.Router.Sections(), opts.Logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler(opts.Registry.Len(), selector))
	mux.HandleFunc("/api/diagrams", api.ListHandler)
	mux.HandleFunc("/api/diagrams/{key}", api.DiagramHandler)
	if opts.Assets != nil {
		mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(opts.Assets)))
	}
	// Browsers fetch the icon on their own; it is not a navigation.
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		if opts.Assets == nil {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/assets/"+content.FaviconFile, http.StatusMovedPermanently)
	})
	mux.Handle("/", pages)
	return mux, nil
}
