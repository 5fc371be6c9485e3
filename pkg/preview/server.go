// Package preview serves generated documentation over HTTP for local
// review, rebuilding the site when the descriptor input changes.
package preview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Site is one complete documentation build, keyed by page name.
type Site struct {
	Pages   map[string]string
	BuiltAt time.Time
}

// Builder produces a fresh Site from the current descriptor input.
type Builder func() (*Site, error)

// Server serves the latest good site. Rebuilds swap the site pointer under a
// lock; a failed rebuild leaves the previous build in place.
type Server struct {
	addr     string
	build    Builder
	log      *logrus.Logger
	metrics  *metrics
	registry *prometheus.Registry
	html     *htmlRenderer

	mu   sync.RWMutex
	site *Site
}

// NewServer creates a preview server. A nil logger falls back to a default
// logrus logger.
func NewServer(addr string, build Builder, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	registry := prometheus.NewRegistry()
	return &Server{
		addr:     addr,
		build:    build,
		log:      log,
		metrics:  newMetrics(registry),
		registry: registry,
		html:     newHTMLRenderer(),
	}
}

// Rebuild runs the builder and, on success, swaps the served site.
func (s *Server) Rebuild() error {
	start := time.Now()
	site, err := s.build()
	s.metrics.rebuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.rebuilds.WithLabelValues("error").Inc()
		return err
	}

	s.mu.Lock()
	s.site = site
	s.mu.Unlock()

	s.metrics.rebuilds.WithLabelValues("success").Inc()
	s.metrics.pages.Set(float64(len(site.Pages)))
	s.log.WithField("pages", len(site.Pages)).Info("site rebuilt")
	return nil
}

func (s *Server) currentSite() *Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// Handler returns the HTTP routes: a page index, the raw pages, health and
// metrics.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/pages/{name}", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/view/{name}", s.handleView).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.addr).Info("preview server listening")
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	site := s.currentSite()
	if site == nil {
		s.unavailable(w)
		return
	}

	names := make([]string, 0, len(site.Pages))
	for name := range site.Pages {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, "# Documentation pages\n\n")
	for _, name := range names {
		fmt.Fprintf(w, "- [%s](/pages/%s)\n", name, name)
	}
	s.metrics.pageRequests.WithLabelValues("200").Inc()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	site := s.currentSite()
	if site == nil {
		s.unavailable(w)
		return
	}

	name := mux.Vars(r)["name"]
	content, ok := site.Pages[name]
	if !ok {
		s.metrics.pageRequests.WithLabelValues("404").Inc()
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, content)
	s.metrics.pageRequests.WithLabelValues("200").Inc()
}

// handleView serves a page wrapped in the HTML shell, with every page of the
// site linked from the sidebar.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	site := s.currentSite()
	if site == nil {
		s.unavailable(w)
		return
	}

	name := mux.Vars(r)["name"]
	content, ok := site.Pages[name]
	if !ok {
		s.metrics.pageRequests.WithLabelValues("404").Inc()
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	names := make([]string, 0, len(site.Pages))
	for n := range site.Pages {
		names = append(names, n)
	}
	sort.Strings(names)

	rendered, err := s.html.render(viewData{Title: name, Pages: names, Content: content})
	if err != nil {
		s.metrics.pageRequests.WithLabelValues("500").Inc()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, rendered)
	s.metrics.pageRequests.WithLabelValues("200").Inc()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	site := s.currentSite()
	w.Header().Set("Content-Type", "application/json")
	if site == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "starting"})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "healthy",
		"pages":    len(site.Pages),
		"built_at": site.BuiltAt.Format(time.RFC3339),
	})
}

func (s *Server) unavailable(w http.ResponseWriter) {
	s.metrics.pageRequests.WithLabelValues("503").Inc()
	http.Error(w, "no site built yet", http.StatusServiceUnavailable)
}
