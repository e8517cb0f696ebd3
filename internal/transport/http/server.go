package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shiva/internal/domain"
	"github.com/shiva/internal/infra/metrics"
	"github.com/shiva/pkg/config"
)

// NewMetricsServer exposes /health and /metrics for the widget process.
func NewMetricsServer(cfg *config.Config) *http.Server {
	r := mux.NewRouter()
	registerOps(r)

	return &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: r,
	}
}

// NewContentServer serves topic indexes and post content from cfg.ContentDir.
func NewContentServer(cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewContentRouter(cfg.ContentDir, cfg.IndexRoot),
	}
}

// NewContentRouter lays dir out under root:
//
//	{root}/{topic}/{year}/index.json  -> dir/{topic}/{year}/index.json
//	{root}/...                        -> dir/...
func NewContentRouter(dir, root string) *mux.Router {
	root = path.Clean("/" + root)
	if root == "/" {
		root = ""
	}

	r := mux.NewRouter()
	r.Use(countRequests)
	registerOps(r)

	r.HandleFunc(root+"/{topic}/{year:[0-9]+}/index.json", func(w http.ResponseWriter, req *http.Request) {
		vars := mux.Vars(req)
		topic, err := domain.ParseTopic(vars["topic"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		file := filepath.Join(dir, string(topic), vars["year"], "index.json")
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, req, file)
	}).Methods(http.MethodGet)

	files := http.StripPrefix(root, http.FileServer(http.Dir(dir)))
	r.PathPrefix(root + "/").Handler(files).Methods(http.MethodGet)

	return r
}

func registerOps(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprintf(w, "OK"); err != nil {
			slog.Debug("Failed to write health response", "error", err)
		}
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		route := "unmatched"
		if cur := mux.CurrentRoute(req); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.ContentRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
