package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/pkg/manifest"
	"github.com/vango-dev/nestroute/pkg/registry"
	"github.com/vango-dev/nestroute/pkg/router"
	"github.com/vango-dev/nestroute/pkg/routing"
)

func serveCmd(a *app) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the route debug server",
		Long: `Run an HTTP server for exploring the route tree.

Endpoints:
  GET /match?path=/users/42   match a path
  GET /href/{name}?id=42      build a path for a named route
  GET /routes                 route table as JSON
  GET /metrics                Prometheus metrics
  GET /healthz                liveness check

Examples:
  nestroute serve
  nestroute serve --port=8080
  NESTROUTE_PORT=9000 nestroute serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if port > 0 {
				a.cfg.Serve.Port = port
			}
			if host != "" {
				a.cfg.Serve.Host = host
			}
			return runServe(cmd, a)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from nestroute.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from nestroute.json)")

	return cmd
}

func runServe(cmd *cobra.Command, a *app) error {
	m, routes, err := a.tree()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r := a.newRouter(routes, reg)

	srv := &http.Server{
		Addr:              a.cfg.Address(),
		Handler:           newDebugHandler(debugServer{router: r, manifest: m, name: a.cfg.Name, gatherer: reg, logger: a.logger}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	out := cmd.OutOrStdout()
	success(out, "Serving %d routes on http://%s", len(r.Routes()), srv.Addr)
	info(out, "Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	info(out, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// debugServer holds what the debug endpoints need.
type debugServer struct {
	router   *router.Router[*manifest.Entry, string]
	manifest *manifest.Manifest
	name     string
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

func newDebugHandler(s debugServer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Get("/routes", s.handleRoutes)
	r.Get("/match", s.handleMatch)
	r.Get("/href/{name}", s.handleHref)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

type matchResponse struct {
	ID      uint64             `json:"id"`
	Path    string             `json:"path"`
	Query   string             `json:"query,omitempty"`
	Pattern string             `json:"pattern"`
	Params  []routing.KeyValue `json:"params"`
	Views   []string           `json:"views"`
	Levels  []levelInfo        `json:"levels"`
}

type levelInfo struct {
	Path  string         `json:"path"`
	Name  string         `json:"name,omitempty"`
	View  string         `json:"view,omitempty"`
	Title string         `json:"title,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

type errorResponse struct {
	Error    string `json:"error"`
	NotFound string `json:"notFound,omitempty"`
}

func (s debugServer) handleMatch(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing path query parameter"})
		return
	}

	res, err := s.router.Match(req.Context(), path)
	switch {
	case stderrors.Is(err, router.ErrNotFound):
		resp := errorResponse{Error: err.Error()}
		if v, ok := s.router.NotFound(); ok {
			resp.NotFound = v
		}
		writeJSON(w, http.StatusNotFound, resp)
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp := matchResponse{
		ID:      uint64(res.ID),
		Path:    res.Path,
		Query:   res.Query,
		Pattern: res.Pattern,
		Params:  res.Params,
		Views:   res.Views,
	}
	if resp.Params == nil {
		resp.Params = []routing.KeyValue{}
	}
	for _, e := range res.Data {
		resp.Levels = append(resp.Levels, levelInfo{
			Path:  e.Path,
			Name:  e.Name,
			View:  e.View,
			Title: e.Title,
			Data:  e.Data,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s debugServer) handleRoutes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registry.FromRoutes(s.name, s.router.Tree()))
}

func (s debugServer) handleHref(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	entry, ok := s.manifest.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no route named " + name})
		return
	}

	params := make(map[string]string)
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	href, err := s.router.Href(entry.Pattern(), params)
	switch {
	case stderrors.Is(err, router.ErrUnknownPattern):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "pattern": entry.Pattern(), "href": href})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.LogAttrs(r.Context(), slog.LevelDebug, "request",
				slog.String("method", r.Method),
				slog.String("uri", r.RequestURI),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
