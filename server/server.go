// Package server renders application routes to HTML documents and serves the
// public directory, the way the client expects to hydrate them.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/nojs-ssr/head"
	"github.com/vcrobe/nojs-ssr/importmap"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/router"
	"github.com/vcrobe/nojs-ssr/runtime"
	"github.com/vcrobe/nojs-ssr/vdom"
)

// ErrNoRouter is returned by New for an App without a router.
var ErrNoRouter = errors.New("server: app router is required")

const requestIDHeader = "X-Request-ID"

// App is the application the server renders; the client hydrates the same
// router and layout.
type App struct {
	Router route.Router

	// NewLayout creates the layout for one render. It may register head tags
	// with hm. Nil renders route content without a layout.
	NewLayout func(hm *head.Manager) router.Layout
}

// Server serves an App.
type Server struct {
	cfg       Config
	app       App
	log       zerolog.Logger
	metrics   *metrics
	importMap *importmap.Watcher
	engine    *gin.Engine
}

// New creates a server, loading the client import map.
func New(cfg Config, app App, log zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if app.Router == nil {
		return nil, ErrNoRouter
	}

	watcher, err := importmap.NewWatcher(cfg.ImportMap, log.With().Str("component", "importmap").Logger())
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		app:       app,
		log:       log,
		metrics:   newMetrics(),
		importMap: watcher,
	}
	watcher.OnChange(func(*importmap.Map) {
		s.metrics.importReloads.Inc()
	})

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.requestID(), s.accessLog())
	s.RegisterRoutes(s.engine)
	return s, nil
}

// RegisterRoutes registers the server endpoints:
//
//	GET /metrics - Prometheus metrics, when enabled
//	*   /*       - public files, else server rendered app routes
func (s *Server) RegisterRoutes(e *gin.Engine) {
	if s.cfg.Metrics {
		e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	}
	e.NoRoute(s.handle)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ImportMap returns the import map watcher.
func (s *Server) ImportMap() *importmap.Watcher {
	return s.importMap
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. The
// import map is watched alongside when enabled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("serving")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if s.cfg.WatchImportMap {
		g.Go(func() error {
			return s.importMap.Run(ctx)
		})
	}

	return g.Wait()
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handle(c *gin.Context) {
	start := time.Now()
	u := routeURL(c.Request)

	// The homepage is always an app route.
	if u.Path != "/" {
		file, ok, err := publicFile(s.cfg.PublicDir, u.Path)
		if err != nil {
			s.fail(c, "file", u, err)
			return
		}
		if ok {
			c.File(file)
			s.observe("file", c.Writer.Status(), start)
			return
		}
	}

	s.renderRoute(c, u)
	s.observe("page", c.Writer.Status(), start)
}

func (s *Server) renderRoute(c *gin.Context, u *url.URL) {
	hm := head.NewManager()
	transfer := &route.Transfer{
		Request: c.Request,
		Status:  http.StatusOK,
		Header:  http.Header{},
		Data:    map[string]any{},
	}
	ctx := route.WithTransfer(c.Request.Context(), transfer)

	plan, err := planRoute(s.app.Router, u, hm)
	if err != nil {
		s.fail(c, "plan", u, err)
		return
	}

	content, err := plan.Load(ctx)
	if err != nil {
		s.fail(c, "load", u, err)
		return
	}

	var layout router.Layout
	if s.app.NewLayout != nil {
		layout = s.app.NewLayout(hm)
	}
	body := runtime.RenderStatic(router.NewAppShell(layout, route.Route{URL: u, Content: content}))

	doc, err := page{
		lang:         s.cfg.Lang,
		importMap:    s.importMap.Current(),
		head:         hm.Content(),
		body:         body,
		data:         transfer.Data,
		wasmPath:     s.cfg.WasmPath,
		wasmExecPath: s.cfg.WasmExecPath,
	}.document()
	if err != nil {
		s.fail(c, "render", u, err)
		return
	}

	var buf bytes.Buffer
	if err := vdom.RenderDocument(&buf, doc); err != nil {
		s.fail(c, "render", u, err)
		return
	}

	for name, values := range transfer.Header {
		for _, v := range values {
			c.Writer.Header().Add(name, v)
		}
	}
	c.Data(transfer.Status, "text/html; charset=utf-8", buf.Bytes())
}

// planRoute calls the router for the initial route, turning a panic into an error.
func planRoute(r route.Router, u *url.URL, hm *head.Manager) (plan route.Plan, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("router panicked: %v", rec)
		}
	}()
	return r(u, hm, true)
}

func (s *Server) fail(c *gin.Context, stage string, u *url.URL, err error) {
	s.metrics.routeFailures.WithLabelValues(stage).Inc()
	s.log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("stage", stage).
		Str("url", u.String()).
		Msg("couldn't serve route")
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (s *Server) observe(kind string, status int, start time.Time) {
	s.metrics.requests.WithLabelValues(kind, strconv.Itoa(status)).Inc()
	s.metrics.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// routeURL is the URL the client originally requested. Reverse proxies may
// forward requests with another protocol or host, reported in the
// X-Forwarded-Proto and X-Forwarded-Host headers.
func routeURL(r *http.Request) *url.URL {
	u := &url.URL{
		Scheme:   "http",
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
	if r.TLS != nil {
		u.Scheme = "https"
	}

	if proto := firstValue(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		u.Scheme = proto
	}

	if host := firstValue(r.Header.Get("X-Forwarded-Host")); host != "" {
		if port := u.Port(); port != "" && !strings.Contains(host, ":") {
			host = net.JoinHostPort(host, port)
		}
		u.Host = host
	}
	return u
}

func firstValue(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}
