package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/cloud/sink"
	wcerrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

const (
	maxRequestBody  = 4 << 20
	shutdownTimeout = 10 * time.Second
)

// contentTypes maps render formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// cloudRequest is the body of the layout and render endpoints. Zero fields
// take the pipeline defaults.
type cloudRequest struct {
	Viewport   layout.Viewport `json:"viewport"`
	Labels     []layout.Label  `json:"labels"`
	MinFont    float64         `json:"min_font,omitempty"`
	MaxFont    float64         `json:"max_font,omitempty"`
	Padding    float64         `json:"padding,omitempty"`
	Iterations int             `json:"iterations,omitempty"`
	Style      string          `json:"style,omitempty"`
	Seed       uint64          `json:"seed,omitempty"`
	Boxes      bool            `json:"boxes,omitempty"`
	Static     bool            `json:"static,omitempty"`
	Background string          `json:"background,omitempty"`
	Scale      float64         `json:"scale,omitempty"`
}

// options converts the request into pipeline options.
func (req cloudRequest) options(logger *log.Logger) pipeline.Options {
	return pipeline.Options{
		Labels:     req.Labels,
		Width:      req.Viewport.Width,
		Height:     req.Viewport.Height,
		MinFont:    req.MinFont,
		MaxFont:    req.MaxFont,
		Padding:    req.Padding,
		Iterations: req.Iterations,
		Style:      req.Style,
		Seed:       req.Seed,
		Boxes:      req.Boxes,
		Static:     req.Static,
		Background: req.Background,
		Scale:      req.Scale,
		Logger:     logger,
	}
}

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Server serves the word-cloud HTTP API. Every request runs its own layout;
// concurrent requests share only the cache.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server that lays out and renders through runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	return &Server{runner: runner, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// requestLogger attaches a request-scoped logger and reports each request to
// the server hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := s.logger.With("req", middleware.GetReqID(ctx))
		ctx = withLogger(ctx, logger)
		hooks := observability.Server()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, elapsed)
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", status,
			"bytes", ww.BytesWritten(), "elapsed", elapsed.Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleLayout answers POST /v1/layout with the layout JSON export.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCloudRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.options(loggerFromContext(r.Context()))
	if opts.Style != "" {
		if err := pipeline.ValidateStyle(opts.Style); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	opts.SetRenderDefaults()

	res, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(res, sink.WithJSONStyle(opts.Style), sink.WithJSONSeed(opts.Seed))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleRender answers POST /v1/render?format=svg|json|png|pdf with the
// rendered artifact. The format defaults to svg.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	req, err := decodeCloudRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.options(loggerFromContext(r.Context()))
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Run-ID", result.RunID)
	w.Header().Set("X-Degraded-Labels", fmt.Sprint(result.Stats.Degraded))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func decodeCloudRequest(w http.ResponseWriter, r *http.Request) (cloudRequest, error) {
	var req cloudRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, wcerrors.New(wcerrors.ErrCodeInvalidInput, "request body is empty")
		}
		return req, wcerrors.Wrap(wcerrors.ErrCodeInvalidInput, err, "decode request")
	}
	return req, nil
}

// writeError maps err onto a status code and a JSON error body. Internal
// errors are logged and their details withheld.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := wcerrors.HTTPStatus(err)
	code := string(wcerrors.GetCode(err))
	msg := wcerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
		if code == "" {
			code = string(wcerrors.ErrCodeInternal)
		}
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Error:     msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		logFile   string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the word-cloud HTTP API",
		Long: `Run the word-cloud HTTP API.

Endpoints:
  POST /v1/layout                         {viewport, labels} -> layout JSON
  POST /v1/render?format=svg|json|png|pdf {viewport, labels} -> artifact
  GET  /healthz

Invalid input is answered with 400 and a JSON body carrying the error code.
With --redis-addr the cache is shared through Redis under a serve-specific
key prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Serve.Addr != "" {
				addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("log-file") {
				logFile = c.Config.Serve.LogFile
			}
			if redisAddr != "" {
				c.Config.Cache.Backend = CacheRedis
				c.Config.Cache.RedisAddr = redisAddr
			}
			return c.runServe(cmd.Context(), addr, logFile, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&logFile, "log-file", "", "also write logs to this file, rotated at 10 MB")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "use the Redis cache at this address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, logFile string, noCache bool) error {
	logger := c.Logger
	if logFile != "" {
		var closer io.Closer
		logger, closer = newFileLogger(os.Stderr, logFile, c.Logger.GetLevel())
		defer closer.Close()
	}

	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, serveKeyPrefix), logger)
	defer runner.Close()

	hooks := observability.NewLogHooks(logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServer(runner, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printKeyValue("Cache", cacheLabel(c.Config.Cache, noCache))
	if logFile != "" {
		printKeyValue("Log file", logFile)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func cacheLabel(cfg CacheConfig, noCache bool) string {
	switch {
	case noCache || cfg.Backend == CacheNone:
		return "disabled"
	case cfg.Backend == CacheRedis:
		return "redis " + cfg.RedisAddr
	default:
		return "file"
	}
}
