package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/louisbranch/insightboard/internal/platform/errors"
	"github.com/louisbranch/insightboard/internal/platform/timeouts"
	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
	"github.com/louisbranch/insightboard/internal/services/dashboard/i18n"
	"github.com/louisbranch/insightboard/internal/services/dashboard/report"
	dashsqlite "github.com/louisbranch/insightboard/internal/services/dashboard/storage/sqlite"
	"github.com/louisbranch/insightboard/internal/services/dashboard/templates"
	"golang.org/x/text/language"
)

// Config defines the inputs for the dashboard process.
type Config struct {
	HTTPAddr string
	// DataURL is the remote example-data repository.
	DataURL string
	// DataDir, when set, replaces the network with <name>.csv files on disk.
	DataDir string
	// CachePath, when set, caches downloaded datasets in a SQLite file.
	CachePath string
	// DefaultLocale is served when a request expresses no usable language.
	DefaultLocale language.Tag
	// Loader overrides dataset loading entirely.
	Loader report.Loader
	// AccessLog receives request log lines; nil uses the standard logger.
	AccessLog *log.Logger
}

// Server hosts the prerendered dashboard.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	handler    http.Handler
}

// NewServer assembles the report, renders one document per supported
// language and prepares the HTTP server. Any failure is fatal: no server is
// returned and nothing is served.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	fallback, ok := i18n.Parse(cfg.DefaultLocale.String())
	if !ok {
		fallback = i18n.Default()
	}

	loader, closeLoader, err := buildLoader(cfg)
	if err != nil {
		return nil, err
	}
	rep, err := report.Assemble(ctx, loader)
	closeLoader()
	if err != nil {
		return nil, err
	}

	documents, err := renderDocuments(ctx, rep)
	if err != nil {
		return nil, err
	}

	handler := newHandler(documents, fallback, cfg.AccessLog)
	return &Server{
		httpAddr: httpAddr,
		handler:  handler,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// buildLoader picks the dataset source from cfg. The returned func releases
// the cache once loading is done.
func buildLoader(cfg Config) (report.Loader, func(), error) {
	noop := func() {}
	if cfg.Loader != nil {
		return cfg.Loader, noop, nil
	}

	var source dataset.Source
	if dir := strings.TrimSpace(cfg.DataDir); dir != "" {
		source = dataset.DirSource{FS: os.DirFS(dir), Label: dir}
	} else {
		source = dataset.NewRemoteSource(cfg.DataURL)
	}

	cachePath := strings.TrimSpace(cfg.CachePath)
	if cachePath == "" {
		return dataset.NewProvider(source), noop, nil
	}
	if dir := filepath.Dir(cachePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, noop, fmt.Errorf("create cache dir: %w", err)
		}
	}
	store, err := dashsqlite.Open(cachePath)
	if err != nil {
		return nil, noop, fmt.Errorf("open dataset cache: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("close dataset cache: %v", err)
		}
	}
	return dataset.NewProvider(dataset.CachedSource{Source: source, Cache: store}), closeStore, nil
}

func renderDocuments(ctx context.Context, rep *report.Report) (map[language.Tag][]byte, error) {
	documents := make(map[language.Tag][]byte, len(i18n.Supported()))
	for _, tag := range i18n.Supported() {
		page, err := rep.Page(i18n.Printer(tag))
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := templates.Document(pageView(page, tag)).Render(ctx, &buf); err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeRenderFailed,
				"render dashboard document", map[string]string{"locale": tag.String()}, err)
		}
		documents[tag] = buf.Bytes()
		log.Printf("dashboard rendered locale=%s bytes=%d", tag, buf.Len())
	}
	return documents, nil
}

// Handler returns the HTTP handler serving the dashboard.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe binds the configured address and serves until the context
// ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("dashboard server is nil")
	}
	ln, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until the context ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s == nil {
		return errors.New("dashboard server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("dashboard listening on %s", ln.Addr())
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the HTTP server immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		log.Printf("close dashboard server: %v", err)
	}
}
