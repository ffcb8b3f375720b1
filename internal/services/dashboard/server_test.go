package dashboard

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/insightboard/internal/platform/errors"
	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
	"github.com/louisbranch/insightboard/internal/testkit/datasetfixtures"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
)

var wantKinds = []string{"scatter", "line", "bar", "histogram", "box", "heatmap", "pie", "scatter3d"}

func fixtureConfig() Config {
	return Config{
		HTTPAddr:  "127.0.0.1:0",
		Loader:    dataset.NewProvider(dataset.DirSource{FS: datasetfixtures.FS(), Label: "fixtures"}),
		AccessLog: log.New(io.Discard, "", 0),
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(context.Background(), fixtureConfig())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func get(t *testing.T, h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func chartKinds(t *testing.T, body string) ([]string, []string) {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	var kinds, titles []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "div":
				for _, a := range n.Attr {
					if a.Key == "data-chart-kind" {
						kinds = append(kinds, a.Val)
					}
				}
			case "h2":
				if n.FirstChild != nil {
					titles = append(titles, n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return kinds, titles
}

func TestRootServesDashboard(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rr := get(t, srv.Handler(), http.MethodGet, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := rr.Header().Get("Content-Language"); got != "es-ES" {
		t.Fatalf("Content-Language = %q", got)
	}
	body := rr.Body.String()
	kinds, titles := chartKinds(t, body)
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("chart order mismatch (-want +got):\n%s", diff)
	}
	if len(titles) != 8 || titles[0] != "1. Relación Cuenta vs Propinas" || titles[7] != "8. Flores Iris en 3D" {
		t.Fatalf("section titles = %q", titles)
	}
	for _, marker := range []string{"Dashboard Analítico con Plotly", "cdn.plot.ly", "bWLwgP.css", "15% de propina"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestRootIsIdenticalAcrossRequests(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	first := get(t, srv.Handler(), http.MethodGet, "/", nil).Body.String()
	second := get(t, srv.Handler(), http.MethodGet, "/", nil).Body.String()
	if first != second {
		t.Fatal("responses differ between requests")
	}
}

func TestRootHead(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	full := get(t, srv.Handler(), http.MethodGet, "/", nil)
	head := get(t, srv.Handler(), http.MethodHead, "/", nil)
	if head.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", head.Code, http.StatusOK)
	}
	if head.Body.Len() != 0 {
		t.Fatalf("HEAD body length = %d, want 0", head.Body.Len())
	}
	if head.Header().Get("Content-Length") != full.Header().Get("Content-Length") {
		t.Fatalf("HEAD Content-Length = %q, GET = %q", head.Header().Get("Content-Length"), full.Header().Get("Content-Length"))
	}
}

func TestOtherPathsAndMethods(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "unknown path", method: http.MethodGet, target: "/api/data", want: http.StatusNotFound},
		{name: "favicon", method: http.MethodGet, target: "/favicon.ico", want: http.StatusNotFound},
		{name: "post root", method: http.MethodPost, target: "/", want: http.StatusMethodNotAllowed},
		{name: "delete root", method: http.MethodDelete, target: "/", want: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, srv.Handler(), tt.method, tt.target, nil)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusMethodNotAllowed && rr.Header().Get("Allow") != "GET, HEAD" {
				t.Fatalf("Allow = %q", rr.Header().Get("Allow"))
			}
		})
	}
}

func TestLanguageSelection(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rr := get(t, srv.Handler(), http.MethodGet, "/?lang=en-US", nil)
	if got := rr.Header().Get("Content-Language"); got != "en-US" {
		t.Fatalf("Content-Language = %q, want en-US", got)
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), "dashboard_lang=en-US") {
		t.Fatalf("Set-Cookie = %q", rr.Header().Get("Set-Cookie"))
	}
	if !strings.Contains(rr.Body.String(), "Analytics Dashboard with Plotly") {
		t.Fatal("expected English title")
	}
	kinds, _ := chartKinds(t, rr.Body.String())
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("chart order mismatch (-want +got):\n%s", diff)
	}

	rr = get(t, srv.Handler(), http.MethodGet, "/", map[string]string{"Accept-Language": "en-GB,en;q=0.8"})
	if got := rr.Header().Get("Content-Language"); got != "en-US" {
		t.Fatalf("Accept-Language Content-Language = %q, want en-US", got)
	}
	if rr.Header().Get("Set-Cookie") != "" {
		t.Fatal("Accept-Language should not set a cookie")
	}
}

func TestDefaultLocaleConfigurable(t *testing.T) {
	t.Parallel()
	cfg := fixtureConfig()
	cfg.DefaultLocale = language.MustParse("en-US")
	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	rr := get(t, srv.Handler(), http.MethodGet, "/", nil)
	if got := rr.Header().Get("Content-Language"); got != "en-US" {
		t.Fatalf("Content-Language = %q, want en-US", got)
	}
}

type failingLoader struct{ err error }

func (f failingLoader) LoadAll(context.Context, ...string) (map[string]*dataset.Dataset, error) {
	return nil, f.err
}

func TestNewServerFailsOnDataErrors(t *testing.T) {
	t.Parallel()
	cfg := fixtureConfig()
	cfg.Loader = failingLoader{err: apperrors.New(apperrors.CodeDataUnavailable, "dataset tips unavailable")}
	srv, err := NewServer(context.Background(), cfg)
	if srv != nil {
		t.Fatal("expected no server")
	}
	if got := apperrors.CodeOf(err); got != apperrors.CodeDataUnavailable {
		t.Fatalf("CodeOf(err) = %v, want %v", got, apperrors.CodeDataUnavailable)
	}
}

func TestNewServerFailsOnMissingDataDir(t *testing.T) {
	t.Parallel()
	_, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", DataDir: filepath.Join(t.TempDir(), "absent")})
	if got := apperrors.CodeOf(err); got != apperrors.CodeDataUnavailable {
		t.Fatalf("CodeOf(%v) = %v, want %v", err, got, apperrors.CodeDataUnavailable)
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()
	cfg := fixtureConfig()
	cfg.HTTPAddr = " "
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatal("expected error for blank address")
	}
}

func TestNewServerWithDataDirAndCache(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := datasetfixtures.WriteDir(dir); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}
	cachePath := filepath.Join(t.TempDir(), "cache", "datasets.db")
	cfg := Config{HTTPAddr: "127.0.0.1:0", DataDir: dir, CachePath: cachePath, AccessLog: log.New(io.Discard, "", 0)}

	if _, err := NewServer(context.Background(), cfg); err != nil {
		t.Fatalf("new server: %v", err)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected cache file: %v", err)
	}

	// The second build reads every dataset from the cache.
	for _, name := range datasetfixtures.Names {
		if err := os.Remove(filepath.Join(dir, name+".csv")); err != nil {
			t.Fatalf("remove fixture: %v", err)
		}
	}
	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server from cache: %v", err)
	}
	kinds, _ := chartKinds(t, get(t, srv.Handler(), http.MethodGet, "/", nil).Body.String())
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("chart order mismatch (-want +got):\n%s", diff)
	}
}

func TestServeShutsDownOnContextCancel(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	transport := &http.Transport{}
	defer transport.CloseIdleConnections()
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		cancel()
		t.Fatalf("get: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	transport.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServeReportsBindErrors(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	cfg := fixtureConfig()
	cfg.HTTPAddr = ln.Addr().String()
	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := srv.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected bind error")
	}
}

func TestNilServer(t *testing.T) {
	t.Parallel()
	var srv *Server
	if err := srv.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error from nil server")
	}
	srv.Close()
}
