package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		fallback    language.Tag
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/", fallback: Default(), want: Default()},
		{name: "configured fallback", target: "/", fallback: english, want: english},
		{name: "query", target: "/?lang=en-US", fallback: Default(), want: english, wantPersist: true},
		{name: "query base language", target: "/?lang=en", fallback: Default(), want: english, wantPersist: true},
		{name: "unsupported query falls through", target: "/?lang=fr", accept: "en-GB", fallback: Default(), want: english},
		{name: "cookie", target: "/", cookie: "en-US", fallback: Default(), want: english},
		{name: "query beats cookie", target: "/?lang=es-ES", cookie: "en-US", fallback: english, want: spanish, wantPersist: true},
		{name: "accept language", target: "/", accept: "en-US,en;q=0.9", fallback: Default(), want: english},
		{name: "accept language spanish variant", target: "/", accept: "es-MX", fallback: english, want: spanish},
		{name: "malformed accept", target: "/", accept: ";;;", fallback: Default(), want: Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			got, persist := ResolveTag(req, tt.fallback)
			if got != tt.want {
				t.Fatalf("ResolveTag() = %v, want %v", got, tt.want)
			}
			if persist != tt.wantPersist {
				t.Fatalf("persist = %v, want %v", persist, tt.wantPersist)
			}
		})
	}
}

func TestResolveTagNilRequest(t *testing.T) {
	t.Parallel()
	if got, _ := ResolveTag(nil, english); got != english {
		t.Fatalf("ResolveTag(nil) = %v, want %v", got, english)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, english)
	header := rec.Header().Get("Set-Cookie")
	if !strings.Contains(header, LangCookieName+"=en-US") {
		t.Fatalf("Set-Cookie = %q", header)
	}
	SetLanguageCookie(nil, english)
}

func TestSupportedDefaultFirst(t *testing.T) {
	t.Parallel()
	tags := Supported()
	if len(tags) != 2 || tags[0] != Default() {
		t.Fatalf("Supported() = %v", tags)
	}
	tags[0] = english
	if Supported()[0] != Default() {
		t.Fatal("Supported() exposed internal slice")
	}
}

func TestPrinterUsesCatalog(t *testing.T) {
	t.Parallel()
	if got := Printer(english).Sprintf("core.page_title"); got != "Analytics Dashboard with Plotly" {
		t.Fatalf("en page title = %q", got)
	}
	if got := Printer(Default()).Sprintf("core.page_title"); got != "Dashboard Analítico con Plotly" {
		t.Fatalf("es page title = %q", got)
	}
}

func TestPrinterFallsBackForUnknownLocale(t *testing.T) {
	t.Parallel()
	if got := Printer(language.MustParse("fr-FR")).Sprintf("core.page_title"); got != "Dashboard Analítico con Plotly" {
		t.Fatalf("fr page title = %q", got)
	}
}
