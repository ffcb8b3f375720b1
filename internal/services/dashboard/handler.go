package dashboard

import (
	"log"
	"net/http"
	"strconv"

	"github.com/louisbranch/insightboard/internal/services/dashboard/i18n"
	"github.com/louisbranch/insightboard/internal/services/dashboard/platform/httpx"
	"github.com/louisbranch/insightboard/internal/services/dashboard/platform/observability"
	"github.com/louisbranch/insightboard/internal/services/dashboard/routepath"
	"golang.org/x/text/language"
)

type rootHandler struct {
	documents map[language.Tag][]byte
	fallback  language.Tag
	serve     http.Handler
}

func newHandler(documents map[language.Tag][]byte, fallback language.Tag, accessLog *log.Logger) http.Handler {
	root := &rootHandler{documents: documents, fallback: fallback}
	root.serve = httpx.AllowMethods(http.MethodGet, http.MethodHead)(http.HandlerFunc(root.writeDocument))
	return httpx.Chain(root,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(accessLog),
		observability.Trace("dashboard.serve"),
	)
}

func (h *rootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		http.NotFound(w, r)
		return
	}
	h.serve.ServeHTTP(w, r)
}

func (h *rootHandler) writeDocument(w http.ResponseWriter, r *http.Request) {
	tag, persist := i18n.ResolveTag(r, h.fallback)
	doc, ok := h.documents[tag]
	if !ok {
		tag = h.fallback
		doc = h.documents[tag]
	}
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	header := w.Header()
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("Content-Language", tag.String())
	header.Set("Content-Length", strconv.Itoa(len(doc)))
	header.Add("Vary", "Accept-Language")
	header.Add("Vary", "Cookie")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(doc)
}
