package i18n

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/insightboard/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "dashboard_lang"
)

var (
	spanish = language.MustParse("es-ES")
	english = language.MustParse("en-US")
)

var supportedTags = []language.Tag{spanish, english}

var tagMatcher = language.NewMatcher(supportedTags)

// messages is the embedded bundle; loading it registers every locale with
// the default x/text catalog.
var messages = catalog.Default()

// Supported returns the list of supported language tags, default first.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return spanish
}

// Printer returns a message printer for the supplied tag, backed by the
// embedded catalogs. Tags without a catalog print in the default language.
func Printer(tag language.Tag) *message.Printer {
	if !messages.HasLocale(tag.String()) {
		tag = Default()
	}
	return message.NewPrinter(tag)
}

// Parse returns the supported tag matching value exactly or by base
// language.
func Parse(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Tag{}, false
	}
	for _, tag := range supportedTags {
		if tag == parsed {
			return tag, true
		}
	}
	base, _ := parsed.Base()
	for _, tag := range supportedTags {
		if tagBase, _ := tag.Base(); tagBase == base {
			return tag, true
		}
	}
	return language.Tag{}, false
}

// ResolveTag determines the best language tag for the request: the lang
// query parameter, then the preference cookie, then Accept-Language, then
// fallback. The bool reports whether the query parameter chose the tag and
// should be persisted as a cookie.
func ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if r == nil {
		return fallback, false
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := Parse(langValue); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := Parse(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := tagMatcher.Match(tags...)
			if confidence != language.No {
				return supportedTags[index], false
			}
		}
	}

	return fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
