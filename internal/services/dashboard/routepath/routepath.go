// Package routepath names the dashboard's HTTP routes.
package routepath

import (
	"net/url"

	"github.com/louisbranch/insightboard/internal/services/dashboard/i18n"
)

// Root serves the full dashboard document. It is the only route.
const Root = "/"

// RootWithLang returns the root path selecting lang.
func RootWithLang(lang string) string {
	return Root + "?" + url.Values{i18n.LangParam: {lang}}.Encode()
}
