// Package i18n resolves the language a dashboard request is served in.
package i18n
