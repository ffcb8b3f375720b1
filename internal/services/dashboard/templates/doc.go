// Package templates renders the dashboard document with templ components.
//
// Components take plain view structs so rendering stays independent of how
// the report was assembled.
package templates
