// Package dashboard serves the analytics dashboard.
//
// The report is assembled and rendered once per supported language when the
// server is built; requests only select and write a prerendered document.
package dashboard
