// Package chart turns declarative chart specs into Plotly figure JSON.
//
// Figures follow Plotly Express conventions: one trace per level of the color
// column, colors from the qualitative palette, axis titles from the bindings.
// The browser renders them with Plotly.js; nothing here draws pixels.
package chart
