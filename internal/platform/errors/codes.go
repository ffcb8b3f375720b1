package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeDataUnavailable marks an example dataset that could not be fetched
	// or parsed.
	CodeDataUnavailable Code = "DATA_UNAVAILABLE"

	// CodeTransformFailed marks a derived table that could not be computed
	// from its source dataset.
	CodeTransformFailed Code = "TRANSFORM_FAILED"

	// CodeChartInvalid marks a chart spec whose bindings do not resolve.
	CodeChartInvalid Code = "CHART_INVALID"

	// CodeRenderFailed marks a page document that could not be rendered.
	CodeRenderFailed Code = "RENDER_FAILED"
)

// String returns the code value.
func (c Code) String() string {
	return string(c)
}
