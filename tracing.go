package mathml

import "github.com/npillmayer/schuko/tracing"

// TraceKey selects tracer used by canonicalization
const TraceKey = "mathml.canon"

// tracer traces with key 'mathml.canon'
func tracer() tracing.Trace {
	return tracing.Select(TraceKey)
}
