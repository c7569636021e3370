package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ecfg.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("ecfg.grammar")
}
