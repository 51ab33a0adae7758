// Package resilience provides fault tolerance patterns for external calls.
//
// Failed items are never retried within a run; the next scheduled run picks
// them up again. What the package offers instead is circuit breaking, so a
// flapping upstream (AI API, feed host, article page) stops being hammered
// once its failure ratio trips the breaker.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.ClaudeAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
package resilience
