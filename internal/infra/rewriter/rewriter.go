// Package rewriter turns source feed entries into Turkish, SEO-oriented
// articles via an external language model. It ships Claude (Anthropic) and
// OpenAI adapters selected by configuration, both wrapped in a circuit
// breaker and paced by a shared rate limiter. Both adapters implement
// process.ContentRewriter.
package rewriter

import "errors"

// ErrEmptyResponse signals a model answer with no usable content.
var ErrEmptyResponse = errors.New("rewriter: model returned empty response")
