// Package responsewriter wraps http.ResponseWriter so middleware can
// observe the status code and body size after the handler has run.
package responsewriter

import "net/http"

// Recorder records the status code and bytes written by a handler.
type Recorder struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

// Wrap returns a Recorder around w.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *Recorder) WriteHeader(code int) {
	if r.written {
		return
	}
	r.status = code
	r.written = true
	r.ResponseWriter.WriteHeader(code)
}

func (r *Recorder) Write(p []byte) (int, error) {
	r.written = true
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Status returns the recorded status code, defaulting to 200.
func (r *Recorder) Status() int { return r.status }

// BytesWritten returns the number of body bytes written so far.
func (r *Recorder) BytesWritten() int { return r.bytes }

// Unwrap returns the underlying writer so http.ResponseController keeps
// working through the wrapper.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
