package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecorderDefaultsTo200(t *testing.T) {
	rec := Wrap(httptest.NewRecorder())
	if _, err := rec.Write([]byte("ok")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rec.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want 200", rec.Status())
	}
	if rec.BytesWritten() != 2 {
		t.Errorf("BytesWritten() = %d, want 2", rec.BytesWritten())
	}
}

func TestRecorderCapturesStatus(t *testing.T) {
	under := httptest.NewRecorder()
	rec := Wrap(under)
	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusOK) // later calls must not overwrite

	if rec.Status() != http.StatusTeapot {
		t.Errorf("Status() = %d, want 418", rec.Status())
	}
	if under.Code != http.StatusTeapot {
		t.Errorf("underlying code = %d, want 418", under.Code)
	}
}

func TestRecorderUnwrap(t *testing.T) {
	under := httptest.NewRecorder()
	rec := Wrap(under)
	if rec.Unwrap() != under {
		t.Error("Unwrap() did not return the underlying writer")
	}
}
