package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write(body)
	})
}

func TestMaxBodySize(t *testing.T) {
	h := MaxBodySize(8)(echoHandler())

	tests := []struct {
		name       string
		body       string
		chunked    bool
		wantStatus int
	}{
		{"within limit", `{"a":1}`, false, http.StatusOK},
		{"declared too large", strings.Repeat("x", 9), false, http.StatusRequestEntityTooLarge},
		{"undeclared too large", strings.Repeat("x", 9), true, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
