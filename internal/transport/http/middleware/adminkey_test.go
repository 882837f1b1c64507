package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminKeyMiddleware_ValidKey(t *testing.T) {
	mw := AdminKeyMiddleware([]string{"secret-key-1", "secret-key-2"})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
	req.Header.Set(AdminKeyHeader, "secret-key-2")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("valid key: got status %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAdminKeyMiddleware_MissingHeader(t *testing.T) {
	mw := AdminKeyMiddleware([]string{"secret-key-1"})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAdminKeyMiddleware_WrongKey(t *testing.T) {
	mw := AdminKeyMiddleware([]string{"secret-key-1"})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
	req.Header.Set(AdminKeyHeader, "wrong-key")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAdminKeyMiddleware_NoKeysConfiguredFailsClosed(t *testing.T) {
	// An unset key list must reject everything, even an empty header.
	for _, keys := range [][]string{nil, {}, {"", "  "}} {
		mw := AdminKeyMiddleware(keys)(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("keys %v, missing header: got status %d, want %d", keys, rec.Code, http.StatusUnauthorized)
		}

		req = httptest.NewRequest(http.MethodPost, "/api/links", nil)
		req.Header.Set(AdminKeyHeader, "")
		rec = httptest.NewRecorder()
		mw.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("keys %v, empty header: got status %d, want %d", keys, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestAdminKeyMiddleware_WhitespaceTrimmed(t *testing.T) {
	mw := AdminKeyMiddleware([]string{"  secret-key-1  "})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
	req.Header.Set(AdminKeyHeader, " secret-key-1 ")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("trimmed key: got status %d, want %d", rec.Code, http.StatusOK)
	}
}
