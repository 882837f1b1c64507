package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gatelink/gatelink/internal/constants"
	"github.com/gatelink/gatelink/pkg/httputils"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware guards the management endpoints. The gate fails
// closed: with no keys configured every request is rejected, so a
// missing ADMIN_KEYS can never leave the write surface open.
func AdminKeyMiddleware(adminKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(adminKeys))
	for _, k := range adminKeys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		keys = append(keys, []byte(k))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(strings.TrimSpace(r.Header.Get(AdminKeyHeader)))
			if len(got) == 0 || !matchesAnyKey(got, keys) {
				httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func matchesAnyKey(got []byte, keys [][]byte) bool {
	matched := false
	for _, k := range keys {
		if subtle.ConstantTimeCompare(got, k) == 1 {
			matched = true
		}
	}
	return matched
}
