package middleware

import (
	"net/http"
	"strings"

	"fullmoon/pkg/auth"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/logger"
)

type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// Authenticate resolves a Bearer token into an auth.Principal on the
// request context. Requests without a token pass through anonymously;
// operations that need a principal reject nil themselves. A token that is
// present but invalid is rejected here.
func Authenticate(parser TokenParser, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				writeJSONError(w, apperrors.Unauthorized("invalid authorization format"))
				return
			}

			principal, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				log.Warn("Rejected bearer token",
					"request_id", RequestIDFrom(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				writeJSONError(w, apperrors.Unauthorized("invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}
