package staff

import (
	"net/http"
	"strings"

	dErrors "wathiq/pkg/domain-errors"
	"wathiq/pkg/platform/httputil"
	"wathiq/pkg/requestcontext"
)

// RequireAuth rejects requests without a valid staff bearer token and puts
// the token subject on the context for handlers and audit.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			ctx := requestcontext.WithStaffSubject(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
