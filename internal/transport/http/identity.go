package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ariafatah0711/ctfs-sub001/internal/auth"
)

// Identity attaches the bearer token's subject and role to the request
// context. Requests without a token continue anonymously; a token that
// fails validation is rejected.
func Identity(secret []byte, logger *zap.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r)
		if token == "" || len(secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseJWT(token, secret)
		if err != nil {
			logger.Debug("rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			return
		}
		role, _ := auth.NormalizeRole(claims.Role)
		ctx := auth.WithIdentity(r.Context(), claims.Subject, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.SubjectFromContext(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
			return
		}
		if auth.RoleFromContext(r.Context()) != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userKey(r *http.Request) string {
	return auth.SubjectFromContext(r.Context())
}
