package middleware

import (
	"net/http"
	"strings"

	"github.com/snowcodeer/perplexitree/auth"
	"github.com/snowcodeer/perplexitree/logger"
	"github.com/snowcodeer/perplexitree/utils"
)

// RequireToken returns a wrapper that rejects requests without a valid
// token signed with secret. The token is read from the Authorization
// bearer header, falling back to the auth_token cookie. With an empty
// secret the wrapper passes every request through.
func RequireToken(secret string, log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeUnauthorized(w, "Unauthorized")
				return
			}

			subject, err := auth.VerifyToken(secret, token)
			if err != nil {
				log.Warn("RequireToken: rejected token", "path", r.URL.Path, "error", err)
				writeUnauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithSubject(r.Context(), subject)))
		}
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
